package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/kana/internal/health"
	"github.com/jusunglee/kana/internal/history"
	"github.com/jusunglee/kana/internal/web/handlers"
	"github.com/jusunglee/kana/internal/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	// RateLimit is the number of write requests allowed per client IP in
	// RateWindow.
	RateLimit      int
	RateWindow     time.Duration
	AllowedOrigins []string
	// AdminKey guards history pruning. Empty disables the endpoint.
	AdminKey string
}

type Router struct {
	svc     *history.Service
	log     *slog.Logger
	cfg     Config
	limiter *middleware.IPRateLimiter
}

func NewRouter(svc *history.Service, log *slog.Logger, cfg Config) *Router {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}
	return &Router{
		svc:     svc,
		log:     log,
		cfg:     cfg,
		limiter: middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow),
	}
}

// Close stops the rate limiter's cleanup loop.
func (r *Router) Close() {
	r.limiter.Stop()
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	transliterateHandler := handlers.NewTransliterateHandler(r.svc, r.log)
	historyHandler := handlers.NewHistoryHandler(r.svc, r.log)

	mux.Handle("POST /api/v1/transliterate",
		middleware.Chain(
			http.HandlerFunc(transliterateHandler.Transliterate),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
		),
	)

	mux.Handle("POST /api/v1/transliterate/batch",
		middleware.Chain(
			http.HandlerFunc(transliterateHandler.Batch),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
		),
	)

	mux.Handle("GET /api/v1/history",
		middleware.Chain(
			http.HandlerFunc(historyHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=5, max-age=0"),
		),
	)

	mux.Handle("GET /api/v1/history/{id}",
		middleware.Chain(
			http.HandlerFunc(historyHandler.Get),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, max-age=3600"),
		),
	)

	mux.Handle("DELETE /api/v1/history",
		middleware.Chain(
			http.HandlerFunc(historyHandler.Prune),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.APIKeyAuth(r.cfg.AdminKey),
		),
	)

	mux.Handle("GET /health",
		middleware.Chain(
			health.NewHandler(r.svc, 2*time.Second, r.log),
			middleware.CacheControl("no-store"),
		),
	)
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.CORS(r.cfg.AllowedOrigins)(mux)
}
