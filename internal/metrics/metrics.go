package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transliteration metrics.
var (
	TransliterationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kana_transliterations_total",
		Help: "Transliterations by source (cli, interactive, http, batch)",
	}, []string{"source"})

	TransliterationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kana_transliteration_duration_seconds",
		Help:    "Time spent in a single transliteration",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kana_input_chars",
		Help:    "Characters per transliteration input",
		Buckets: prometheus.ExponentialBuckets(4, 4, 7),
	})

	HistoryWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kana_history_writes_total",
		Help: "History store writes by result",
	}, []string{"result"})
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kana_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kana_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kana_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})
)
