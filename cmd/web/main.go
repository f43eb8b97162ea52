package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/kana/internal/glyphs"
	"github.com/jusunglee/kana/internal/history"
	"github.com/jusunglee/kana/internal/logger"
	"github.com/jusunglee/kana/internal/web"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/samber/lo"
)

//go:embed all:dist
var staticFiles embed.FS

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("kana-web")

	var (
		port              = fs_.Int64Long("port", 3000, "HTTP server port")
		databaseURL       = fs_.StringLong("database-url", "", "history store URL; history is disabled when empty")
		tablesDir         = fs_.StringLong("tables", "", "directory with replacement syllable tables")
		allowedOrigins    = fs_.StringLong("allowed-origins", "", "Comma-separated list of allowed CORS origins")
		adminKey          = fs_.StringLong("admin-key", "", "X-API-Key value that enables DELETE /api/v1/history")
		rateLimit         = fs_.IntLong("rate-limit", 60, "transliteration requests per client per minute")
		retention         = fs_.DurationLong("retention", 30*24*time.Hour, "delete history older than this; 0 keeps everything")
		retentionInterval = fs_.DurationLong("retention-interval", time.Hour, "how often expired history is deleted")
	)

	if err := ff.Parse(fs_, os.Args[1:], ff.WithEnvVarPrefix("KANA")); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New(os.Stderr)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	var tables *glyphs.Tables
	if *tablesDir != "" {
		var err error
		if tables, err = glyphs.Load(os.DirFS(*tablesDir)); err != nil {
			return fmt.Errorf("loading tables from %s: %w", *tablesDir, err)
		}
		log.InfoContext(ctx, "loaded syllable tables", "dir", *tablesDir)
	}

	svc := history.NewService(nil, tables, log)
	if *databaseURL != "" {
		repo, err := history.Open(ctx, *databaseURL)
		if err != nil {
			return err
		}
		defer repo.Close()
		svc = history.NewService(repo, tables, log)
		log.InfoContext(ctx, "connected to history store")

		if *retention > 0 {
			go pruneLoop(ctx, svc, log, *retention, *retentionInterval)
		}
	}

	origins := lo.Compact(lo.Map(strings.Split(*allowedOrigins, ","), func(o string, _ int) string {
		return strings.TrimSpace(o)
	}))

	router := web.NewRouter(svc, log, web.Config{
		RateLimit:      *rateLimit,
		RateWindow:     time.Minute,
		AllowedOrigins: origins,
		AdminKey:       *adminKey,
	})
	defer router.Close()
	apiHandler := router.Handler()

	// Serve API routes first, fall back to the embedded playground page
	distFS, err := fs.Sub(staticFiles, "dist")
	if err != nil {
		return fmt.Errorf("creating sub filesystem: %w", err)
	}
	fileServer := http.FileServer(http.FS(distFS))

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/health", apiHandler)
	mux.Handle("/metrics", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, s-maxage=60, max-age=0")
		fileServer.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.InfoContext(ctx, "received signal, shutting down gracefully", "signal", sig)
		cancel(errors.New("signal received"))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "server shutdown error", "error", err)
		}
	}()

	log.InfoContext(ctx, "starting web server", "port", *port, "history", svc.HasStore())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func pruneLoop(ctx context.Context, svc *history.Service, log *slog.Logger, maxAge, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := svc.Prune(ctx, maxAge); err != nil && ctx.Err() == nil {
			log.ErrorContext(ctx, "pruning history", "error", err)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
