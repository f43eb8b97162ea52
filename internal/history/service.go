// Package history runs transliterations for the front ends and keeps a
// record of them in an optional store.
package history

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/jusunglee/kana/internal/db"
	"github.com/jusunglee/kana/internal/glyphs"
	"github.com/jusunglee/kana/internal/metrics"
	"github.com/jusunglee/kana/internal/transliteration"
	"golang.org/x/sync/errgroup"
)

// Sources label where a transliteration came from.
const (
	SourceCLI         = "cli"
	SourceInteractive = "interactive"
	SourceHTTP        = "http"
	SourceBatch       = "batch"
)

const batchConcurrency = 8

// ErrNoStore is returned by history queries when no store is configured.
var ErrNoStore = errors.New("no history store configured")

type Service struct {
	repo   db.Repository
	tables *glyphs.Tables
	log    *slog.Logger
}

// NewService returns a Service. repo may be nil, in which case results are
// not recorded. tables may be nil to use the embedded tables.
func NewService(repo db.Repository, tables *glyphs.Tables, log *slog.Logger) *Service {
	return &Service{repo: repo, tables: tables, log: log}
}

func (s *Service) HasStore() bool {
	return s.repo != nil
}

// Transliterate converts text and records the result. A failed history
// write is logged and does not fail the call.
func (s *Service) Transliterate(ctx context.Context, text string, opts Options, source string) (string, error) {
	cfg, err := opts.Config(s.tables)
	if err != nil {
		return "", err
	}
	out := s.run(text, cfg, source)
	s.record(ctx, text, out, opts, source)
	return out, nil
}

// TransliterateBatch converts every text, preserving order.
func (s *Service) TransliterateBatch(ctx context.Context, texts []string, opts Options, source string) ([]string, error) {
	cfg, err := opts.Config(s.tables)
	if err != nil {
		return nil, err
	}

	results := make([]string, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.run(text, cfg, source)
			s.record(ctx, text, results[i], opts, source)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) run(text string, cfg transliteration.Config, source string) string {
	start := time.Now()
	out := transliteration.Transliterate(text, cfg)
	metrics.TransliterationDuration.Observe(time.Since(start).Seconds())
	metrics.TransliterationsTotal.WithLabelValues(source).Inc()
	metrics.InputChars.Observe(float64(utf8.RuneCountInString(text)))
	return out
}

func (s *Service) record(ctx context.Context, text, out string, opts Options, source string) {
	if s.repo == nil || out == "" {
		return
	}
	_, err := s.repo.RecordTransliteration(ctx, db.RecordTransliterationParams{
		Input:   text,
		Output:  out,
		Options: opts.encode(),
		Source:  source,
	})
	if err != nil {
		metrics.HistoryWritesTotal.WithLabelValues("error").Inc()
		s.log.WarnContext(ctx, "recording transliteration", "error", err, "source", source)
		return
	}
	metrics.HistoryWritesTotal.WithLabelValues("ok").Inc()
}

func (s *Service) Recent(ctx context.Context, limit int32) ([]db.Transliteration, error) {
	if s.repo == nil {
		return nil, ErrNoStore
	}
	return s.repo.ListRecentTransliterations(ctx, limit)
}

func (s *Service) Get(ctx context.Context, id int64) (db.Transliteration, error) {
	if s.repo == nil {
		return db.Transliteration{}, ErrNoStore
	}
	return s.repo.GetTransliteration(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	if s.repo == nil {
		return 0, ErrNoStore
	}
	return s.repo.CountTransliterations(ctx)
}

// Prune deletes entries older than maxAge.
func (s *Service) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if s.repo == nil {
		return 0, ErrNoStore
	}
	n, err := s.repo.DeleteOldTransliterations(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.InfoContext(ctx, "pruned history", "deleted", n, "max_age", maxAge)
	}
	return n, nil
}

// Ping reports whether the store is reachable. It succeeds when no store
// is configured.
func (s *Service) Ping(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Ping(ctx)
}
