package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jusunglee/kana/internal/db"
	"github.com/jusunglee/kana/internal/db/postgres"
	"github.com/jusunglee/kana/internal/db/sqlite"
)

var ErrUnsupportedScheme = errors.New("unsupported database URL scheme")

// Open connects to the history store named by databaseURL.
// postgres:// and postgresql:// URLs use PostgreSQL; sqlite:// URLs, bare
// file paths and ":memory:" use SQLite.
func Open(ctx context.Context, databaseURL string) (db.Repository, error) {
	switch {
	case databaseURL == "":
		return nil, fmt.Errorf("%w: empty URL", ErrUnsupportedScheme)
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		repo, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres history: %w", err)
		}
		return repo, nil
	case strings.HasPrefix(databaseURL, "sqlite://"), !strings.Contains(databaseURL, "://"):
		repo, err := sqlite.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite history: %w", err)
		}
		return repo, nil
	default:
		scheme, _, _ := strings.Cut(databaseURL, "://")
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}
