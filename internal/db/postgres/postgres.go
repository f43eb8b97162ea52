package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/kana/internal/db"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transliterations (
    id         BIGSERIAL PRIMARY KEY,
    input      TEXT NOT NULL,
    output     TEXT NOT NULL,
    options    JSONB NOT NULL DEFAULT '{}',
    source     TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_transliterations_created_at ON transliterations (created_at);
`

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and makes sure the schema exists.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) RecordTransliteration(ctx context.Context, arg db.RecordTransliterationParams) (db.Transliteration, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transliterations (input, output, options, source)
		VALUES ($1, $2, $3::jsonb, $4)
		RETURNING id, input, output, options::text, source, created_at
	`, arg.Input, arg.Output, arg.Options, arg.Source)
	return scanTransliteration(row)
}

func (r *Repository) GetTransliteration(ctx context.Context, id int64) (db.Transliteration, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, input, output, options::text, source, created_at
		FROM transliterations WHERE id = $1
	`, id)
	return scanTransliteration(row)
}

func (r *Repository) ListRecentTransliterations(ctx context.Context, limit int32) ([]db.Transliteration, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, input, output, options::text, source, created_at
		FROM transliterations
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Transliteration, error) {
		return scanTransliteration(row)
	})
}

func (r *Repository) CountTransliterations(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transliterations`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldTransliterations(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transliterations WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTransliteration(row pgx.Row) (db.Transliteration, error) {
	var t db.Transliteration
	err := row.Scan(&t.ID, &t.Input, &t.Output, &t.Options, &t.Source, &t.CreatedAt)
	if err == pgx.ErrNoRows {
		return db.Transliteration{}, db.ErrNoRows
	}
	return t, err
}
