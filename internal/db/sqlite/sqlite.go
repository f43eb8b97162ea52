package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/jusunglee/kana/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is fixed width so created_at sorts as text in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing created_at %q: %w", s, err)
	}
	return t, nil
}

// Repository implements db.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New opens (and if needed creates) the SQLite database at dbPath.
// ":memory:" gives a private in-memory database.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	if dbPath == ":memory:" {
		// Each connection to :memory: is a separate database.
		sqliteDB.SetMaxOpenConns(1)
	} else if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{db: sqliteDB}, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) RecordTransliteration(ctx context.Context, arg db.RecordTransliterationParams) (db.Transliteration, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO transliterations (input, output, options, source, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, arg.Input, arg.Output, arg.Options, arg.Source, formatTime(now))
	if err != nil {
		return db.Transliteration{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Transliteration{}, err
	}

	return db.Transliteration{
		ID:        id,
		Input:     arg.Input,
		Output:    arg.Output,
		Options:   arg.Options,
		Source:    arg.Source,
		CreatedAt: now,
	}, nil
}

func (r *Repository) GetTransliteration(ctx context.Context, id int64) (db.Transliteration, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, input, output, options, source, created_at
		FROM transliterations WHERE id = ?
	`, id)

	return scanTransliteration(row)
}

func (r *Repository) ListRecentTransliterations(ctx context.Context, limit int32) ([]db.Transliteration, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, input, output, options, source, created_at
		FROM transliterations
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransliterations(rows)
}

func (r *Repository) CountTransliterations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transliterations`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldTransliterations(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM transliterations WHERE created_at < ?
	`, formatTime(before))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanTransliteration(row *sql.Row) (db.Transliteration, error) {
	var t db.Transliteration
	var createdAtStr string
	err := row.Scan(&t.ID, &t.Input, &t.Output, &t.Options, &t.Source, &createdAtStr)
	if err == sql.ErrNoRows {
		return db.Transliteration{}, db.ErrNoRows
	}
	if err != nil {
		return db.Transliteration{}, err
	}
	if t.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return db.Transliteration{}, err
	}
	return t, nil
}

func scanTransliterations(rows *sql.Rows) ([]db.Transliteration, error) {
	var out []db.Transliteration
	for rows.Next() {
		var t db.Transliteration
		var createdAtStr string
		if err := rows.Scan(&t.ID, &t.Input, &t.Output, &t.Options, &t.Source, &createdAtStr); err != nil {
			return nil, err
		}
		createdAt, err := parseTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		t.CreatedAt = createdAt
		out = append(out, t)
	}
	return out, rows.Err()
}
