package db

import (
	"context"
	"time"
)

// Transliteration is one recorded call.
type Transliteration struct {
	ID     int64
	Input  string
	Output string
	// Options is the JSON encoding of the options the call ran with.
	Options   string
	Source    string
	CreatedAt time.Time
}

type RecordTransliterationParams struct {
	Input   string
	Output  string
	Options string
	Source  string
}

// Repository stores transliteration history. Implementations live in
// the postgres and sqlite subpackages.
type Repository interface {
	RecordTransliteration(ctx context.Context, arg RecordTransliterationParams) (Transliteration, error)
	GetTransliteration(ctx context.Context, id int64) (Transliteration, error)
	ListRecentTransliterations(ctx context.Context, limit int32) ([]Transliteration, error)
	CountTransliterations(ctx context.Context) (int64, error)

	// Retention/Cleanup
	DeleteOldTransliterations(ctx context.Context, before time.Time) (int64, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
