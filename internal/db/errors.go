package db

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows is returned by repository lookups for a missing transliteration.
var ErrNoRows = errors.New("transliteration not found")

var noRowsErrs = []error{ErrNoRows, sql.ErrNoRows, pgx.ErrNoRows}

// IsNoRows reports whether err, or anything it wraps, is a driver's
// no-rows error or ErrNoRows.
func IsNoRows(err error) bool {
	for _, target := range noRowsErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
