package db

import (
	"database/sql"
	"log/slog"
)

// NewTestDB wraps an already open pool with a discarding logger. Intended
// for integration tests only.
func NewTestDB(sqlDB *sql.DB) *DB {
	return &DB{
		DB:     sqlDB,
		logger: slog.New(slog.DiscardHandler),
	}
}
