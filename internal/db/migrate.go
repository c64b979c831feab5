package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every pending schema migration embedded in the binary.
// The returned migrator is not closed because closing it would close the
// shared connection pool.
func (db *DB) Migrate(databaseName string) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{
		DatabaseName: databaseName,
		SchemaName:   "public",
	})
	if err != nil {
		db.logger.Error("failed to create postgres driver instance", "error", err)
		return fmt.Errorf("failed to create postgres driver instance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			db.logger.Info("no new migrations found")
			return nil
		}

		var dirtyErr migrate.ErrDirty
		if errors.As(err, &dirtyErr) {
			db.logger.Error("migration left a dirty version", "version", dirtyErr.Version)
			return fmt.Errorf("migration failed: dirty database version %d", dirtyErr.Version)
		}

		db.logger.Error("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	version, _, err := m.Version()
	if err == nil {
		db.logger.Info("database migrated", "version", version)
	}
	return nil
}
