package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirtySchema reports a migration that failed halfway and needs a manual fix.
var ErrDirtySchema = errors.New("database schema is dirty")

// RunMigrations brings the events, venues, users and participants tables up to
// date with the files under migrationsPath.
func RunMigrations(dsn string, migrationsPath string, logger *slog.Logger) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	return applyMigrations(m, migrationsPath, logger)
}

type migrator interface {
	Up() error
	Version() (uint, bool, error)
}

func applyMigrations(m migrator, migrationsPath string, logger *slog.Logger) error {
	if version, dirty, err := m.Version(); err == nil && dirty {
		return fmt.Errorf("%w at version %d, fix it and force the version", ErrDirtySchema, version)
	}

	err := m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Debug("schema already up to date", "path", migrationsPath)
	case err != nil:
		return fmt.Errorf("migration up: %w", err)
	}

	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration version: %w", err)
	}
	logger.Info("migrations applied", "version", version, "path", migrationsPath)
	return nil
}
