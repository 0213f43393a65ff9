package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"github.com/wso2/idea-management-api/internal/config"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

// newMigrationProvider returns a goose provider over the embedded migrations
// of the connection's dialect
func (db *DB) newMigrationProvider() (*goose.Provider, error) {
	dialect, dir := goose.DialectMySQL, "migrations/mysql"
	if db.Type() == config.DatabaseTypeSQLite {
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	}

	fsys, err := fs.Sub(migrationFiles, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db.DB.DB, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider, nil
}

// Migrate applies all pending schema migrations
func (db *DB) Migrate(ctx context.Context) error {
	provider, err := db.newMigrationProvider()
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	for _, r := range results {
		db.logger.WithFields(logrus.Fields{
			"version":  r.Source.Version,
			"path":     r.Source.Path,
			"duration": r.Duration,
		}).Info("Applied migration")
	}
	if len(results) == 0 {
		db.logger.Debug("Schema is up to date")
	}
	return nil
}

// MigrationVersion returns the currently applied schema version
func (db *DB) MigrationVersion(ctx context.Context) (int64, error) {
	provider, err := db.newMigrationProvider()
	if err != nil {
		return 0, err
	}
	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose version: %w", err)
	}
	return version, nil
}
