package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/orgball2608/harrow-downloader/internal/migrations"
	"github.com/orgball2608/harrow-downloader/pkg/config"
	"github.com/pressly/goose/v3"
)

// Open returns a database/sql handle for the configured catalog driver.
func Open(cfg *config.Config) (*sql.DB, error) {
	switch cfg.Catalog.Driver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.Catalog.SqlitePath)
	case config.DriverPostgres:
		conn, err := sql.Open("postgres", cfg.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported catalog driver %q", cfg.Catalog.Driver)
	}
}

// OpenSQLite opens (creating if needed) the sqlite catalog at path with
// foreign keys enforced on every connection.
func OpenSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return conn, nil
}

// Dialect maps a catalog driver to its goose dialect.
func Dialect(driver string) goose.Dialect {
	if driver == config.DriverPostgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

// NewProvider returns a goose provider over the catalog migrations.
func NewProvider(conn *sql.DB, driver string) (*goose.Provider, error) {
	dialect := Dialect(driver)
	migrations.SetDialect(dialect)

	provider, err := goose.NewProvider(dialect, conn, nil)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending catalog migration.
func Migrate(ctx context.Context, conn *sql.DB, driver string) ([]*goose.MigrationResult, error) {
	provider, err := NewProvider(conn, driver)
	if err != nil {
		return nil, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("apply migrations: %w", err)
	}
	return results, nil
}
