// Package db opens the PostgreSQL connection used by the insight store and
// applies the embedded schema migrations.
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	// import db drivers
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB is a wrapper around the sqlx.DB connection pool.
type DB struct {
	*sqlx.DB
	logger *slog.Logger
}

// Connect opens a pool for databaseURL, verifies it and migrates the schema to
// the latest version. The returned cleanup closes the pool.
func Connect(ctx context.Context, databaseURL string, logger *slog.Logger) (*DB, func(), error) {
	noop := func() {}

	conn, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetConnMaxLifetime(30 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, noop, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{DB: conn, logger: logger}

	logger.Info("running database migrations")
	if err := db.RunMigrations(); err != nil {
		_ = conn.Close()
		return nil, noop, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	return db, func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close database connection", "error", err)
		}
	}, nil
}

// RunMigrations applies pending migrations. A dirty schema left behind by an
// earlier failed run is reported instead of being forced.
func (db *DB) RunMigrations() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("opening embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{MigrationsTable: "mamba_schema_migrations"})
	if err != nil {
		return fmt.Errorf("creating postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	switch version, dirty, err := m.Version(); {
	case errors.Is(err, migrate.ErrNilVersion):
		db.logger.Debug("database has no schema yet")
	case err != nil:
		return fmt.Errorf("reading schema version: %w", err)
	case dirty:
		return fmt.Errorf("database schema is dirty at version %d; fix it manually with 'migrate force'", version)
	default:
		db.logger.Debug("current schema version", "version", version)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
