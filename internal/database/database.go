// Package database opens the PostgreSQL pool and applies schema migrations.
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" //nolint:blankimports // PostgreSQL driver

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

const pingTimeout = 5 * time.Second

//go:embed migrations/*.sql
var migrationsFS embed.FS

// New opens and pings the pool described by cfg.
func New(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("Database connection established",
		logger.String("host", cfg.Host),
		logger.Int("port", cfg.Port),
		logger.String("dbname", cfg.DBName),
	)

	return db, nil
}

func newMigrator(db *sqlx.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// MigrateUp applies all pending migrations.
func MigrateUp(db *sqlx.DB, log logger.Logger) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("No pending migrations")
			return nil
		}
		return fmt.Errorf("run migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Info("Migrations applied successfully", logger.Int("version", int(version)))
	return nil
}

// MigrateDown rolls back steps migrations.
func MigrateDown(db *sqlx.DB, steps int, log logger.Logger) error {
	if steps < 1 {
		steps = 1
	}

	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	if err = m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back migrations: %w", err)
	}

	log.Info("Migrations rolled back", logger.Int("steps", steps))
	return nil
}

// Version reports the current schema version and dirty flag.
func Version(db *sqlx.DB) (version uint, dirty bool, err error) {
	m, err := newMigrator(db)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}
