package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/database"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository/local"
)

// Storage is the repository set for the configured driver.
type Storage struct {
	Repos  repository.Set
	Driver string
	// DB is nil for the local driver.
	DB   *sqlx.DB
	blob *local.Blob
}

// SetupStorage opens the configured driver. With migrate set, pending
// postgres migrations are applied first.
func SetupStorage(ctx context.Context, cfg *config.Config, log logger.Logger, migrate bool) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverLocal:
		blob, err := local.Open(cfg.Storage.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("open local store: %w", err)
		}
		log.Info("Using local storage", logger.String("path", blob.Path()))
		return &Storage{Repos: local.NewSet(blob), Driver: cfg.Storage.Driver, blob: blob}, nil

	case config.StorageDriverPostgres:
		db, err := database.New(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("database connection: %w", err)
		}
		if migrate {
			if err = database.MigrateUp(db, log); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		return &Storage{Repos: repository.NewPostgresSet(db, log), Driver: cfg.Storage.Driver, DB: db}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Ping reports whether the backing store is reachable.
func (s *Storage) Ping() error {
	if s.DB != nil {
		return s.DB.Ping()
	}
	return nil
}

// Close releases the database pool, if any.
func (s *Storage) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
