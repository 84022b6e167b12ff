// Package migrate manages the postgres schema.
package migrate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/vinodtana/ai-tools-admin-web/cmd/common"
	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/database"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

var errLocalDriver = errors.New("migrations apply to the postgres storage driver only")

// Command returns `migrate` with up, down and version.
func Command(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(cmd, opts, func(db *sqlx.DB, log logger.Logger) error {
					return database.MigrateUp(db, log)
				})
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations (default 1 step)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("steps must be a positive integer, got %q", args[0])
					}
					steps = n
				}
				return withDB(cmd, opts, func(db *sqlx.DB, log logger.Logger) error {
					return database.MigrateDown(db, steps, log)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(cmd, opts, func(db *sqlx.DB, _ logger.Logger) error {
					version, dirty, err := database.Version(db)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty=%t)\n", version, dirty)
					return nil
				})
			},
		},
	)

	return cmd
}

func withDB(cmd *cobra.Command, opts *common.Options, fn func(*sqlx.DB, logger.Logger) error) error {
	cfg, log, err := opts.Setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return errLocalDriver
	}

	db, err := database.New(cmd.Context(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()

	return fn(db, log)
}
