// Package serve runs the admin HTTP API.
package serve

import (
	"github.com/spf13/cobra"

	"github.com/vinodtana/ai-tools-admin-web/cmd/common"
	"github.com/vinodtana/ai-tools-admin-web/internal/bootstrap"
)

// Command returns `serve`.
func Command(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin API server",
		Long: `Connects storage, Redis, Elasticsearch and object storage as configured,
applies pending migrations and serves /api/v1 until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap.Start(cmd.Context(), opts.Path(), opts.Debug, opts.Version)
		},
	}
}
