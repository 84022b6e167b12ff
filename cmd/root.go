// Package cmd implements the ai-tools-admin command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vinodtana/ai-tools-admin-web/cmd/admin"
	"github.com/vinodtana/ai-tools-admin-web/cmd/common"
	"github.com/vinodtana/ai-tools-admin-web/cmd/importer"
	"github.com/vinodtana/ai-tools-admin-web/cmd/migrate"
	"github.com/vinodtana/ai-tools-admin-web/cmd/seed"
	"github.com/vinodtana/ai-tools-admin-web/cmd/serve"
)

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &common.Options{Version: version}

	root := &cobra.Command{
		Use:           "ai-tools-admin",
		Short:         "Back office for the AI tools catalog",
		Long:          `Serves the admin API and operates the catalog from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"config file (default is $CONFIG_PATH or ./config.yml)")
	root.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ai-tools-admin version %s\n", version)
		},
	})

	root.AddCommand(
		serve.Command(opts),
		migrate.Command(opts),
		seed.Command(opts),
		importer.Command(opts),
		admin.Command(opts),
	)

	return root
}

// Execute runs the root command.
func Execute(version string) error {
	// .env is optional
	_ = godotenv.Load()

	return NewRootCommand(version).ExecuteContext(context.Background())
}
