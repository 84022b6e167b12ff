// Package importer bulk-loads catalog content from spreadsheets.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vinodtana/ai-tools-admin-web/cmd/common"
	"github.com/vinodtana/ai-tools-admin-web/internal/activity"
	"github.com/vinodtana/ai-tools-admin-web/internal/bootstrap"
	"github.com/vinodtana/ai-tools-admin-web/internal/datatable"
	"github.com/vinodtana/ai-tools-admin-web/internal/events"
	"github.com/vinodtana/ai-tools-admin-web/internal/importer"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

const cliActor = "cli"

// Command returns `import <file.xlsx>` and `import template <out.xlsx>`.
func Command(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Create catalog content from a spreadsheet",
		Long: `Reads the "Contents" sheet (or the first sheet) and creates one record per
row. Rows that fail validation are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts, args[0], cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "template <out.xlsx>",
		Short: "Write an empty import spreadsheet with example rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := writeTemplate(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template written to %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func writeTemplate(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err = importer.WriteTemplate(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func runImport(ctx context.Context, opts *common.Options, path string, out io.Writer) error {
	cfg, log, err := opts.Setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	store, err := bootstrap.SetupStorage(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	contents, _ := bootstrap.SetupSearch(ctx, cfg.Search, store.Repos.Contents, log)

	svc, _, err := bootstrap.SetupContent(ctx, cfg, nil, log)
	if err != nil {
		return err
	}

	res, err := importer.New(contents, cfg.Uploads.MaxImages, log).WithPreparer(svc).Import(ctx, f)
	if err != nil {
		return err
	}

	if res.Created > 0 {
		announce(ctx, bootstrap.SetupRedis(ctx, cfg.Redis, log), cfg.Redis.EventStream, cfg.Redis.ActivityKey,
			filepath.Base(path), res, log)
	}

	Report(out, res)
	if res.Created == 0 && res.Failed > 0 {
		return fmt.Errorf("no rows imported (%d failed)", res.Failed)
	}
	return nil
}

// announce writes the import to the activity feed and event stream. Both
// writes are synchronous because the process exits right after.
func announce(ctx context.Context, client *redis.Client, stream, key, fileName string, res *importer.Result, log logger.Logger) {
	if client == nil {
		return
	}
	defer func() { _ = client.Close() }()

	now := time.Now().UTC()
	if err := activity.NewRedisFeed(client, key).Push(ctx, models.Activity{
		Action:    "imported",
		Resource:  models.ResourceContents,
		Name:      fileName,
		Actor:     cliActor,
		Timestamp: now,
	}); err != nil {
		log.Warn("Failed to record import activity", logger.Error(err))
	}

	if err := events.NewPublisher(client, stream, log).Publish(ctx, events.Event{
		EventType: events.Imported,
		Resource:  models.ResourceContents,
		Name:      fileName,
		Actor:     cliActor,
		Timestamp: now,
		Payload:   events.ImportedPayload{FileName: fileName, Created: res.Created, Failed: res.Failed},
	}); err != nil {
		log.Warn("Failed to publish import event", logger.Error(err))
	}
}

// Report prints the summary line and a table of failed rows.
func Report(w io.Writer, res *importer.Result) {
	fmt.Fprintf(w, "Imported %d row(s), %d failed\n", res.Created, res.Failed)
	if len(res.Errors) == 0 {
		return
	}

	table := datatable.New("Failed rows",
		datatable.Column[importer.ImportError]{Header: "Row", AlignRight: true, Render: func(e *importer.ImportError) string {
			return strconv.Itoa(e.Row)
		}},
		datatable.Column[importer.ImportError]{Header: "Error", MaxWidth: 80, Render: func(e *importer.ImportError) string {
			return e.Error
		}},
	)
	n := len(res.Errors)
	table.Render(w, res.Errors, models.NewPagination(1, n, n), "")
}
