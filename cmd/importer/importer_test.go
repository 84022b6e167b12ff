package importer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/cmd/common"
	cmdimporter "github.com/vinodtana/ai-tools-admin-web/cmd/importer"
	"github.com/vinodtana/ai-tools-admin-web/internal/importer"
)

func TestTemplateCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "contents.xlsx")

	cmd := cmdimporter.Command(&common.Options{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"template", out})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Template written to")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	rows, errs, err := importer.Parse(f)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Len(t, rows, 2)
}

func TestImportCommand_LocalStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORAGE_DRIVER", "local")
	t.Setenv("STORAGE_LOCAL_PATH", filepath.Join(dir, "store.json"))
	// the example tool row has a toolUrl, so the import tries to scrape it
	t.Setenv("SCRAPER_TIMEOUT", "2s")

	sheet := filepath.Join(dir, "in.xlsx")
	f, err := os.Create(sheet)
	require.NoError(t, err)
	require.NoError(t, importer.WriteTemplate(f))
	require.NoError(t, f.Close())

	cmd := cmdimporter.Command(&common.Options{ConfigPath: filepath.Join(dir, "missing.yml")})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{sheet})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Imported 2 row(s), 0 failed")
}

func TestReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmdimporter.Report(&buf, &importer.Result{
		Created: 1,
		Failed:  1,
		Errors:  []importer.ImportError{{Row: 3, Error: "name is required"}},
	})

	out := buf.String()
	assert.Contains(t, out, "Imported 1 row(s), 1 failed")
	assert.Contains(t, out, "Failed rows")
	assert.Contains(t, out, "name is required")
}
