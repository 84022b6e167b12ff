package importer_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vinodtana/ai-tools-admin-web/internal/importer"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository/local"
)

func workbook(t *testing.T, sheet string, rows ...[]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestParse(t *testing.T) {
	t.Parallel()

	buf := workbook(t, "Sheet1",
		[]any{"Name", "TYPE", "tagline", "overview", "categories", "rating", "usersCount"},
		[]any{"Chat Writer", "tools", "Writes", "<p>x</p>", "Writing|Marketing", "4.5", "10"},
		[]any{},
		[]any{"Bad", "tools", "t", "o", "", "five", ""},
	)

	rows, errs, err := importer.Parse(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, "Chat Writer", rows[0].Request.Name)
	assert.InDelta(t, 4.5, rows[0].Request.Rating, 0.001)
	assert.Equal(t, 10, rows[0].Request.UsersCount)
	assert.Equal(t, models.StringArray{"Writing", "Marketing"}, rows[0].Request.Categories)

	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Row)
	assert.Contains(t, errs[0].Error, "rating")
}

func TestParseMissingColumns(t *testing.T) {
	t.Parallel()

	buf := workbook(t, "Sheet1", []any{"name", "type"})
	_, _, err := importer.Parse(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tagline")
	assert.Contains(t, err.Error(), "overview")
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, _, err := importer.Parse(bytes.NewBufferString("not a spreadsheet"))
	require.Error(t, err)
}

func TestTemplateRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, importer.WriteTemplate(&buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetRows(importer.SheetName)
	require.NoError(t, err)
	require.NotEmpty(t, header)
	assert.Equal(t, importer.Columns, header[0])

	rows, errs, err := importer.Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Len(t, rows, 2)
}

type failingCreator struct{}

func (failingCreator) Create(context.Context, *models.Content) error {
	return errors.New("disk full")
}

func TestImport(t *testing.T) {
	t.Parallel()

	blob, err := local.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	repo := local.NewContentRepository(blob)

	buf := workbook(t, importer.SheetName,
		[]any{"type", "name", "tagline", "overview", "images"},
		[]any{"tools", "One", "first", "<p>1</p>", ""},
		[]any{"gadgets", "Two", "second", "<p>2</p>", ""},
		[]any{"news", "Three", "third", "<p>3</p>", "a|b|c"},
	)

	res, err := importer.New(repo, 2, logger.NewNop()).Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Error, "type")
	assert.Equal(t, 4, res.Errors[1].Row)
	assert.Contains(t, res.Errors[1].Error, "images")

	stored, err := repo.List(context.Background(), repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "One", stored[0].Name)
	assert.Equal(t, models.StatusDraft, stored[0].Status)
	assert.True(t, stored[0].IsActive)
	assert.Equal(t, []string{stored[0].ID}, res.IDs)
}

func TestImportRejectsBadCountsAndURLs(t *testing.T) {
	t.Parallel()

	blob, err := local.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	repo := local.NewContentRepository(blob)

	buf := workbook(t, importer.SheetName,
		[]any{"type", "name", "tagline", "overview", "toolUrl", "usersCount"},
		[]any{"tools", "Negative", "t", "<p>o</p>", "https://tool.example", "-4"},
		[]any{"tools", "NoScheme", "t", "<p>o</p>", "tool.example/page", "1"},
		[]any{"tools", "Fine", "t", "<p>o</p>", "https://tool.example", "4"},
	)

	res, err := importer.New(repo, 10, logger.NewNop()).Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Error, "usersCount")
	assert.Equal(t, 3, res.Errors[1].Row)
	assert.Contains(t, res.Errors[1].Error, "toolUrl")
}

func TestImportCollectsCreateErrors(t *testing.T) {
	t.Parallel()

	buf := workbook(t, "Sheet1",
		[]any{"type", "name", "tagline", "overview"},
		[]any{"tools", "One", "first", "<p>1</p>"},
	)

	res, err := importer.New(failingCreator{}, 0, logger.NewNop()).Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "disk full", res.Errors[0].Error)
}
