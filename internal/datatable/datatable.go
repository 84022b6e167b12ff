// Package datatable renders paginated record lists as terminal tables.
package datatable

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// Column renders one cell per row.
type Column[T any] struct {
	Header     string
	Render     func(rec *T) string
	MaxWidth   int
	AlignRight bool
}

// Table is a column definition list plus a title.
type Table[T any] struct {
	Title   string
	Columns []Column[T]
	Style   table.Style
}

// New uses the light style.
func New[T any](title string, columns ...Column[T]) *Table[T] {
	return &Table[T]{Title: title, Columns: columns, Style: table.StyleLight}
}

// Render writes rows with a header, and a caption with the page position
// and the active search term.
func (t *Table[T]) Render(w io.Writer, rows []T, p models.Pagination, search string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(t.Style)
	if t.Title != "" {
		tw.SetTitle(t.Title)
	}

	header := make(table.Row, 0, len(t.Columns)+1)
	header = append(header, "#")
	configs := make([]table.ColumnConfig, 0, len(t.Columns))
	for i, col := range t.Columns {
		header = append(header, col.Header)
		cfg := table.ColumnConfig{Number: i + 2, WidthMax: col.MaxWidth}
		if col.AlignRight {
			cfg.Align = text.AlignRight
		}
		configs = append(configs, cfg)
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	offset := 0
	if p.Page > 1 && p.Limit > 0 {
		offset = (p.Page - 1) * p.Limit
	}
	for i := range rows {
		row := make(table.Row, 0, len(t.Columns)+1)
		row = append(row, offset+i+1)
		for _, col := range t.Columns {
			row = append(row, col.Render(&rows[i]))
		}
		tw.AppendRow(row)
	}

	if len(rows) == 0 {
		tw.AppendRow(table.Row{"", "No records found"})
	}
	tw.SetCaption(Caption(p, search))
	tw.Render()
}

// Caption is "Page 2 of 3 · 25 total", with the search term appended.
func Caption(p models.Pagination, search string) string {
	pages := p.TotalPages
	page := p.Page
	if pages == 0 {
		page = 0
	}
	caption := fmt.Sprintf("Page %d of %d · %d total", page, pages, p.Total)
	if s := strings.TrimSpace(search); s != "" {
		caption += fmt.Sprintf(" · search %q", s)
	}
	return caption
}

// Truncate shortens s to n runes with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if n <= 0 || len(r) <= n {
		return string(r)
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
