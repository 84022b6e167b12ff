package datatable_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vinodtana/ai-tools-admin-web/internal/datatable"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

func TestCaption(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Page 2 of 3 · 25 total", datatable.Caption(models.NewPagination(2, 10, 25), ""))
	assert.Equal(t, `Page 1 of 1 · 1 total · search "chat"`, datatable.Caption(models.NewPagination(1, 10, 1), " chat "))
	assert.Equal(t, "Page 0 of 0 · 0 total", datatable.Caption(models.NewPagination(1, 10, 0), ""))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", datatable.Truncate("short", 10))
	assert.Equal(t, "abcd…", datatable.Truncate("abcdefgh", 5))
	assert.Equal(t, "…", datatable.Truncate("abc", 1))
	assert.Equal(t, "héllo", datatable.Truncate(" héllo ", 0))
}

func TestRender_RowsNumberedFromPageOffset(t *testing.T) {
	t.Parallel()

	rows := []models.Category{
		{ID: "c1", Name: "Writing", Status: models.StatusPublished, IsActive: true},
		{ID: "c2", Name: "Video", Status: models.StatusDraft},
	}
	var buf bytes.Buffer
	datatable.CategoryTable().Render(&buf, rows, models.NewPagination(3, 2, 6), "")

	out := buf.String()
	assert.Contains(t, out, "AI Categories")
	assert.Contains(t, out, "Writing")
	assert.Contains(t, out, "Inactive")
	assert.Contains(t, out, " 5 ")
	assert.Contains(t, out, " 6 ")
	assert.Contains(t, out, "Page 3 of 3 · 6 total")
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	datatable.ContactTable().Render(&buf, nil, models.NewPagination(1, 10, 0), "nobody")

	assert.Contains(t, buf.String(), "No records found")
	assert.Contains(t, buf.String(), `search "nobody"`)
}

func TestContentTable_PlanColumnOnlyForTools(t *testing.T) {
	t.Parallel()

	rec := []models.Content{{
		ID: "t1", Type: models.ContentTypeTools, Name: "Chatty", Tagline: "Talks",
		Categories: models.StringArray{"Writing", "Chat"}, PlanType: models.PlanFree,
		Status: models.StatusPublished, IsActive: true,
	}}

	var tools bytes.Buffer
	datatable.ContentTable(models.ContentTypeTools).Render(&tools, rec, models.NewPagination(1, 10, 1), "")
	assert.Contains(t, tools.String(), "AI Tools")
	assert.Contains(t, tools.String(), "PLAN")
	assert.Contains(t, tools.String(), "Writing, Chat")

	var prompts bytes.Buffer
	datatable.ContentTable(models.ContentTypePrompts).Render(&prompts, nil, models.NewPagination(1, 10, 0), "")
	assert.Contains(t, prompts.String(), "AI Prompts")
	assert.NotContains(t, prompts.String(), "PLAN")
}

func TestStatsAndActivityTables(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	stats := []models.StatCard{{Key: "tools", Title: "AI Tools", Value: 12}, {Key: "rating", Title: "Avg Rating", Value: 4.5}}
	datatable.StatsTable().Render(&buf, stats, models.NewPagination(1, len(stats), len(stats)), "")
	assert.Contains(t, buf.String(), "4.5")
	assert.Contains(t, buf.String(), "12")

	buf.Reset()
	feed := []models.Activity{{
		Action: "created", Resource: "contents", Name: "Chatty", Actor: "admin@example.com",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	}}
	datatable.ActivityTable().Render(&buf, feed, models.NewPagination(1, 1, 1), "")
	assert.Contains(t, buf.String(), "2026-01-02 03:04")
	assert.Contains(t, buf.String(), "admin@example.com")
}
