package models_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 25, 4},
		{7, 0, 0},
		{-3, 10, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, models.TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestListParams_Normalize(t *testing.T) {
	t.Parallel()

	p := models.ListParams{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = models.ListParams{Page: 3, Limit: 500}
	p.Normalize()
	assert.Equal(t, models.MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestNewPagination(t *testing.T) {
	t.Parallel()

	p := models.NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrev())

	last := models.NewPagination(3, 10, 25)
	assert.False(t, last.HasNext())
}

func validContentRequest() models.ContentRequest {
	return models.ContentRequest{
		Type:     models.ContentTypeTools,
		Name:     "Writer",
		Tagline:  "Writes things",
		Overview: "<p>Overview</p>",
	}
}

func TestContentRequest_RequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*models.ContentRequest)
		wantField string
	}{
		{"blank name", func(r *models.ContentRequest) { r.Name = "   " }, "name"},
		{"blank tagline", func(r *models.ContentRequest) { r.Tagline = "" }, "tagline"},
		{"blank overview", func(r *models.ContentRequest) { r.Overview = "\n" }, "overview"},
		{"unknown type", func(r *models.ContentRequest) { r.Type = "videos" }, "type"},
		{"bad plan", func(r *models.ContentRequest) { r.PlanType = "gold" }, "planType"},
		{"bad rating", func(r *models.ContentRequest) { r.Rating = 7 }, "rating"},
		{"bad status", func(r *models.ContentRequest) { r.Status = "Archived" }, "status"},
		{"negative users", func(r *models.ContentRequest) { r.UsersCount = -1 }, "usersCount"},
		{"negative views", func(r *models.ContentRequest) { r.ViewsCount = -3 }, "viewsCount"},
		{"relative tool url", func(r *models.ContentRequest) { r.ToolURL = "tool.example/page" }, "toolUrl"},
		{"non-web tool url", func(r *models.ContentRequest) { r.ToolURL = "ftp://tool.example" }, "toolUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validContentRequest()
			tt.mutate(&req)
			req.Clean()

			err := req.Validate(10)
			var verrs models.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantField, verrs[0].Field)
		})
	}
}

func TestContentRequest_ImageLimit(t *testing.T) {
	t.Parallel()

	req := validContentRequest()
	for range 11 {
		req.Images = append(req.Images, "https://cdn.example/a.png")
	}
	req.Clean()
	require.Error(t, req.Validate(10))

	req.Images = req.Images[:10]
	require.NoError(t, req.Validate(10))
}

func TestContentRequest_CleanStripsEmptyValues(t *testing.T) {
	t.Parallel()

	req := validContentRequest()
	req.Type = " Prompts "
	req.PlanType = models.PlanPaid
	req.Features = models.StringArray{"fast", " ", "", " cheap "}
	req.Name = "  Prompt pack  "

	req.Clean()
	require.NoError(t, req.Validate(10))

	assert.Equal(t, models.ContentTypePrompts, req.Type)
	assert.Empty(t, req.PlanType, "plan only applies to tools")
	assert.Equal(t, models.StringArray{"fast", "cheap"}, req.Features)
	assert.Equal(t, "Prompt pack", req.Name)
	assert.Equal(t, models.StatusDraft, req.Status)
}

func TestContentRequest_NewContentIsActive(t *testing.T) {
	t.Parallel()

	inactive := false
	req := validContentRequest()
	req.IsActive = &inactive
	req.Clean()

	c := req.NewContent()
	assert.True(t, c.IsActive)
}

func TestToggleActive(t *testing.T) {
	t.Parallel()

	c := &models.Content{IsActive: true}
	c.ToggleActive()
	assert.False(t, c.IsActive)
	c.ToggleActive()
	assert.True(t, c.IsActive)

	cat := &models.Category{}
	cat.ToggleActive()
	assert.True(t, cat.IsActive)
}

func TestNeedsScrape(t *testing.T) {
	t.Parallel()

	c := &models.Content{ToolURL: "https://tool.example"}
	assert.True(t, c.NeedsScrape(""))
	assert.False(t, c.NeedsScrape("https://tool.example"))

	c.Logo, c.BannerImage, c.Description = "l", "b", "d"
	assert.False(t, c.NeedsScrape("https://old.example"))
}

func TestStringArray_ValueScan(t *testing.T) {
	t.Parallel()

	v, err := models.StringArray{"a", "b"}.Value()
	require.NoError(t, err)

	var got models.StringArray
	require.NoError(t, got.Scan(v))
	assert.Equal(t, models.StringArray{"a", "b"}, got)

	require.NoError(t, got.Scan(nil))
	assert.Empty(t, got)

	require.Error(t, got.Scan(42))
}

func TestStaffAndContactValidation(t *testing.T) {
	t.Parallel()

	staff := models.ManageUserRequest{Name: "Ada", Email: " ADA@Example.com "}
	staff.Clean()
	require.NoError(t, staff.Validate())
	assert.Equal(t, "ada@example.com", staff.Email)
	assert.Equal(t, models.RoleViewer, staff.Role)

	staff.Role = "Root"
	require.Error(t, staff.Validate())

	contact := models.ContactRequest{Email: "x@example.com", Message: "   "}
	contact.Clean()
	require.Error(t, contact.Validate())

	cat := models.CategoryRequest{Name: " "}
	cat.Clean()
	require.Error(t, cat.Validate())
}
