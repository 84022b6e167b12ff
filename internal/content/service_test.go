package content_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/content"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/metadata"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/uploads"
)

type mockScraper struct{ mock.Mock }

func (m *mockScraper) Scrape(ctx context.Context, pageURL string) (*metadata.Result, error) {
	args := m.Called(ctx, pageURL)
	res, _ := args.Get(0).(*metadata.Result)
	return res, args.Error(1)
}

type prefixRehoster struct {
	err   error
	calls []string
}

func (p *prefixRehoster) Rehost(_ context.Context, src string) (string, error) {
	p.calls = append(p.calls, src)
	if p.err != nil {
		return "", p.err
	}
	return "https://bucket.example/" + src[len("https://tool.example/"):], nil
}

func toolRequest() *models.ContentRequest {
	return &models.ContentRequest{
		Type:     models.ContentTypeTools,
		Name:     " Writer ",
		Tagline:  "Writes",
		Overview: "<p>Hello</p>",
		ToolURL:  "https://tool.example",
	}
}

func scraped() *metadata.Result {
	return &metadata.Result{
		Name:        "Writer",
		Description: "An AI writer",
		Screenshot:  "https://tool.example/og.png",
		Logo:        "https://tool.example/icon.png",
	}
}

func TestPrepareCreateScrapesAndRehosts(t *testing.T) {
	t.Parallel()

	sc := &mockScraper{}
	sc.On("Scrape", mock.Anything, "https://tool.example").Return(scraped(), nil).Once()
	rh := &prefixRehoster{}
	svc := content.NewService(sc, rh, nil, 10, logger.NewNop())

	rec, err := svc.Prepare(context.Background(), toolRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Writer", rec.Name)
	assert.True(t, rec.IsActive)
	assert.Equal(t, models.StatusDraft, rec.Status)
	assert.Equal(t, "<p>Hello</p>", rec.Overview)
	assert.Equal(t, "An AI writer", rec.Description)
	assert.Equal(t, "https://bucket.example/icon.png", rec.Logo)
	assert.Equal(t, "https://bucket.example/og.png", rec.BannerImage)
	assert.Equal(t, models.StringArray{"https://bucket.example/og.png"}, rec.Images)
	sc.AssertExpectations(t)
}

func TestPrepareUpdateKeepsExistingMediaAndSkipsUnchangedURL(t *testing.T) {
	t.Parallel()

	sc := &mockScraper{}
	svc := content.NewService(sc, nil, nil, 10, logger.NewNop())

	existing := &models.Content{ID: "c1", ToolURL: "https://tool.example", ViewsCount: 7}
	rec, err := svc.Prepare(context.Background(), toolRequest(), existing)
	require.NoError(t, err)

	assert.Equal(t, "c1", rec.ID)
	assert.Empty(t, existing.Name, "existing record is not mutated")
	assert.Equal(t, "Writer", rec.Name)
	sc.AssertNotCalled(t, "Scrape", mock.Anything, mock.Anything)
}

func TestPrepareScrapeFailureDoesNotFailWrite(t *testing.T) {
	t.Parallel()

	sc := &mockScraper{}
	sc.On("Scrape", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	svc := content.NewService(sc, nil, nil, 10, logger.NewNop())

	rec, err := svc.Prepare(context.Background(), toolRequest(), nil)
	require.NoError(t, err)
	assert.Empty(t, rec.Logo)
	assert.Empty(t, rec.BannerImage)
}

func TestPrepareKeepsSourceURLWhenRehostFails(t *testing.T) {
	t.Parallel()

	sc := &mockScraper{}
	sc.On("Scrape", mock.Anything, mock.Anything).Return(scraped(), nil)
	svc := content.NewService(sc, &prefixRehoster{err: uploads.ErrDisabled}, nil, 10, logger.NewNop())

	rec, err := svc.Prepare(context.Background(), toolRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://tool.example/icon.png", rec.Logo)
	assert.Equal(t, "https://tool.example/og.png", rec.BannerImage)
}

func TestPrepareValidation(t *testing.T) {
	t.Parallel()

	svc := content.NewService(&mockScraper{}, nil, nil, 2, logger.NewNop())

	req := &models.ContentRequest{Type: models.ContentTypeNews, Name: "n", Tagline: "t", Overview: "   "}
	_, err := svc.Prepare(context.Background(), req, nil)
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "overview", verrs[0].Field)

	req = &models.ContentRequest{
		Type: models.ContentTypeNews, Name: "n", Tagline: "t", Overview: "o",
		Images: models.StringArray{"a", "b", "c"}, PlanType: models.PlanPaid,
	}
	_, err = svc.Prepare(context.Background(), req, nil)
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "images", verrs[0].Field)
	assert.Empty(t, req.PlanType, "plan is dropped for non-tool content")
}

func TestPrepareStoresRichTextVerbatim(t *testing.T) {
	t.Parallel()

	const (
		template = "Summarize <text> where x < 5 & y > 3. Output as <ul><li>items</li></ul>"
		overview = "Use A & B <b>now</b>"
		howTo    = `<p onclick="x()">Step</p>`
	)
	req := &models.ContentRequest{
		Type: models.ContentTypePrompts, Name: "Summarizer", Tagline: "Short",
		Overview: overview, PromptTemplate: template, HowToUse: howTo,
	}

	svc := content.NewService(nil, nil, nil, 10, logger.NewNop())
	rec, err := svc.Prepare(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, template, rec.PromptTemplate)
	assert.Equal(t, overview, rec.Overview)
	assert.Equal(t, howTo, rec.HowToUse)

	rec, err = svc.Prepare(context.Background(), req, rec)
	require.NoError(t, err)
	assert.Equal(t, template, rec.PromptTemplate)
	assert.Equal(t, overview, rec.Overview)
}

func TestLookupWithoutScraper(t *testing.T) {
	t.Parallel()

	_, err := content.NewService(nil, nil, nil, 10, logger.NewNop()).Lookup(context.Background(), "https://tool.example")
	require.ErrorIs(t, err, content.ErrNoScraper)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	sc := &mockScraper{}
	sc.On("Scrape", mock.Anything, "https://tool.example").Return(scraped(), nil)
	rh := &prefixRehoster{}
	svc := content.NewService(sc, rh, nil, 10, logger.NewNop())

	res, err := svc.Lookup(context.Background(), "https://tool.example")
	require.NoError(t, err)
	assert.Equal(t, "Writer", res.Name)
	assert.Equal(t, "https://bucket.example/og.png", res.Screenshot)
	assert.Equal(t, "https://bucket.example/icon.png", res.Logo)
	assert.Len(t, rh.calls, 2)

	sc2 := &mockScraper{}
	sc2.On("Scrape", mock.Anything, mock.Anything).Return(nil, metadata.ErrBlockedHost)
	_, err = content.NewService(sc2, nil, nil, 10, logger.NewNop()).Lookup(context.Background(), "http://localhost")
	require.ErrorIs(t, err, metadata.ErrBlockedHost)
}
