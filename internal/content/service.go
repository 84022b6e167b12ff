// Package content prepares catalog records for storage and fills missing
// media from the tool's own web page. Editor HTML is stored as submitted.
package content

import (
	"context"
	"errors"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/metadata"
	"github.com/vinodtana/ai-tools-admin-web/internal/metrics"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/uploads"
)

// Scraper extracts page metadata.
type Scraper interface {
	Scrape(ctx context.Context, pageURL string) (*metadata.Result, error)
}

// Rehoster copies a remote image into the bucket.
type Rehoster interface {
	Rehost(ctx context.Context, srcURL string) (string, error)
}

// Service is safe for concurrent use.
type Service struct {
	scraper   Scraper
	images    Rehoster
	metrics   *metrics.Metrics
	maxImages int
	log       logger.Logger
}

// ErrNoScraper is returned by Lookup when the service was built without a scraper.
var ErrNoScraper = errors.New("metadata scraping is not configured")

// NewService accepts nil images and metrics; scraped URLs are then kept as-is.
// A nil scraper turns enrichment off.
func NewService(scraper Scraper, images Rehoster, m *metrics.Metrics, maxImages int, log logger.Logger) *Service {
	return &Service{scraper: scraper, images: images, metrics: m, maxImages: maxImages, log: log}
}

// MaxImages is the per-record image limit.
func (s *Service) MaxImages() int { return s.maxImages }

// Prepare cleans and validates req and returns the record to store. With
// a nil existing record a new active record is built; otherwise existing
// is copied and replaced field by field.
func (s *Service) Prepare(ctx context.Context, req *models.ContentRequest, existing *models.Content) (*models.Content, error) {
	req.Clean()
	if err := req.Validate(s.maxImages); err != nil {
		return nil, err
	}

	var (
		rec         *models.Content
		previousURL string
	)
	if existing == nil {
		rec = req.NewContent()
	} else {
		copied := *existing
		rec = &copied
		previousURL = existing.ToolURL
		req.ApplyTo(rec)
	}

	if s.scraper != nil && rec.NeedsScrape(previousURL) {
		s.enrich(ctx, rec)
	}
	return rec, nil
}

// enrich fills only empty media fields. Failures are logged and the write
// goes ahead without them.
func (s *Service) enrich(ctx context.Context, rec *models.Content) {
	log := logger.FromContext(ctx, s.log)

	res, err := s.scraper.Scrape(ctx, rec.ToolURL)
	s.metrics.RecordScrape(err)
	if err != nil {
		log.Warn("Metadata scrape failed",
			logger.String("tool_url", rec.ToolURL),
			logger.Error(err),
		)
		return
	}

	if rec.Description == "" && res.Description != "" {
		rec.Description = res.Description
	}
	if rec.Logo == "" && res.Logo != "" {
		rec.Logo = s.rehost(ctx, res.Logo)
	}
	if rec.BannerImage == "" && res.Screenshot != "" {
		rec.BannerImage = s.rehost(ctx, res.Screenshot)
	}
	if len(rec.Images) == 0 && rec.BannerImage != "" && s.maxImages > 0 {
		rec.Images = models.StringArray{rec.BannerImage}
	}

	log.Debug("Content enriched from tool page",
		logger.String("tool_url", rec.ToolURL),
		logger.Bool("has_logo", rec.Logo != ""),
		logger.Bool("has_banner", rec.BannerImage != ""),
	)
}

// Lookup scrapes pageURL for the form's "fetch details" button.
func (s *Service) Lookup(ctx context.Context, pageURL string) (*models.ScrapeResponse, error) {
	if s.scraper == nil {
		return nil, ErrNoScraper
	}
	res, err := s.scraper.Scrape(ctx, pageURL)
	s.metrics.RecordScrape(err)
	if err != nil {
		return nil, err
	}

	return &models.ScrapeResponse{
		Name:        res.Name,
		Description: res.Description,
		Screenshot:  s.rehost(ctx, res.Screenshot),
		Logo:        s.rehost(ctx, res.Logo),
	}, nil
}

// rehost returns the bucket URL for src, or src itself when the bucket is
// unavailable.
func (s *Service) rehost(ctx context.Context, src string) string {
	if src == "" || s.images == nil {
		return src
	}

	hosted, err := s.images.Rehost(ctx, src)
	if err != nil {
		if !errors.Is(err, uploads.ErrDisabled) {
			logger.FromContext(ctx, s.log).Warn("Image re-host failed, keeping source URL",
				logger.String("source", src),
				logger.Error(err),
			)
		}
		return src
	}
	return hosted
}
