package bootstrap

import (
	"context"
	"fmt"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/content"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/metadata"
	"github.com/vinodtana/ai-tools-admin-web/internal/metrics"
	"github.com/vinodtana/ai-tools-admin-web/internal/uploads"
)

// SetupContent builds the content service every write path shares. The
// bucket is nil when uploads are not configured. m may be nil.
func SetupContent(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log logger.Logger) (*content.Service, *uploads.Service, error) {
	scraper := metadata.NewScraper(cfg.Scraper, log)
	bucket, err := uploads.New(ctx, cfg.Uploads, scraper.Client(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("setup uploads: %w", err)
	}
	return content.NewService(scraper, bucket, m, cfg.Uploads.MaxImages, log), bucket, nil
}
