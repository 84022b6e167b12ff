package bootstrap

import (
	"context"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
	"github.com/vinodtana/ai-tools-admin-web/internal/search"
)

// SetupSearch wraps contents with the Elasticsearch mirror. On a fresh index
// every stored record is indexed. Search failures leave contents unwrapped.
func SetupSearch(
	ctx context.Context,
	cfg config.SearchConfig,
	contents repository.ContentRepository,
	log logger.Logger,
) (repository.ContentRepository, *es.Client) {
	if !cfg.Enabled {
		return contents, nil
	}

	client, err := search.NewClient(ctx, cfg, log)
	if err != nil {
		log.Warn("Elasticsearch not available, search disabled", logger.Error(err))
		return contents, nil
	}

	index := search.NewIndex(client, cfg.Index, log)
	created, err := index.Ensure(ctx)
	if err != nil {
		log.Warn("Failed to ensure search index, search disabled",
			logger.String("index", cfg.Index),
			logger.Error(err),
		)
		return contents, nil
	}

	if created {
		n, reindexErr := index.Reindex(ctx, contents)
		if reindexErr != nil {
			log.Warn("Initial reindex failed", logger.Error(reindexErr))
		} else {
			log.Info("Search index populated", logger.String("index", cfg.Index), logger.Int("documents", n))
		}
	}

	return search.Wrap(contents, index, log), client
}
