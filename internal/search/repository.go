package search

import (
	"context"
	"errors"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
)

// Repository keeps the index in step with a content repository and answers
// searches from it. Storage stays the source of truth: index failures are
// logged, and searches fall back to storage when the index errors.
type Repository struct {
	repository.ContentRepository
	index *Index
	log   logger.Logger
}

// Wrap returns base unchanged when index is nil.
func Wrap(base repository.ContentRepository, index *Index, log logger.Logger) repository.ContentRepository {
	if index == nil {
		return base
	}
	return &Repository{ContentRepository: base, index: index, log: log}
}

func (r *Repository) Create(ctx context.Context, c *models.Content) error {
	if err := r.ContentRepository.Create(ctx, c); err != nil {
		return err
	}
	r.sync(ctx, c)
	return nil
}

func (r *Repository) Update(ctx context.Context, c *models.Content) error {
	if err := r.ContentRepository.Update(ctx, c); err != nil {
		return err
	}
	r.sync(ctx, c)
	return nil
}

func (r *Repository) ToggleStatus(ctx context.Context, id string) (*models.Content, error) {
	c, err := r.ContentRepository.ToggleStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	r.sync(ctx, c)
	return c, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ContentRepository.Delete(ctx, id); err != nil {
		return err
	}
	if err := r.index.Remove(ctx, id); err != nil {
		r.log.Warn("Failed to remove content from search index", logger.ContentID(id), logger.Error(err))
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter repository.ListFilter) ([]models.Content, error) {
	if filter.Search == "" {
		return r.ContentRepository.List(ctx, filter)
	}

	ids, _, err := r.index.Search(ctx, filter)
	if err != nil {
		r.log.Warn("Search index unavailable, falling back to storage", logger.Error(err))
		return r.ContentRepository.List(ctx, filter)
	}

	out := make([]models.Content, 0, len(ids))
	for _, id := range ids {
		c, getErr := r.ContentRepository.GetByID(ctx, id)
		if errors.Is(getErr, models.ErrNotFound) {
			continue
		}
		if getErr != nil {
			return nil, getErr
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *Repository) Count(ctx context.Context, filter repository.ListFilter) (int, error) {
	if filter.Search == "" {
		return r.ContentRepository.Count(ctx, filter)
	}

	filter.Limit, filter.Offset = 1, 0
	_, total, err := r.index.Search(ctx, filter)
	if err != nil {
		r.log.Warn("Search index unavailable, falling back to storage", logger.Error(err))
		return r.ContentRepository.Count(ctx, filter)
	}
	return total, nil
}

func (r *Repository) sync(ctx context.Context, c *models.Content) {
	if err := r.index.Put(ctx, c); err != nil {
		r.log.Warn("Failed to index content", logger.ContentID(c.ID), logger.Error(err))
	}
}
