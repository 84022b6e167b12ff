package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vinodtana/ai-tools-admin-web/internal/client"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/records"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
)

// ErrNotToggleable is returned by Toggle for resources without isActive.
var ErrNotToggleable = errors.New("resource has no status toggle")

// Backend is the I/O target of a slice.
type Backend[T any] interface {
	List(ctx context.Context, params models.ListParams, filters map[string]string) (*models.ListResponse[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, body json.RawMessage) (*T, error)
	Update(ctx context.Context, id string, body json.RawMessage) (*T, error)
	Toggle(ctx context.Context, id string) (*T, error)
	Delete(ctx context.Context, id string) error
}

var _ Backend[models.Content] = (*client.Resource[models.Content])(nil)

// LocalBackend works directly on a repository, standing in for the
// browser's localStorage mocks. Writes go through the same builders as the
// API, so validation and defaults match.
type LocalBackend[T any] struct {
	repo    repository.Repository[T]
	decode  func(ctx context.Context, body json.RawMessage, existing *T) (*T, error)
	filters func(filters map[string]string, f *repository.ListFilter) error
}

// NewLocal wraps repo. Bodies decode into Req and are handed to build.
// filters may be nil.
func NewLocal[Req, T any](
	repo repository.Repository[T],
	build records.Builder[Req, T],
	filters func(map[string]string, *repository.ListFilter) error,
) *LocalBackend[T] {
	decode := func(ctx context.Context, body json.RawMessage, existing *T) (*T, error) {
		var req Req
		if existing != nil {
			// updates merge the body over the stored fields
			current, err := json.Marshal(existing)
			if err != nil {
				return nil, fmt.Errorf("encode record: %w", err)
			}
			if err = json.Unmarshal(current, &req); err != nil {
				return nil, fmt.Errorf("decode record: %w", err)
			}
		}
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		return build(ctx, &req, existing)
	}
	return &LocalBackend[T]{repo: repo, decode: decode, filters: filters}
}

func (b *LocalBackend[T]) List(ctx context.Context, params models.ListParams, filters map[string]string) (*models.ListResponse[T], error) {
	params.Normalize()
	f := repository.FilterFromParams(params)
	if b.filters != nil {
		if err := b.filters(filters, &f); err != nil {
			return nil, err
		}
	}

	items, err := b.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := b.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return &models.ListResponse[T]{Data: items, Pagination: models.NewPagination(params.Page, params.Limit, total)}, nil
}

func (b *LocalBackend[T]) Get(ctx context.Context, id string) (*T, error) {
	return b.repo.GetByID(ctx, id)
}

func (b *LocalBackend[T]) Create(ctx context.Context, body json.RawMessage) (*T, error) {
	rec, err := b.decode(ctx, body, nil)
	if err != nil {
		return nil, err
	}
	if err = b.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update merges body over the stored record and rebuilds it.
func (b *LocalBackend[T]) Update(ctx context.Context, id string, body json.RawMessage) (*T, error) {
	existing, err := b.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec, err := b.decode(ctx, body, existing)
	if err != nil {
		return nil, err
	}
	if err = b.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return b.repo.GetByID(ctx, id)
}

func (b *LocalBackend[T]) Toggle(ctx context.Context, id string) (*T, error) {
	if _, ok := any(new(T)).(models.Toggleable); !ok {
		return nil, ErrNotToggleable
	}
	t, ok := b.repo.(repository.ToggleRepository[T])
	if !ok {
		return nil, ErrNotToggleable
	}
	return t.ToggleStatus(ctx, id)
}

func (b *LocalBackend[T]) Delete(ctx context.Context, id string) error {
	return b.repo.Delete(ctx, id)
}

// ContentFilters maps console filter flags onto a content list filter.
func ContentFilters(filters map[string]string, f *repository.ListFilter) error {
	if t := models.ContentType(filters["type"]); t != "" {
		if !t.Valid() {
			return fmt.Errorf("unknown content type %q", t)
		}
		f.Type = t
	}
	return ActiveFilters(filters, f)
}

// ActiveFilters handles status and isActive.
func ActiveFilters(filters map[string]string, f *repository.ListFilter) error {
	f.Status = filters["status"]
	switch filters["isActive"] {
	case "":
	case "true":
		v := true
		f.IsActive = &v
	case "false":
		v := false
		f.IsActive = &v
	default:
		return fmt.Errorf("isActive must be true or false, got %q", filters["isActive"])
	}
	return nil
}
