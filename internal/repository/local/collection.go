package local

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
)

// collection implements repository.ToggleRepository[T] on one blob key.
// Records are kept oldest first; lists default to newest first.
type collection[T any, PT interface {
	*T
	models.Record
}] struct {
	blob *Blob
	key  string
	now  func() time.Time

	// filter applies resource-specific ListFilter fields beyond Search.
	filter func(*T, repository.ListFilter) bool
	// sortValue returns the comparable value for an API sort key.
	sortValue func(*T, string) (string, bool)
	// unique returns a key that must not repeat across records ("" = none).
	unique func(*T) string

	decode func(json.RawMessage) ([]T, error)
	encode func([]T) (json.RawMessage, error)
}

func newCollection[T any, PT interface {
	*T
	models.Record
}](blob *Blob, key string) *collection[T, PT] {
	return &collection[T, PT]{
		blob: blob,
		key:  key,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (c *collection[T, PT]) readAll(doc map[string]json.RawMessage) ([]T, error) {
	if c.decode == nil {
		return readKey[T](doc, c.key)
	}
	raw, ok := doc[c.key]
	if !ok {
		return []T{}, nil
	}
	return c.decode(raw)
}

func (c *collection[T, PT]) writeAll(doc map[string]json.RawMessage, items []T) error {
	if c.encode == nil {
		return writeKey(doc, c.key, items)
	}
	raw, err := c.encode(items)
	if err != nil {
		return err
	}
	doc[c.key] = raw
	return nil
}

// view loads the collection under the blob lock.
func (c *collection[T, PT]) view() ([]T, error) {
	c.blob.mu.Lock()
	defer c.blob.mu.Unlock()

	doc, err := c.blob.load()
	if err != nil {
		return nil, err
	}
	return c.readAll(doc)
}

// mutate runs fn on the collection and saves the result when fn succeeds.
func (c *collection[T, PT]) mutate(fn func([]T) ([]T, error)) error {
	c.blob.mu.Lock()
	defer c.blob.mu.Unlock()

	doc, err := c.blob.load()
	if err != nil {
		return err
	}
	items, err := c.readAll(doc)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	if err = c.writeAll(doc, items); err != nil {
		return err
	}
	return c.blob.save(doc)
}

func (c *collection[T, PT]) conflicts(items []T, rec *T) bool {
	if c.unique == nil {
		return false
	}
	key := c.unique(rec)
	if key == "" {
		return false
	}
	for i := range items {
		if PT(&items[i]).GetID() != PT(rec).GetID() && c.unique(&items[i]) == key {
			return true
		}
	}
	return false
}

func (c *collection[T, PT]) Create(_ context.Context, rec *T) error {
	PT(rec).Init(uuid.NewString(), c.now())

	return c.mutate(func(items []T) ([]T, error) {
		if c.conflicts(items, rec) {
			return nil, fmt.Errorf("create %s: %w", c.key, models.ErrAlreadyExists)
		}
		return append(items, *rec), nil
	})
}

func (c *collection[T, PT]) GetByID(_ context.Context, id string) (*T, error) {
	items, err := c.view()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if PT(&items[i]).GetID() == id {
			return &items[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (c *collection[T, PT]) matching(items []T, filter repository.ListFilter) []T {
	search := strings.TrimSpace(filter.Search)
	out := make([]T, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		rec := &items[i]
		if search != "" && !PT(rec).MatchesSearch(search) {
			continue
		}
		if c.filter != nil && !c.filter(rec, filter) {
			continue
		}
		out = append(out, *rec)
	}
	return out
}

func (c *collection[T, PT]) List(_ context.Context, filter repository.ListFilter) ([]T, error) {
	items, err := c.view()
	if err != nil {
		return nil, err
	}

	out := c.matching(items, filter)
	c.sort(out, filter)

	if filter.Offset >= len(out) {
		return []T{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (c *collection[T, PT]) sort(items []T, filter repository.ListFilter) {
	if c.sortValue == nil || filter.SortBy == "" {
		if strings.EqualFold(filter.SortOrder, "asc") {
			reverse(items)
		}
		return
	}
	if _, ok := c.sortValue(new(T), filter.SortBy); !ok {
		return
	}

	desc := strings.EqualFold(filter.SortOrder, "desc")
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := c.sortValue(&items[i], filter.SortBy)
		b, _ := c.sortValue(&items[j], filter.SortBy)
		if desc {
			return a > b
		}
		return a < b
	})
}

func (c *collection[T, PT]) Count(_ context.Context, filter repository.ListFilter) (int, error) {
	items, err := c.view()
	if err != nil {
		return 0, err
	}
	return len(c.matching(items, filter)), nil
}

func (c *collection[T, PT]) Update(_ context.Context, rec *T) error {
	PT(rec).Touch(c.now())

	return c.mutate(func(items []T) ([]T, error) {
		for i := range items {
			if PT(&items[i]).GetID() != PT(rec).GetID() {
				continue
			}
			if c.conflicts(items, rec) {
				return nil, fmt.Errorf("update %s: %w", c.key, models.ErrAlreadyExists)
			}
			items[i] = *rec
			return items, nil
		}
		return nil, models.ErrNotFound
	})
}

func (c *collection[T, PT]) Delete(_ context.Context, id string) error {
	return c.mutate(func(items []T) ([]T, error) {
		for i := range items {
			if PT(&items[i]).GetID() == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, models.ErrNotFound
	})
}

func (c *collection[T, PT]) ToggleStatus(_ context.Context, id string) (*T, error) {
	var toggled T
	err := c.mutate(func(items []T) ([]T, error) {
		for i := range items {
			rec := PT(&items[i])
			if rec.GetID() != id {
				continue
			}
			t, ok := any(rec).(models.Toggleable)
			if !ok {
				return nil, fmt.Errorf("toggle %s: records have no active flag", c.key)
			}
			t.ToggleActive()
			rec.Touch(c.now())
			toggled = items[i]
			return items, nil
		}
		return nil, models.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &toggled, nil
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
