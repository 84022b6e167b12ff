// Package store holds the operator console's client-side state: one slice
// per resource, mutated only through its action methods.
package store

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// State is a snapshot of a slice.
type State[T any] struct {
	Items      []T
	Pagination models.Pagination
	Params     models.ListParams
	Filters    map[string]string
	Current    *T
	Loading    bool
	Error      string
}

// Slice proxies CRUD calls for one resource and keeps the last results.
type Slice[T any] struct {
	name    string
	backend Backend[T]
	id      func(*T) string
	notify  func(Toast)

	mu    sync.Mutex
	state State[T]
}

func newSlice[T any](name string, backend Backend[T], id func(*T) string, notify func(Toast)) *Slice[T] {
	return &Slice[T]{
		name:    name,
		backend: backend,
		id:      id,
		notify:  notify,
		state: State[T]{
			Items:   []T{},
			Params:  models.ListParams{Page: models.DefaultPage, Limit: models.DefaultLimit},
			Filters: map[string]string{},
		},
	}
}

// Name is the display label used in toasts.
func (s *Slice[T]) Name() string { return s.name }

// Snapshot returns a copy of the current state.
func (s *Slice[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Items = slices.Clone(s.state.Items)
	st.Filters = make(map[string]string, len(s.state.Filters))
	for k, v := range s.state.Filters {
		st.Filters[k] = v
	}
	return st
}

func (s *Slice[T]) begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *Slice[T]) fail(err error) error {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = err.Error()
	s.mu.Unlock()
	s.notify(ErrorToast(err))
	return err
}

// Fetch loads a page and replaces Items.
func (s *Slice[T]) Fetch(ctx context.Context, params models.ListParams, filters map[string]string) error {
	s.begin()
	params.Normalize()

	res, err := s.backend.List(ctx, params, filters)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.state.Items = res.Data
	s.state.Pagination = res.Pagination
	s.state.Params = params
	s.state.Filters = filters
	if s.state.Filters == nil {
		s.state.Filters = map[string]string{}
	}
	s.state.Loading = false
	s.mu.Unlock()
	return nil
}

// Page refetches with the previous filters at page.
func (s *Slice[T]) Page(ctx context.Context, page int) error {
	st := s.Snapshot()
	st.Params.Page = page
	return s.Fetch(ctx, st.Params, st.Filters)
}

// Search refetches page 1 for q with the previous filters.
func (s *Slice[T]) Search(ctx context.Context, q string) error {
	st := s.Snapshot()
	st.Params.Search = q
	st.Params.Page = 1
	return s.Fetch(ctx, st.Params, st.Filters)
}

// Get loads one record into Current.
func (s *Slice[T]) Get(ctx context.Context, id string) (*T, error) {
	s.begin()
	rec, err := s.backend.Get(ctx, id)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	s.state.Current = rec
	s.state.Loading = false
	s.mu.Unlock()
	return rec, nil
}

// Create submits body after stripping empty values.
func (s *Slice[T]) Create(ctx context.Context, body json.RawMessage) (*T, error) {
	s.begin()
	clean, err := StripEmpty(body)
	if err != nil {
		return nil, s.fail(err)
	}
	rec, err := s.backend.Create(ctx, clean)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.Items = append([]T{*rec}, s.state.Items...)
	s.state.Pagination.Total++
	s.state.Pagination.TotalPages = models.TotalPages(s.state.Pagination.Total, s.state.Params.Limit)
	s.state.Current = rec
	s.state.Loading = false
	s.mu.Unlock()

	s.notify(SuccessToast(s.name + " created successfully"))
	return rec, nil
}

// Update submits body for id after stripping empty values.
func (s *Slice[T]) Update(ctx context.Context, id string, body json.RawMessage) (*T, error) {
	s.begin()
	clean, err := StripEmpty(body)
	if err != nil {
		return nil, s.fail(err)
	}
	rec, err := s.backend.Update(ctx, id, clean)
	if err != nil {
		return nil, s.fail(err)
	}
	s.replace(rec)
	s.notify(SuccessToast(s.name + " updated successfully"))
	return rec, nil
}

// Toggle flips isActive for id.
func (s *Slice[T]) Toggle(ctx context.Context, id string) (*T, error) {
	s.begin()
	rec, err := s.backend.Toggle(ctx, id)
	if err != nil {
		return nil, s.fail(err)
	}
	s.replace(rec)
	s.notify(SuccessToast(s.name + " status updated"))
	return rec, nil
}

// Delete removes id from storage and from Items.
func (s *Slice[T]) Delete(ctx context.Context, id string) error {
	s.begin()
	if err := s.backend.Delete(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	before := len(s.state.Items)
	s.state.Items = slices.DeleteFunc(s.state.Items, func(item T) bool { return s.id(&item) == id })
	if len(s.state.Items) < before && s.state.Pagination.Total > 0 {
		s.state.Pagination.Total--
		s.state.Pagination.TotalPages = models.TotalPages(s.state.Pagination.Total, s.state.Params.Limit)
	}
	if s.state.Current != nil && s.id(s.state.Current) == id {
		s.state.Current = nil
	}
	s.state.Loading = false
	s.mu.Unlock()

	s.notify(SuccessToast(s.name + " deleted successfully"))
	return nil
}

func (s *Slice[T]) replace(rec *T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id(rec)
	for i := range s.state.Items {
		if s.id(&s.state.Items[i]) == id {
			s.state.Items[i] = *rec
		}
	}
	s.state.Current = rec
	s.state.Loading = false
}
