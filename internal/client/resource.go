package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// Resource is the REST side of one CRUD collection, e.g. "/contents".
type Resource[T any] struct {
	c    *Client
	path string
}

func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

// ListQuery renders params and extra filters as a query string.
func ListQuery(params models.ListParams, filters map[string]string) url.Values {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.SortBy != "" {
		q.Set("sortBy", params.SortBy)
	}
	if params.SortOrder != "" {
		q.Set("sortOrder", params.SortOrder)
	}
	for k, v := range filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

func (r *Resource[T]) List(ctx context.Context, params models.ListParams, filters map[string]string) (*models.ListResponse[T], error) {
	var out models.ListResponse[T]
	if err := r.c.do(ctx, http.MethodGet, r.path, ListQuery(params, filters), nil, &out); err != nil {
		return nil, unwrapRetry(err)
	}
	return &out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	return r.one(ctx, http.MethodGet, "/"+url.PathEscape(id), nil)
}

func (r *Resource[T]) Create(ctx context.Context, body json.RawMessage) (*T, error) {
	return r.one(ctx, http.MethodPost, "", body)
}

func (r *Resource[T]) Update(ctx context.Context, id string, body json.RawMessage) (*T, error) {
	return r.one(ctx, http.MethodPut, "/"+url.PathEscape(id), body)
}

func (r *Resource[T]) Toggle(ctx context.Context, id string) (*T, error) {
	return r.one(ctx, http.MethodPatch, "/"+url.PathEscape(id)+"/toggle-status", nil)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return unwrapRetry(r.c.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil, nil))
}

func (r *Resource[T]) one(ctx context.Context, method, suffix string, body json.RawMessage) (*T, error) {
	var out struct {
		Data T `json:"data"`
	}
	var payload any
	if body != nil {
		payload = body
	}
	if err := r.c.do(ctx, method, r.path+suffix, nil, payload, &out); err != nil {
		return nil, unwrapRetry(err)
	}
	return &out.Data, nil
}
