package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/client"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/retry"
)

func fastRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	return cfg
}

func newClient(t *testing.T, h http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/api/v1", srv.Client(), logger.NewNop()).WithRetry(fastRetry())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSigninStoresToken(t *testing.T) {
	t.Parallel()

	var gotAuth atomic.Value
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/signin":
			writeJSON(w, http.StatusOK, map[string]any{"data": models.SigninResponse{
				User:  models.SessionUser{ID: "1", Role: models.RoleAdmin},
				Token: "tok",
			}})
		case "/api/v1/auth/me":
			gotAuth.Store(r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{"data": models.SessionUser{ID: "1"}})
		}
	})

	resp, err := c.Signin(context.Background(), models.SigninRequest{Email: "a@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "tok", c.Token())

	_, err = c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth.Load())
}

func TestGetRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "busy"})
			return
		}
		writeJSON(w, http.StatusOK, models.ListResponse[models.Category]{
			Data:       []models.Category{{ID: "c1", Name: "Writing"}},
			Pagination: models.NewPagination(1, 10, 1),
		})
	})

	res, err := client.NewResource[models.Category](c, "/categories").List(context.Background(), models.ListParams{Page: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Writing", res.Data[0].Name)
}

func TestWritesAreNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create Category"})
	})

	_, err := client.NewResource[models.Category](c, "/categories").Create(context.Background(), json.RawMessage(`{"name":"x"}`))
	require.Error(t, err)
	assert.Equal(t, "Failed to create Category", err.Error())
	assert.Equal(t, int32(1), calls.Load())
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Content not found"})
		case http.MethodPost:
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "Validation failed",
				"details": models.ValidationErrors{{Field: "name", Message: "is required"}},
			})
		case http.MethodDelete:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		}
	})
	contents := client.NewResource[models.Content](c, "/contents")

	_, err := contents.Get(context.Background(), "x")
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "Content not found", err.Error())

	_, err = contents.Create(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Equal(t, "Validation failed: name is required", err.Error())

	err = contents.Delete(context.Background(), "x")
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestListQuery(t *testing.T) {
	t.Parallel()

	q := client.ListQuery(models.ListParams{Page: 2, Limit: 5, Search: "chat"}, map[string]string{"type": "tools", "status": ""})
	assert.Equal(t, "limit=5&page=2&search=chat&type=tools", q.Encode())
}

func TestSessionFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dir", "session.json")
	_, err := client.LoadSession(path)
	require.ErrorIs(t, err, client.ErrNoSession)

	require.NoError(t, client.SaveSession(path, client.Session{Token: "t", User: models.SessionUser{Name: "Ada"}}))
	s, err := client.LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada", s.User.Name)

	require.NoError(t, client.ClearSession(path))
	require.NoError(t, client.ClearSession(path))
	_, err = client.LoadSession(path)
	require.ErrorIs(t, err, client.ErrNoSession)
}
