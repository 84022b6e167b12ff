package search_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository/local"
	"github.com/vinodtana/ai-tools-admin-web/internal/search"
)

// fakeES answers the handful of endpoints the index uses.
type fakeES struct {
	mu       sync.Mutex
	exists   bool
	docs     map[string]search.Document
	hits     []string
	failNext bool
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case r.Method == http.MethodHead && len(parts) == 1 && parts[0] == "":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodHead:
		if f.exists {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && len(parts) == 1:
		f.exists = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	case r.Method == http.MethodPut && len(parts) == 3 && parts[1] == "_doc":
		var doc search.Document
		_ = json.NewDecoder(r.Body).Decode(&doc)
		f.docs[parts[2]] = doc
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case r.Method == http.MethodDelete && len(parts) == 3:
		if _, ok := f.docs[parts[2]]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		delete(f.docs, parts[2])
		_, _ = io.WriteString(w, `{"result":"deleted"}`)
	case len(parts) == 2 && parts[1] == "_search":
		if f.failNext {
			f.failNext = false
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":"boom"}`)
			return
		}
		hits := make([]map[string]string, 0, len(f.hits))
		for _, id := range f.hits {
			hits = append(hits, map[string]string{"_id": id})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"hits": map[string]any{"total": map[string]int{"value": len(f.hits)}, "hits": hits},
		})
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func setup(t *testing.T) (*fakeES, *search.Index, repository.ContentRepository) {
	t.Helper()

	fake := &fakeES{docs: map[string]search.Document{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := es.NewClient(es.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	blob, err := local.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	index := search.NewIndex(client, "contents", logger.NewNop())
	return fake, index, local.NewContentRepository(blob)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	active := true
	q := search.Query(repository.ListFilter{Search: "chat", Type: models.ContentTypeTools, IsActive: &active, Limit: 10, Offset: 20})

	raw, err := json.Marshal(q)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `{"wildcard":{"name.keyword":{"case_insensitive":true,"value":"*chat*"}}}`)
	assert.Contains(t, body, `{"wildcard":{"tagline.keyword":{"case_insensitive":true,"value":"*chat*"}}}`)
	assert.NotContains(t, body, "overview")
	assert.NotContains(t, body, "categories")
	assert.NotContains(t, body, "fuzziness")
	assert.Contains(t, body, `{"term":{"type":"tools"}}`)
	assert.Contains(t, body, `{"term":{"isActive":true}}`)
	assert.Contains(t, body, `"sort":[{"createdAt":{"order":"desc"}}]`)
	assert.Contains(t, body, `"from":20`)
	assert.Contains(t, body, `"size":10`)
	assert.NotContains(t, body, `"status"`)
}

func TestQuery_Sort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"name ascending", "name", "asc", `[{"name.keyword":{"order":"asc"}}]`},
		{"rating upper-case order", "rating", "DESC", `[{"rating":{"order":"desc"}}]`},
		{"views default order", "viewsCount", "", `[{"viewsCount":{"order":"desc"}}]`},
		{"unknown key", "password", "asc", `[{"createdAt":{"order":"asc"}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw, err := json.Marshal(search.Query(repository.ListFilter{Search: "x", SortBy: tt.sortBy, SortOrder: tt.sortOrder})["sort"])
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestQuery_EscapesWildcards(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(search.Query(repository.ListFilter{Search: " GPT-4* ? "}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"value":"*GPT-4\\* \\?*"`)
}

func TestIndex_EnsureAndPut(t *testing.T) {
	t.Parallel()

	fake, index, _ := setup(t)
	ctx := context.Background()

	created, err := index.Ensure(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = index.Ensure(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, index.Put(ctx, &models.Content{
		ID: "c-1", Type: models.ContentTypeTools, Name: "Writer", Overview: "<p>Writes <b>posts</b></p>",
	}))
	fake.mu.Lock()
	doc := fake.docs["c-1"]
	fake.mu.Unlock()
	assert.Equal(t, "Writer", doc.Name)
	assert.Equal(t, "Writes posts", doc.Overview)

	require.NoError(t, index.Remove(ctx, "c-1"))
	require.NoError(t, index.Remove(ctx, "c-1"), "missing document is fine")
}

func TestRepository_SyncsAndSearches(t *testing.T) {
	t.Parallel()

	fake, index, base := setup(t)
	repo := search.Wrap(base, index, logger.NewNop())
	ctx := context.Background()

	a := &models.Content{Type: models.ContentTypeTools, Name: "Alpha", Tagline: "chat bot"}
	b := &models.Content{Type: models.ContentTypeTools, Name: "Beta", Tagline: "image maker"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	fake.mu.Lock()
	assert.Len(t, fake.docs, 2)
	fake.hits = []string{b.ID, "stale-id", a.ID}
	fake.mu.Unlock()

	items, err := repo.List(ctx, repository.ListFilter{Search: "anything", Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Beta", items[0].Name, "index order wins")

	total, err := repo.Count(ctx, repository.ListFilter{Search: "anything"})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	toggled, err := repo.ToggleStatus(ctx, a.ID)
	require.NoError(t, err)
	fake.mu.Lock()
	assert.Equal(t, toggled.IsActive, fake.docs[a.ID].IsActive)
	fake.mu.Unlock()

	require.NoError(t, repo.Delete(ctx, b.ID))
	fake.mu.Lock()
	assert.NotContains(t, fake.docs, b.ID)
	fake.mu.Unlock()
}

func TestRepository_FallsBackWhenIndexFails(t *testing.T) {
	t.Parallel()

	fake, index, base := setup(t)
	repo := search.Wrap(base, index, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Content{Type: models.ContentTypeTools, Name: "Chat Writer"}))
	require.NoError(t, repo.Create(ctx, &models.Content{Type: models.ContentTypeTools, Name: "Painter"}))

	fake.mu.Lock()
	fake.failNext = true
	fake.mu.Unlock()

	items, err := repo.List(ctx, repository.ListFilter{Search: "chat"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Chat Writer", items[0].Name)
}

func TestWrap_NilIndex(t *testing.T) {
	t.Parallel()

	_, _, base := setup(t)
	assert.Same(t, base, search.Wrap(base, nil, logger.NewNop()))
}
