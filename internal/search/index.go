package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
	"github.com/vinodtana/ai-tools-admin-web/internal/richtext"
)

const maxSearchWindow = 1000

var indexMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"type":       map[string]any{"type": "keyword"},
			"status":     map[string]any{"type": "keyword"},
			"isActive":   map[string]any{"type": "boolean"},
			"name":       map[string]any{"type": "text", "fields": map[string]any{"keyword": map[string]any{"type": "keyword"}}},
			"tagline":    map[string]any{"type": "text", "fields": map[string]any{"keyword": map[string]any{"type": "keyword"}}},
			"overview":   map[string]any{"type": "text"},
			"categories": map[string]any{"type": "keyword"},
			"rating":     map[string]any{"type": "float"},
			"usersCount": map[string]any{"type": "integer"},
			"viewsCount": map[string]any{"type": "integer"},
			"createdAt":  map[string]any{"type": "date"},
			"updatedAt":  map[string]any{"type": "date"},
		},
	},
}

// sortFields maps API sort keys to indexed fields, matching the SQL store.
var sortFields = map[string]string{
	"name": "name.keyword", "rating": "rating", "usersCount": "usersCount",
	"viewsCount": "viewsCount", "status": "status", "createdAt": "createdAt",
	"updatedAt": "updatedAt",
}

// Document is the indexed projection of a content record.
type Document struct {
	Type       models.ContentType `json:"type"`
	Status     models.Status      `json:"status"`
	IsActive   bool               `json:"isActive"`
	Name       string             `json:"name"`
	Tagline    string             `json:"tagline"`
	Overview   string             `json:"overview"`
	Categories []string           `json:"categories"`
	Rating     float64            `json:"rating"`
	UsersCount int                `json:"usersCount"`
	ViewsCount int                `json:"viewsCount"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// NewDocument flattens rich text so it is matched as words, not markup.
func NewDocument(c *models.Content) Document {
	return Document{
		Type:       c.Type,
		Status:     c.Status,
		IsActive:   c.IsActive,
		Name:       c.Name,
		Tagline:    c.Tagline,
		Overview:   richtext.PlainText(c.Overview),
		Categories: c.Categories,
		Rating:     c.Rating,
		UsersCount: c.UsersCount,
		ViewsCount: c.ViewsCount,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// Index reads and writes one Elasticsearch index.
type Index struct {
	client *es.Client
	name   string
	log    logger.Logger
}

func NewIndex(client *es.Client, name string, log logger.Logger) *Index {
	return &Index{client: client, name: name, log: log}
}

// Ensure creates the index when missing and reports whether it did.
func (x *Index) Ensure(ctx context.Context) (bool, error) {
	res, err := x.client.Indices.Exists([]string{x.name}, x.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return false, nil
	}

	body, _ := json.Marshal(indexMapping)
	res, err = x.client.Indices.Create(x.name,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return false, fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return false, responseError("create index", res.Status(), res.Body)
	}

	x.log.Info("Created search index", logger.String("index", x.name))
	return true, nil
}

// Put indexes c under its ID.
func (x *Index) Put(ctx context.Context, c *models.Content) error {
	body, err := json.Marshal(NewDocument(c))
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	res, err := x.client.Index(x.name, bytes.NewReader(body),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(c.ID),
		x.client.Index.WithRefresh("wait_for"),
	)
	if err != nil {
		return fmt.Errorf("index document: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index document", res.Status(), res.Body)
	}
	return nil
}

// Remove deletes the document; a missing document is not an error.
func (x *Index) Remove(ctx context.Context, id string) error {
	res, err := x.client.Delete(x.name, id,
		x.client.Delete.WithContext(ctx),
		x.client.Delete.WithRefresh("wait_for"),
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete document", res.Status(), res.Body)
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// Query builds the search body for filter. The term is a case-insensitive
// substring of name or tagline, the same rows an ILIKE search returns.
func Query(filter repository.ListFilter) map[string]any {
	pattern := "*" + wildcardEscaper.Replace(strings.TrimSpace(filter.Search)) + "*"
	should := make([]any, 0, 2)
	for _, field := range []string{"name.keyword", "tagline.keyword"} {
		should = append(should, map[string]any{
			"wildcard": map[string]any{
				field: map[string]any{"value": pattern, "case_insensitive": true},
			},
		})
	}
	must := []any{map[string]any{"bool": map[string]any{"should": should, "minimum_should_match": 1}}}

	var terms []any
	if filter.Type != "" {
		terms = append(terms, map[string]any{"term": map[string]any{"type": filter.Type}})
	}
	if filter.Status != "" {
		terms = append(terms, map[string]any{"term": map[string]any{"status": filter.Status}})
	}
	if filter.IsActive != nil {
		terms = append(terms, map[string]any{"term": map[string]any{"isActive": *filter.IsActive}})
	}

	size := filter.Limit
	if size <= 0 || size > maxSearchWindow {
		size = maxSearchWindow
	}

	return map[string]any{
		"query":   map[string]any{"bool": map[string]any{"must": must, "filter": terms}},
		"sort":    querySort(filter),
		"from":    filter.Offset,
		"size":    size,
		"_source": false,
	}
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`)

// querySort defaults to newest first, like the storage listing.
func querySort(filter repository.ListFilter) []any {
	field, ok := sortFields[filter.SortBy]
	if !ok {
		field = "createdAt"
	}
	order := strings.ToLower(filter.SortOrder)
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	return []any{map[string]any{field: map[string]any{"order": order}}}
}

// Search returns the matching IDs for the page and the total hit count.
func (x *Index) Search(ctx context.Context, filter repository.ListFilter) ([]string, int, error) {
	body, err := json.Marshal(Query(filter))
	if err != nil {
		return nil, 0, fmt.Errorf("marshal query: %w", err)
	}

	res, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.name),
		x.client.Search.WithBody(bytes.NewReader(body)),
		x.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, responseError("search", res.Status(), res.Body)
	}

	var decoded searchResponse
	if err = json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]string, 0, len(decoded.Hits.Hits))
	for _, h := range decoded.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, decoded.Hits.Total.Value, nil
}

// Reindex copies every stored content record into the index.
func (x *Index) Reindex(ctx context.Context, repo repository.ContentRepository) (int, error) {
	items, err := repo.List(ctx, repository.ListFilter{})
	if err != nil {
		return 0, fmt.Errorf("list contents: %w", err)
	}
	for i := range items {
		if err = x.Put(ctx, &items[i]); err != nil {
			return i, err
		}
	}
	x.log.Info("Reindexed contents", logger.Int("count", len(items)))
	return len(items), nil
}

func responseError(op, status string, body io.Reader) error {
	msg, _ := io.ReadAll(io.LimitReader(body, 4096))
	return fmt.Errorf("%s returned error [%s]: %s", op, status, msg)
}
