// Package activity keeps the bounded recent-activity list shown on the
// dashboard and fans each mutation out to the event stream.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// MaxEntries bounds every feed.
const MaxEntries = 100

// Feed stores activities newest first.
type Feed interface {
	Push(ctx context.Context, a models.Activity) error
	Recent(ctx context.Context, n int) ([]models.Activity, error)
}

// RedisFeed keeps the list under one key with LPUSH and LTRIM.
type RedisFeed struct {
	client *redis.Client
	key    string
}

func NewRedisFeed(client *redis.Client, key string) *RedisFeed {
	return &RedisFeed{client: client, key: key}
}

func (f *RedisFeed) Push(ctx context.Context, a models.Activity) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}

	pipe := f.client.TxPipeline()
	pipe.LPush(ctx, f.key, data)
	pipe.LTrim(ctx, f.key, 0, MaxEntries-1)
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push activity: %w", err)
	}
	return nil
}

func (f *RedisFeed) Recent(ctx context.Context, n int) ([]models.Activity, error) {
	if n <= 0 {
		return []models.Activity{}, nil
	}

	raw, err := f.client.LRange(ctx, f.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}

	out := make([]models.Activity, 0, len(raw))
	for _, item := range raw {
		var a models.Activity
		if json.Unmarshal([]byte(item), &a) == nil {
			out = append(out, a)
		}
	}
	return out, nil
}

// MemoryFeed is used when Redis is disabled.
type MemoryFeed struct {
	mu    sync.Mutex
	items []models.Activity
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{}
}

func (f *MemoryFeed) Push(_ context.Context, a models.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append([]models.Activity{a}, f.items...)
	if len(f.items) > MaxEntries {
		f.items = f.items[:MaxEntries]
	}
	return nil
}

func (f *MemoryFeed) Recent(_ context.Context, n int) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n = max(0, min(n, len(f.items)))
	out := make([]models.Activity, n)
	copy(out, f.items[:n])
	return out, nil
}
