package dashboard_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/activity"
	"github.com/vinodtana/ai-tools-admin-web/internal/dashboard"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository/local"
)

func TestGrowth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		current, previous int
		want              float64
	}{
		{0, 0, 0},
		{5, 0, 100},
		{10, 10, 0},
		{15, 10, 50},
		{5, 10, -50},
		{1, 3, 33.3},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, dashboard.Growth(tt.current, tt.previous), 0.001, "%d vs %d", tt.current, tt.previous)
	}
}

func seededSet(t *testing.T) repository.Set {
	t.Helper()

	blob, err := local.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	set := local.NewSet(blob)

	ctx := context.Background()
	for _, ct := range []models.ContentType{models.ContentTypeTools, models.ContentTypeTools, models.ContentTypePrompts} {
		require.NoError(t, set.Contents.Create(ctx, &models.Content{Type: ct, Name: string(ct)}))
	}
	require.NoError(t, set.Users.Create(ctx, &models.User{Email: "u@example.com"}))
	return set
}

func card(stats []models.StatCard, key string) models.StatCard {
	for _, s := range stats {
		if s.Key == key {
			return s
		}
	}
	return models.StatCard{}
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	set := seededSet(t)
	feed := activity.NewMemoryFeed()
	ctx := context.Background()
	for i := range 12 {
		require.NoError(t, feed.Push(ctx, models.Activity{Action: "created", ID: string(rune('a' + i))}))
	}

	svc := dashboard.NewService(set.Contents, set.Users, feed, nil, time.Minute, logger.NewNop())
	d, err := svc.Get(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 2, card(d.Stats, "tools").Value, 0)
	assert.InDelta(t, 1, card(d.Stats, "prompts").Value, 0)
	assert.InDelta(t, 1, card(d.Stats, "users").Value, 0)
	assert.InDelta(t, 100, card(d.Stats, "growth").Value, 0)
	assert.Equal(t, "%", card(d.Stats, "growth").Unit)
	assert.Len(t, d.RecentActivity, dashboard.RecentActivity)
}

func TestService_CachesStats(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	set := seededSet(t)
	ctx := context.Background()
	svc := dashboard.NewService(set.Contents, set.Users, activity.NewMemoryFeed(), client, time.Minute, logger.NewNop())

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists("admin:dashboard"))

	require.NoError(t, set.Contents.Create(ctx, &models.Content{Type: models.ContentTypeTools, Name: "new"}))

	cached, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, card(first.Stats, "tools"), card(cached.Stats, "tools"), "served from cache")

	svc.Invalidate(ctx)
	fresh, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 3, card(fresh.Stats, "tools").Value, 0)
}
