package activity_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/activity"
	"github.com/vinodtana/ai-tools-admin-web/internal/events"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func exerciseFeed(t *testing.T, feed activity.Feed) {
	t.Helper()
	ctx := context.Background()

	for i := range activity.MaxEntries + 5 {
		require.NoError(t, feed.Push(ctx, models.Activity{Action: "created", ID: fmt.Sprint(i), Timestamp: time.Now()}))
	}

	recent, err := feed.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, fmt.Sprint(activity.MaxEntries+4), recent[0].ID, "newest first")

	all, err := feed.Recent(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, all, activity.MaxEntries)

	none, err := feed.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryFeed(t *testing.T) {
	t.Parallel()
	exerciseFeed(t, activity.NewMemoryFeed())
}

func TestRedisFeed(t *testing.T) {
	t.Parallel()
	client, _ := newRedis(t)
	exerciseFeed(t, activity.NewRedisFeed(client, "admin:recent-activity"))
}

func TestRecorder_FeedAndStream(t *testing.T) {
	t.Parallel()

	client, mr := newRedis(t)
	pub := events.NewPublisher(client, "content-events", logger.NewNop())
	rec := activity.NewRecorder(activity.NewRedisFeed(client, "feed"), pub, logger.NewNop())

	rec.Record(context.Background(), events.Created, models.ResourceContents, "c-1", "Alpha", "ada@example.com", nil)

	recent, err := rec.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "created", recent[0].Action)
	assert.Equal(t, "Alpha", recent[0].Name)
	assert.Equal(t, "ada@example.com", recent[0].Actor)

	assert.Eventually(t, func() bool {
		entries, streamErr := mr.Stream("content-events")
		return streamErr == nil && len(entries) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNilRecorder(t *testing.T) {
	t.Parallel()

	var rec *activity.Recorder
	rec.Record(context.Background(), events.Deleted, models.ResourceUsers, "u-1", "", "", nil)
	recent, err := rec.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
