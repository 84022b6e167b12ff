package activity

import (
	"context"
	"strings"
	"time"

	"github.com/vinodtana/ai-tools-admin-web/internal/events"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// Recorder writes each mutation to the feed and the event stream.
// Failures are logged; they never fail the mutation itself.
type Recorder struct {
	feed      Feed
	publisher *events.Publisher
	log       logger.Logger
	now       func() time.Time
}

// NewRecorder accepts a nil publisher.
func NewRecorder(feed Feed, publisher *events.Publisher, log logger.Logger) *Recorder {
	if feed == nil {
		feed = NewMemoryFeed()
	}
	return &Recorder{feed: feed, publisher: publisher, log: log, now: time.Now}
}

// Record notes that actor performed eventType on the named resource item.
func (r *Recorder) Record(ctx context.Context, eventType events.EventType, resource, id, name, actor string, payload any) {
	if r == nil {
		return
	}

	now := r.now().UTC()
	act := models.Activity{
		Action:    strings.ToLower(string(eventType)),
		Resource:  resource,
		ID:        id,
		Name:      name,
		Actor:     actor,
		Timestamp: now,
	}
	if err := r.feed.Push(ctx, act); err != nil {
		logger.FromContext(ctx, r.log).Warn("Failed to record activity",
			logger.Resource(resource),
			logger.String("id", id),
			logger.Error(err),
		)
	}

	r.publisher.PublishAsync(events.Event{
		EventType:  eventType,
		Resource:   resource,
		ResourceID: id,
		Name:       name,
		Actor:      actor,
		Timestamp:  now,
		Payload:    payload,
	})
}

// Recent returns the newest n activities.
func (r *Recorder) Recent(ctx context.Context, n int) ([]models.Activity, error) {
	if r == nil {
		return []models.Activity{}, nil
	}
	return r.feed.Recent(ctx, n)
}
