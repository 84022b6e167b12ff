package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

const asyncPublishTimeout = 5 * time.Second

// Publisher writes events to a Redis stream. A nil *Publisher is a no-op.
type Publisher struct {
	client *redis.Client
	stream string
	log    logger.Logger
}

// NewPublisher returns nil when client is nil.
func NewPublisher(client *redis.Client, stream string, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	if stream == "" {
		stream = DefaultStream
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Publisher{client: client, stream: stream, log: log}
}

// Publish appends event to the stream, filling ID and timestamp when unset.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{"event": string(payload)},
	}).Result()
	if err != nil {
		return fmt.Errorf("publish to stream: %w", err)
	}

	p.log.Debug("Published event",
		logger.String("event_type", string(event.EventType)),
		logger.Resource(event.Resource),
		logger.String("resource_id", event.ResourceID),
		logger.String("stream_id", id),
	)
	return nil
}

// PublishAsync publishes in the background and logs failures.
func (p *Publisher) PublishAsync(event Event) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil {
			p.log.Error("Async publish failed",
				logger.String("event_type", string(event.EventType)),
				logger.String("resource_id", event.ResourceID),
				logger.Error(err),
			)
		}
	}()
}

// Recent reads the newest n events, newest first.
func (p *Publisher) Recent(ctx context.Context, n int64) ([]Event, error) {
	if p == nil {
		return nil, nil
	}

	msgs, err := p.client.XRevRangeN(ctx, p.stream, "+", "-", n).Result()
	if err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}

	out := make([]Event, 0, len(msgs))
	for _, msg := range msgs {
		raw, ok := msg.Values["event"].(string)
		if !ok {
			continue
		}
		var ev Event
		if err = json.Unmarshal([]byte(raw), &ev); err != nil {
			p.log.Warn("Skipping malformed stream entry", logger.String("stream_id", msg.ID), logger.Error(err))
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
