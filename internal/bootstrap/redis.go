package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vinodtana/ai-tools-admin-web/internal/activity"
	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/events"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

const redisPingTimeout = 3 * time.Second

// SetupRedis returns nil when Redis is disabled or unreachable; events and
// caching are then turned off.
func SetupRedis(ctx context.Context, cfg config.RedisConfig, log logger.Logger) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis not available, events disabled",
			logger.String("redis_address", cfg.Address),
			logger.Error(err),
		)
		_ = client.Close()
		return nil
	}

	log.Info("Redis connected", logger.String("redis_address", cfg.Address))
	return client
}

// SetupActivity builds the recorder. Without Redis the feed lives in memory
// and nothing is published.
func SetupActivity(client *redis.Client, cfg config.RedisConfig, log logger.Logger) *activity.Recorder {
	if client == nil {
		return activity.NewRecorder(activity.NewMemoryFeed(), nil, log)
	}
	publisher := events.NewPublisher(client, cfg.EventStream, log)
	log.Info("Event publisher initialized", logger.String("stream", cfg.EventStream))
	return activity.NewRecorder(activity.NewRedisFeed(client, cfg.ActivityKey), publisher, log)
}
