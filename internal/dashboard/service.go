// Package dashboard computes the stat cards and recent activity for the home screen.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
)

const (
	cacheKey       = "admin:dashboard"
	growthWindow   = 30 * 24 * time.Hour
	RecentActivity = 10
)

// ActivitySource supplies the recent-activity list.
type ActivitySource interface {
	Recent(ctx context.Context, n int) ([]models.Activity, error)
}

// Service builds dashboards, optionally caching the stat cards in Redis.
type Service struct {
	contents repository.ContentRepository
	users    repository.UserRepository
	activity ActivitySource
	cache    *redis.Client
	ttl      time.Duration
	log      logger.Logger
	now      func() time.Time
}

// NewService accepts a nil cache.
func NewService(
	contents repository.ContentRepository,
	users repository.UserRepository,
	activity ActivitySource,
	cache *redis.Client,
	ttl time.Duration,
	log logger.Logger,
) *Service {
	return &Service{
		contents: contents,
		users:    users,
		activity: activity,
		cache:    cache,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Get returns stat cards plus the last ten activities. Activity is never cached.
func (s *Service) Get(ctx context.Context) (*models.Dashboard, error) {
	stats, err := s.cachedStats(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.activity.Recent(ctx, RecentActivity)
	if err != nil {
		s.log.Warn("Failed to load recent activity", logger.Error(err))
		recent = []models.Activity{}
	}

	return &models.Dashboard{
		Stats:          stats,
		RecentActivity: recent,
		GeneratedAt:    s.now().UTC(),
	}, nil
}

// Invalidate drops cached stats after a mutation.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey).Err(); err != nil {
		s.log.Warn("Failed to invalidate dashboard cache", logger.Error(err))
	}
}

func (s *Service) cachedStats(ctx context.Context) ([]models.StatCard, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey).Bytes()
		switch {
		case err == nil:
			var stats []models.StatCard
			if json.Unmarshal(raw, &stats) == nil {
				return stats, nil
			}
		case !errors.Is(err, redis.Nil):
			s.log.Warn("Dashboard cache read failed", logger.Error(err))
		}
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		data, _ := json.Marshal(stats)
		if err = s.cache.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
			s.log.Warn("Dashboard cache write failed", logger.Error(err))
		}
	}
	return stats, nil
}

// Stats computes the stat cards from storage.
func (s *Service) Stats(ctx context.Context) ([]models.StatCard, error) {
	byType, err := s.contents.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count contents: %w", err)
	}

	users, err := s.users.Count(ctx, repository.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	now := s.now()
	current, err := s.contents.CountCreatedBetween(ctx, now.Add(-growthWindow), now)
	if err != nil {
		return nil, fmt.Errorf("count recent contents: %w", err)
	}
	previous, err := s.contents.CountCreatedBetween(ctx, now.Add(-2*growthWindow), now.Add(-growthWindow))
	if err != nil {
		return nil, fmt.Errorf("count previous contents: %w", err)
	}

	return []models.StatCard{
		{Key: "tools", Title: "Total AI Tools", Value: float64(byType[models.ContentTypeTools])},
		{Key: "prompts", Title: "Total Prompts", Value: float64(byType[models.ContentTypePrompts])},
		{Key: "users", Title: "Total Users", Value: float64(users)},
		{Key: "growth", Title: "Growth", Value: Growth(current, previous), Unit: "%"},
	}, nil
}

// Growth is the percent change from previous to current, rounded to one
// decimal. A zero baseline counts as 100% growth when anything was added.
func Growth(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	pct := float64(current-previous) / float64(previous) * 100
	return math.Round(pct*10) / 10
}
