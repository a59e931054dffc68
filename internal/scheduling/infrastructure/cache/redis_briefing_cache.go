package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

// DefaultBriefingTTL keeps briefings fresh enough for a chat session
// without re-reading the schedule on every message.
const DefaultBriefingTTL = 5 * time.Minute

// RedisBriefingCache stores rendered briefings in Redis. All operations
// are best-effort: a cache failure is logged and the briefing is rebuilt.
type RedisBriefingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisBriefingCache creates a cache with the given TTL; zero means
// DefaultBriefingTTL.
func NewRedisBriefingCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisBriefingCache {
	if ttl <= 0 {
		ttl = DefaultBriefingTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisBriefingCache{client: client, ttl: ttl, logger: logger}
}

func briefingKey(userID string, period domain.BriefingPeriod) string {
	return fmt.Sprintf("briefing:%s:%s", userID, period)
}

// Get returns a cached briefing, or false on miss or any cache error.
func (c *RedisBriefingCache) Get(ctx context.Context, userID string, period domain.BriefingPeriod) (*domain.ScheduleBriefing, bool) {
	payload, err := c.client.Get(ctx, briefingKey(userID, period)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("briefing cache read failed", "error", err)
		}
		return nil, false
	}

	var briefing domain.ScheduleBriefing
	if err := json.Unmarshal(payload, &briefing); err != nil {
		c.logger.Warn("briefing cache entry corrupt, ignoring", "error", err)
		return nil, false
	}
	return &briefing, true
}

// Set stores a briefing. Failures are logged and swallowed.
func (c *RedisBriefingCache) Set(ctx context.Context, userID string, briefing *domain.ScheduleBriefing) {
	payload, err := json.Marshal(briefing)
	if err != nil {
		c.logger.Warn("failed to marshal briefing for cache", "error", err)
		return
	}
	if err := c.client.Set(ctx, briefingKey(userID, briefing.Period), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("briefing cache write failed", "error", err)
	}
}
