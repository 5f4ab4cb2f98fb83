package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
)

// DefaultHealthTTL bounds staleness for dashboards reading the cache
// instead of recomputing.
const DefaultHealthTTL = 15 * time.Minute

// ErrHealthNotCached indicates no cached snapshot exists for the project.
var ErrHealthNotCached = errors.New("health snapshot not cached")

// cachedHealth is the wire form of a health snapshot in Redis.
type cachedHealth struct {
	Color      string    `json:"color"`
	Percentage int       `json:"percentage"`
	Reasoning  string    `json:"reasoning"`
	ComputedAt time.Time `json:"computed_at"`
}

// RedisHealthCache stores the latest computed health snapshot per project.
// Keys are namespaced: pulse:user:{user_id}:project:{project_id}:health
type RedisHealthCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisHealthCache creates a new RedisHealthCache. A non-positive ttl
// falls back to DefaultHealthTTL.
func NewRedisHealthCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisHealthCache {
	if ttl <= 0 {
		ttl = DefaultHealthTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisHealthCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func healthKey(userID, projectID uuid.UUID) string {
	return fmt.Sprintf("pulse:user:%s:project:%s:health", userID, projectID)
}

// Set stores a health snapshot for the project.
func (c *RedisHealthCache) Set(ctx context.Context, userID, projectID uuid.UUID, health domain.Health) error {
	payload, err := json.Marshal(cachedHealth{
		Color:      health.Color.String(),
		Percentage: health.Percentage,
		Reasoning:  health.Reasoning,
		ComputedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal health snapshot: %w", err)
	}

	key := healthKey(userID, projectID)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache health snapshot: %w", err)
	}

	c.logger.Debug("health snapshot cached",
		"project_id", projectID,
		"color", health.Color.String(),
	)
	return nil
}

// Get retrieves a cached health snapshot for the project.
func (c *RedisHealthCache) Get(ctx context.Context, userID, projectID uuid.UUID) (*domain.Health, error) {
	val, err := c.client.Get(ctx, healthKey(userID, projectID)).Bytes()
	if err == redis.Nil {
		return nil, ErrHealthNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached health: %w", err)
	}

	var cached cachedHealth
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached health: %w", err)
	}

	color, err := domain.ParseColor(cached.Color)
	if err != nil {
		return nil, err
	}

	return &domain.Health{
		Color:      color,
		Percentage: cached.Percentage,
		Reasoning:  cached.Reasoning,
	}, nil
}

// Invalidate removes the cached snapshot so the next read recomputes.
func (c *RedisHealthCache) Invalidate(ctx context.Context, userID, projectID uuid.UUID) error {
	return c.client.Del(ctx, healthKey(userID, projectID)).Err()
}
