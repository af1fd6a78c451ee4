// Package cache provides a read-through, write-around cache for computed
// aggregates, backed by Redis. Cache errors propagate to the caller; the
// cache is never silently bypassed.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spacewise-io/occupancy-engine/pkg/metrics"
)

// Expiries for cached aggregates.
const (
	UtilizationTTL    = time.Hour
	RecommendationTTL = 4 * time.Hour
)

// scanBatchSize bounds the per-iteration cost of pattern sweeps.
const scanBatchSize = 100

// AggregateCache stores serialized aggregate results in Redis.
type AggregateCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewAggregateCache creates an AggregateCache on the given Redis client.
func NewAggregateCache(client *redis.Client, logger *zap.Logger) *AggregateCache {
	return &AggregateCache{client: client, logger: logger}
}

// Get loads the entry under key into dest. Returns false on a miss.
func (c *AggregateCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.RecordCacheResult("miss")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache entry %s is corrupt: %w", key, err)
	}

	metrics.RecordCacheResult("hit")
	c.logger.Debug("Cache hit", zap.String("key", key))
	return true, nil
}

// Set stores value under key with the given expiry.
func (c *AggregateCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// DeletePattern removes every key matching the glob pattern using an
// incremental SCAN, so sweeps do not block Redis the way KEYS would.
func (c *AggregateCache) DeletePattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %s: %w", pattern, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", pattern, err)
	}

	c.logger.Debug("Cache invalidated",
		zap.String("pattern", pattern),
		zap.Int("keys", len(keys)))
	return nil
}
