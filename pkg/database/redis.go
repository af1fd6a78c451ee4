package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spacewise-io/occupancy-engine/pkg/config"
)

// NewRedisClient creates a new Redis client with the given configuration.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
