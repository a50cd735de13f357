package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simaogato/savings-backend/internal/domain"
)

const keyPrefix = "savings:"

// Cache stores projection results in Redis as JSON. It implements domain.ResultCache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects to Redis at addr and verifies the connection
func NewCache(ctx context.Context, addr string, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// Get retrieves a cached result; a missing key is not an error
func (c *Cache) Get(ctx context.Context, key string) (domain.ProjectionResult, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ProjectionResult{}, false, nil
		}
		return domain.ProjectionResult{}, false, fmt.Errorf("failed to read cached projection: %w", err)
	}

	var result domain.ProjectionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return domain.ProjectionResult{}, false, fmt.Errorf("failed to decode cached projection: %w", err)
	}
	return result, true, nil
}

// Set stores a result with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, result domain.ProjectionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode projection: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cached projection: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *Cache) Close() error {
	return c.client.Close()
}
