package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/memorias-app/memorias/common/logger"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache on top of a shared Redis client
type RedisCache struct {
	redis *redis.Client
	log   *logger.Logger
}

// NewRedisCache creates a Redis-backed cache. The client is shared with the
// rate limiter; Close is a no-op here and the owner closes the client.
func NewRedisCache(client *redis.Client, log *logger.Logger) *RedisCache {
	return &RedisCache{
		redis: client,
		log:   log,
	}
}

// Get retrieves a value by key
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		c.log.Warn("redis GET failed", "key", key, "error", err)
		return nil, false, fmt.Errorf("get key %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores a value with TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn("redis SET failed", "key", key, "error", err)
		return fmt.Errorf("set key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; the underlying client is owned by the bootstrap layer
func (c *RedisCache) Close() error {
	return nil
}
