// Package cache implements ports.Cache on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/quoting-service/internal/domain"
)

const keyNamespace = "quoting"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisCache namespaces every key under "quoting:".
type RedisCache struct {
	store cmdable
	raw   *redis.Client
}

// NewRedis parses url, connects and verifies the connection.
func NewRedis(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisCache{store: raw, raw: raw}, nil
}

// Get implements ports.Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.store.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	return value, nil
}

// Set implements ports.Cache.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.store.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Delete implements ports.Cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.store.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (c *RedisCache) Name() string {
	return "cache"
}

// Check implements ports.HealthChecker.
func (c *RedisCache) Check(ctx context.Context) error {
	return c.store.Ping(ctx).Err()
}

// Close shuts down the connection pool.
func (c *RedisCache) Close() error {
	if c.raw == nil {
		return nil
	}

	return c.raw.Close()
}

func (c *RedisCache) key(key string) string {
	return keyNamespace + ":" + strings.TrimSpace(key)
}
