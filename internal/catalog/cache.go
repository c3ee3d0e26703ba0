package catalog

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the injected lookup cache for catalog results. Implementations
// own expiry; a miss and an expired entry look the same to callers.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// RedisCache backs the catalog cache with redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing client; the caller owns its lifecycle.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	// Cache writes are best effort; a failed set only costs a re-fetch.
	_ = c.client.Set(ctx, key, value, ttl).Err()
}

// NopCache never hits and never stores. Useful in tests and when no redis
// is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (string, bool)         { return "", false }
func (NopCache) Set(context.Context, string, string, time.Duration) {}
