package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PageCache stores serialized list pages in Redis.
// Keys are built by the caller and embed the page's validation token.
type PageCache struct {
	client *redis.Client
}

// NewPageCache creates a PageCache wrapping the given Redis client.
func NewPageCache(client *redis.Client) *PageCache {
	return &PageCache{client: client}
}

// Get returns the cached page, or false when the key is absent or expired.
func (c *PageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("page cache get: %w", err)
	}
	return raw, true, nil
}

func (c *PageCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("page cache set: %w", err)
	}
	return nil
}

// Ping checks that Redis answers.
func (c *PageCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *PageCache) Close() error {
	return c.client.Close()
}
