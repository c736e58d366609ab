package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const inboxVersionKey = "support:inbox:version"

// InboxCache signals admin inbox staleness to external caching
// collaborators. It holds a monotonically increasing version counter
// only; neither plaintext bodies nor ciphertext ever enter Redis.
type InboxCache struct {
	client *redis.Client
}

// NewInboxCache wraps a Redis client.
func NewInboxCache(client *redis.Client) *InboxCache {
	return &InboxCache{client: client}
}

// Bump invalidates any cached admin listing by advancing the version.
func (c *InboxCache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, inboxVersionKey).Err()
}

// Version returns the current inbox version, zero when unset.
func (c *InboxCache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	version, err := c.client.Get(ctx, inboxVersionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return version, err
}
