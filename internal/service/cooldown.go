package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// cooldown throttles outgoing mail per recipient so a client cannot spam
// the dispatcher by re-requesting codes in a tight loop.
type cooldown struct {
	redis *redis.Client
	ttl   time.Duration
}

func newCooldown(client *redis.Client, ttl time.Duration) *cooldown {
	return &cooldown{redis: client, ttl: ttl}
}

// Allow reports whether a send is permitted for the key, and if so starts
// the cooldown window. A disabled (nil client or zero TTL) cooldown always
// permits.
func (c *cooldown) Allow(ctx context.Context, kind, email string) (bool, error) {
	if c.redis == nil || c.ttl <= 0 {
		return true, nil
	}
	ok, err := c.redis.SetNX(ctx, fmt.Sprintf("%s_cooldown:%s", kind, email), "1", c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check send cooldown: %w", err)
	}
	return ok, nil
}
