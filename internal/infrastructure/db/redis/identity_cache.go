package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

const defaultIdentityTTL = 5 * time.Minute

// IdentityCache caches resolved accounts keyed by email so bearer-token
// resolution skips the database on repeat requests.
// Key format: identity:<email>
type IdentityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdentityCache wraps the given Redis client. A non-positive ttl falls
// back to defaultIdentityTTL.
func NewIdentityCache(client *redis.Client, ttl time.Duration) *IdentityCache {
	if ttl <= 0 {
		ttl = defaultIdentityTTL
	}
	return &IdentityCache{client: client, ttl: ttl}
}

// Get returns the cached account for email, or (nil, nil) on a miss.
func (c *IdentityCache) Get(ctx context.Context, email string) (*domain.User, error) {
	payload, err := c.client.Get(ctx, c.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("identity cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("identity cache decode: %w", err)
	}
	return &user, nil
}

// Set stores the account under its email (expires after the configured TTL).
func (c *IdentityCache) Set(ctx context.Context, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("identity cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.Email), payload, c.ttl).Err()
}

// Invalidate drops the cached entry for email.
func (c *IdentityCache) Invalidate(ctx context.Context, email string) error {
	return c.client.Del(ctx, c.key(email)).Err()
}

func (c *IdentityCache) key(email string) string {
	return fmt.Sprintf("identity:%s", email)
}
