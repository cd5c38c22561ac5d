package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRoleCache implements RoleCache backed by Redis. Use it when running
// multiple instances so a role change invalidated on one node is seen by
// all of them.
type RedisRoleCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisRoleCache creates a role cache on top of an existing Redis client
func NewRedisRoleCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisRoleCache {
	if ttl == 0 {
		ttl = defaultRoleTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRoleCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: "role:user:",
		logger:    logger,
	}
}

func (c *RedisRoleCache) key(userID string) string {
	return c.keyPrefix + userID
}

// Get retrieves the cached role for a user
func (c *RedisRoleCache) Get(ctx context.Context, userID string) (string, bool, error) {
	role, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read role cache: %w", err)
	}
	return role, true, nil
}

// Set stores the role for a user with the cache TTL
func (c *RedisRoleCache) Set(ctx context.Context, userID, role string) error {
	if err := c.client.Set(ctx, c.key(userID), role, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write role cache: %w", err)
	}
	return nil
}

// Invalidate removes a single user's cached role
func (c *RedisRoleCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate role cache: %w", err)
	}
	return nil
}

// InvalidateAll removes every cached role
func (c *RedisRoleCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate role cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan role cache keys: %w", err)
	}
	c.logger.Info("Invalidated all cached roles in Redis")
	return nil
}

// Close is a no-op; the Redis client is owned by the caller
func (c *RedisRoleCache) Close() error {
	return nil
}

// Ensure RedisRoleCache implements RoleCache
var _ RoleCache = (*RedisRoleCache)(nil)
