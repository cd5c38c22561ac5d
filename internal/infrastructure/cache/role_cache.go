package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Constants for in-memory cache configuration
const (
	defaultRoleTTL         = 5 * time.Minute
	defaultCleanupInterval = 30 * time.Second
)

// RoleCache caches the resolved role of a user between permission checks.
// A stale read only delays a role change by at most the TTL window, which
// is acceptable since role changes are rare.
type RoleCache interface {
	// Get returns the cached role for the user, and whether it was found
	Get(ctx context.Context, userID string) (string, bool, error)
	// Set stores the role for the user with the cache's TTL
	Set(ctx context.Context, userID, role string) error
	// Invalidate removes a single user's cached role
	Invalidate(ctx context.Context, userID string) error
	// InvalidateAll removes every cached role
	InvalidateAll(ctx context.Context) error
	// Close releases any resources held by the cache
	Close() error
}

// InMemoryRoleCache implements RoleCache using in-process storage
type InMemoryRoleCache struct {
	roles   sync.Map // map[string]*roleEntry
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// roleEntry wraps a cached role with its expiration time
type roleEntry struct {
	role      string
	expiresAt time.Time
}

// InMemoryRoleCacheOption is a functional option for configuring the cache
type InMemoryRoleCacheOption func(*InMemoryRoleCache)

// WithTTL sets the role entry lifetime
func WithTTL(ttl time.Duration) InMemoryRoleCacheOption {
	return func(c *InMemoryRoleCache) {
		c.ttl = ttl
	}
}

// WithClock sets the time source. Tests inject a fake clock here.
func WithClock(now func() time.Time) InMemoryRoleCacheOption {
	return func(c *InMemoryRoleCache) {
		c.now = now
	}
}

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) InMemoryRoleCacheOption {
	return func(c *InMemoryRoleCache) {
		c.logger = logger
	}
}

// NewInMemoryRoleCache creates a new in-memory role cache
func NewInMemoryRoleCache(opts ...InMemoryRoleCacheOption) *InMemoryRoleCache {
	cache := &InMemoryRoleCache{
		ttl:    defaultRoleTTL,
		now:    time.Now,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

func (c *InMemoryRoleCache) isExpired(entry *roleEntry) bool {
	return c.now().After(entry.expiresAt)
}

// Get retrieves the cached role for a user
func (c *InMemoryRoleCache) Get(ctx context.Context, userID string) (string, bool, error) {
	if value, ok := c.roles.Load(userID); ok {
		entry := value.(*roleEntry)
		if !c.isExpired(entry) {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("Role cache hit", zap.String("user_id", userID))
			return entry.role, true, nil
		}
		// Expired, remove from cache
		c.roles.Delete(userID)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("Role cache miss", zap.String("user_id", userID))
	return "", false, nil
}

// Set stores the role for a user
func (c *InMemoryRoleCache) Set(ctx context.Context, userID, role string) error {
	entry := &roleEntry{
		role:      role,
		expiresAt: c.now().Add(c.ttl),
	}
	c.roles.Store(userID, entry)
	c.logger.Debug("Cached role",
		zap.String("user_id", userID),
		zap.String("role", role),
		zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate removes a single user's cached role
func (c *InMemoryRoleCache) Invalidate(ctx context.Context, userID string) error {
	c.roles.Delete(userID)
	c.logger.Debug("Invalidated cached role", zap.String("user_id", userID))
	return nil
}

// InvalidateAll removes every cached role
func (c *InMemoryRoleCache) InvalidateAll(ctx context.Context) error {
	c.roles.Range(func(key, _ any) bool {
		c.roles.Delete(key)
		return true
	})
	c.logger.Info("Invalidated all cached roles")
	return nil
}

// Close stops the background cleanup goroutine
func (c *InMemoryRoleCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryRoleCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of entries in the cache
func (c *InMemoryRoleCache) Count() int {
	count := 0
	c.roles.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemoryRoleCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

// doCleanup removes expired entries
func (c *InMemoryRoleCache) doCleanup() {
	var removed int
	c.roles.Range(func(key, value any) bool {
		entry := value.(*roleEntry)
		if c.isExpired(entry) {
			c.roles.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		c.logger.Debug("Cleaned up expired role cache entries", zap.Int("removed", removed))
	}
}

// Ensure InMemoryRoleCache implements RoleCache
var _ RoleCache = (*InMemoryRoleCache)(nil)
