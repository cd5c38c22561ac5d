package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocations tracks tokens that must stop working before their
// natural expiry. Logout revokes a single token by its JTI; a password
// change revokes every token the user holds by recording a cutoff
// instant that issued-at claims are compared against.
type TokenRevocations interface {
	// Revoke marks one token as dead for the rest of its lifetime.
	// ttl is the remaining time until the token would expire anyway.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether the token was revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUser invalidates every token issued to the user up to now.
	// ttl should cover the longest-lived token still in circulation.
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserRevoked reports whether a token issued at issuedAt falls
	// under the user's revocation cutoff.
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

const (
	revokedTokenKeyPrefix = "revoked:token:"
	revokedUserKeyPrefix  = "revoked:user:"
)

// RedisTokenRevocations stores revocations in Redis so they are visible
// to every server instance. Entries carry a TTL and disappear once the
// tokens they cover have expired on their own.
type RedisTokenRevocations struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisTokenRevocations wraps an existing Redis client. The caller
// owns the client's lifecycle.
func NewRedisTokenRevocations(client *redis.Client) *RedisTokenRevocations {
	return &RedisTokenRevocations{
		client: client,
		now:    time.Now,
	}
}

func (r *RedisTokenRevocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := r.client.Set(ctx, revokedTokenKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *RedisTokenRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedTokenKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}

func (r *RedisTokenRevocations) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	cutoff := strconv.FormatInt(r.now().UnixNano(), 10)
	if err := r.client.Set(ctx, revokedUserKeyPrefix+userID, cutoff, ttl).Err(); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

func (r *RedisTokenRevocations) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	raw, err := r.client.Get(ctx, revokedUserKeyPrefix+userID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user revocation: %w", err)
	}

	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("parse revocation cutoff: %w", err)
	}
	return issuedAt.UnixNano() <= cutoff, nil
}

var _ TokenRevocations = (*RedisTokenRevocations)(nil)

// InMemoryTokenRevocations keeps revocations in process memory. Suitable
// for a single instance and for tests; entries from other instances are
// never seen.
type InMemoryTokenRevocations struct {
	mu          sync.Mutex
	tokens      map[string]time.Time // jti -> instant the entry can be dropped
	userCutoffs map[string]time.Time // userID -> revocation cutoff
	now         func() time.Time
}

// NewInMemoryTokenRevocations creates an empty in-memory store.
func NewInMemoryTokenRevocations() *InMemoryTokenRevocations {
	return &InMemoryTokenRevocations{
		tokens:      make(map[string]time.Time),
		userCutoffs: make(map[string]time.Time),
		now:         time.Now,
	}
}

func (m *InMemoryTokenRevocations) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[jti] = m.now().Add(ttl)
	return nil
}

func (m *InMemoryTokenRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.tokens[jti]
	if !ok {
		return false, nil
	}
	// The token itself has expired by now, the entry is just garbage.
	if m.now().After(expiry) {
		delete(m.tokens, jti)
		return false, nil
	}
	return true, nil
}

func (m *InMemoryTokenRevocations) RevokeUser(_ context.Context, userID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userCutoffs[userID] = m.now()
	return nil
}

func (m *InMemoryTokenRevocations) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff, ok := m.userCutoffs[userID]
	if !ok {
		return false, nil
	}
	return !issuedAt.After(cutoff), nil
}

var _ TokenRevocations = (*InMemoryTokenRevocations)(nil)
