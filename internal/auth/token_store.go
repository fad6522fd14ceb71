package auth

import (
	"context"
	"time"

	"countryhub/internal/cache"
)

const revokedKeyPrefix = "revoked_session:"

// TokenStore is the server-side revocation list for session tokens.
// Tokens are stateless, so logout cannot invalidate a bearer copy by
// itself; denylisting the JTI until natural expiry closes that gap.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisTokenStore keeps revoked token IDs in Redis. It inherits the
// fail-safe cache semantics: with Redis down, revocation degrades to the
// stateless contract (tokens live until expiry) instead of failing requests.
type RedisTokenStore struct {
	cache *cache.Client
}

var _ TokenStore = (*RedisTokenStore)(nil)

// NewTokenStore creates a Redis-backed revocation store.
func NewTokenStore(cache *cache.Client) *RedisTokenStore {
	return &RedisTokenStore{cache: cache}
}

// Revoke denylists a token ID for the remainder of its lifetime.
func (s *RedisTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether a token ID has been denylisted.
func (s *RedisTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, revokedKeyPrefix+tokenID)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
