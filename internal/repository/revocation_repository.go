package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// revocationSetKey holds the single global denylist. Raw token strings are
// stored, so one logout revokes exactly the presented token, not every
// session of its owner.
const revocationSetKey = "auth:revoked_tokens"

// RevocationRegistry is the persisted set of revoked tokens. A token present
// in the registry must be rejected regardless of signature validity or
// expiry. Entries are never pruned.
type RevocationRegistry interface {
	// Revoke marks a token unusable. Idempotent: revoking an
	// already-revoked token succeeds without changing the set.
	Revoke(ctx context.Context, token string) error
	// Contains reports membership.
	Contains(ctx context.Context, token string) (bool, error)
}

type redisRevocationRegistry struct {
	client *redis.Client
}

// NewRedisRevocationRegistry returns the Redis-backed registry. SADD gives
// the per-entry atomic add-to-set discipline; the write is acknowledged
// before the caller responds to the logout request.
func NewRedisRevocationRegistry(client *redis.Client) RevocationRegistry {
	return &redisRevocationRegistry{client: client}
}

func (r *redisRevocationRegistry) Revoke(ctx context.Context, token string) error {
	return r.client.SAdd(ctx, revocationSetKey, token).Err()
}

func (r *redisRevocationRegistry) Contains(ctx context.Context, token string) (bool, error) {
	return r.client.SIsMember(ctx, revocationSetKey, token).Result()
}
