package repository

import (
	"context"
	"sync"
)

// memoryRevocationRegistry keeps the denylist in process memory, for tests.
// Revocations do not survive a restart; the service always runs against the
// Redis registry.
type memoryRevocationRegistry struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

// NewMemoryRevocationRegistry returns an in-memory registry.
func NewMemoryRevocationRegistry() RevocationRegistry {
	return &memoryRevocationRegistry{revoked: make(map[string]struct{})}
}

func (r *memoryRevocationRegistry) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = struct{}{}
	return nil
}

func (r *memoryRevocationRegistry) Contains(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revoked[token]
	return ok, nil
}
