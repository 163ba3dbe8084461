package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryRegistry_RevokeAndContains(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry := NewMemoryRevocationRegistry()

	revoked, err := registry.Contains(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if revoked {
		t.Fatalf("fresh registry must not contain tok-1")
	}

	if err := registry.Revoke(ctx, "tok-1"); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}

	revoked, err = registry.Contains(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if !revoked {
		t.Fatalf("tok-1 must be revoked")
	}
}

func TestMemoryRegistry_RevokeIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry := NewMemoryRevocationRegistry()

	if err := registry.Revoke(ctx, "tok-1"); err != nil {
		t.Fatalf("first Revoke error: %v", err)
	}
	if err := registry.Revoke(ctx, "tok-1"); err != nil {
		t.Fatalf("second Revoke must be a no-op success, got %v", err)
	}

	revoked, err := registry.Contains(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if !revoked {
		t.Fatalf("tok-1 must stay revoked")
	}
}

func TestMemoryRegistry_ConcurrentRevokes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry := NewMemoryRevocationRegistry()

	const tokens = 50
	var wg sync.WaitGroup
	for i := 0; i < tokens; i++ {
		wg.Add(2)
		token := fmt.Sprintf("tok-%d", i)
		// Two concurrent revokes per token: no entry may be lost.
		go func() {
			defer wg.Done()
			_ = registry.Revoke(ctx, token)
		}()
		go func() {
			defer wg.Done()
			_ = registry.Revoke(ctx, token)
		}()
	}
	wg.Wait()

	for i := 0; i < tokens; i++ {
		token := fmt.Sprintf("tok-%d", i)
		revoked, err := registry.Contains(ctx, token)
		if err != nil {
			t.Fatalf("Contains error: %v", err)
		}
		if !revoked {
			t.Fatalf("%s missing after concurrent revokes", token)
		}
	}
}
