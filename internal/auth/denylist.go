package auth

import (
	"context"
	"sync"
	"time"
)

// Denylist records revoked refresh-token ids until their natural expiry.
// Revoking is idempotent; revoking an id whose token already expired is a
// no-op since there is nothing left to protect. Implementations must be safe
// for concurrent use.
type Denylist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryDenylist keeps revoked ids in process memory with lazy expiry. It
// backs tests and redis-less development setups; production deployments use
// the Redis-backed store so revocations survive restarts and are shared
// across replicas.
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryDenylist constructs an empty in-memory denylist.
func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !expiresAt.After(d.now()) {
		return nil
	}
	d.entries[jti] = expiresAt
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	expiresAt, ok := d.entries[jti]
	if !ok {
		return false, nil
	}
	if !expiresAt.After(d.now()) {
		delete(d.entries, jti)
		return false, nil
	}
	return true, nil
}

var _ Denylist = (*MemoryDenylist)(nil)
