// Package redisdl keeps revoked refresh token ids in Redis, with each
// entry expiring together with the token it blocks.
package redisdl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"skladr.dev/internal/auth"
)

const keyPrefix = "auth:denylist:"

type Denylist struct {
	client *redis.Client
	now    func() time.Time
}

func New(client *redis.Client) *Denylist {
	return &Denylist{client: client, now: time.Now}
}

// Revoke marks a token id as unusable until its natural expiry. Entries
// for already expired tokens are skipped since the codec rejects them anyway.
func (d *Denylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.SetEX(ctx, keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	return nil
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

var _ auth.Denylist = (*Denylist)(nil)
