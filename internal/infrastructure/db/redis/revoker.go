package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "revoked:"

// Revoker stores revoked token ids with a TTL matching the token's remaining
// lifetime, so the set never outgrows the live tokens.
// Key format: revoked:<jti>
type Revoker struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRevoker wraps a client returned by Connect.
func NewRevoker(client redis.Cmdable) *Revoker {
	return &Revoker{client: client, now: time.Now}
}

// Revoke is a no-op for a token that has already expired.
func (r *Revoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func revokedKey(tokenID string) string {
	return revokedPrefix + tokenID
}
