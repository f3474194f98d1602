package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationCache keeps revoked-token markers in Redis so the gate usually
// answers the revocation check without a database round-trip. Entries expire
// with the token itself; the Postgres ledger stays authoritative.
type RevocationCache struct {
	client *redis.Client
}

func NewRevocationCache(client *redis.Client) *RevocationCache {
	return &RevocationCache{client: client}
}

// revokedKey generates the Redis key for a revoked token marker
func revokedKey(token string) string {
	return fmt.Sprintf("auth_token:revoked:%s", token)
}

// MarkRevoked stores a revocation marker with a TTL equal to the token's
// remaining lifetime. An already-expired token needs no marker.
func (c *RevocationCache) MarkRevoked(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := c.client.Set(ctx, revokedKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark token revoked: %w", err)
	}

	return nil
}

// IsRevoked reports whether a revocation marker exists for the token.
func (c *RevocationCache) IsRevoked(ctx context.Context, token string) (bool, error) {
	exists, err := c.client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation marker: %w", err)
	}

	return exists > 0, nil
}
