package auth

import (
	"context"
	"errors"
	"time"

	"github.com/pardha-bandaru/cafeteria-api/internal/logging"
)

// Ledger composes the Postgres blacklist with the Redis fast path. The cache
// is best effort: a cache failure degrades to a database lookup, never to a
// wrong answer.
type Ledger struct {
	repo   *BlacklistRepository
	cache  *RevocationCache
	logger *logging.Logger
}

func NewLedger(repo *BlacklistRepository, cache *RevocationCache, logger *logging.Logger) *Ledger {
	return &Ledger{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Revoke appends the token to the ledger and writes through to the cache.
// A duplicate insert still refreshes the cache marker before reporting
// ErrTokenAlreadyRevoked, so the losing side of a concurrent logout observes
// the same end state as the winner.
func (l *Ledger) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	insertErr := l.repo.Insert(ctx, token)
	if insertErr != nil && !errors.Is(insertErr, ErrTokenAlreadyRevoked) {
		return insertErr
	}

	if err := l.cache.MarkRevoked(ctx, token, expiresAt); err != nil {
		l.logger.Warn("failed to cache revocation marker", "error", err.Error())
	}

	return insertErr
}

// IsRevoked consults the cache first and falls through to the ledger.
func (l *Ledger) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := l.cache.IsRevoked(ctx, token)
	if err != nil {
		l.logger.Warn("revocation cache unavailable, falling back to database", "error", err.Error())
	} else if revoked {
		return true, nil
	}

	return l.repo.Contains(ctx, token)
}
