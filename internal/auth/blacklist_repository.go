package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/pardha-bandaru/cafeteria-api/internal/database"
)

var ErrTokenAlreadyRevoked = errors.New("token already revoked")

// BlacklistRepository is the authoritative revocation ledger, backed by an
// append-only Postgres table. Rows are never updated or deleted; the unique
// index on the token string resolves concurrent revocations.
type BlacklistRepository struct {
	db *bun.DB
}

func NewBlacklistRepository(db *bun.DB) *BlacklistRepository {
	return &BlacklistRepository{db: db}
}

// Insert appends a revocation record for the exact token string.
func (r *BlacklistRepository) Insert(ctx context.Context, token string) error {
	record := &database.RevokedToken{
		Token:     token,
		RevokedAt: time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(record).
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return ErrTokenAlreadyRevoked
		}
		return fmt.Errorf("failed to insert revoked token: %w", err)
	}

	return nil
}

// Contains reports whether the exact token string has been revoked.
func (r *BlacklistRepository) Contains(ctx context.Context, token string) (bool, error) {
	count, err := r.db.NewSelect().
		Model((*database.RevokedToken)(nil)).
		Where("token = ?", token).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return count > 0, nil
}
