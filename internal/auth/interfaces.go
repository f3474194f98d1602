package auth

import (
	"context"
	"time"

	"github.com/pardha-bandaru/cafeteria-api/internal/user"
)

// TokenService defines the interface for token creation and validation.
// JWTService (HS256) is the production implementation.
type TokenService interface {
	CreateToken(userID int64) (string, error)
	VerifyToken(tokenStr string) (*Claims, error)
}

// UserStore is the credential store the auth flows and the gate resolve
// subjects against.
type UserStore interface {
	Create(ctx context.Context, email, phone, name, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// RevocationLedger records tokens invalidated before expiry and is consulted
// on every validation. Revoke reports ErrTokenAlreadyRevoked on a duplicate;
// callers treat that as already satisfied. The expiry is passed through so
// cache entries can be bounded to the token's remaining lifetime.
type RevocationLedger interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
