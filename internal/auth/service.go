package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/pardha-bandaru/cafeteria-api/internal/logging"
	"github.com/pardha-bandaru/cafeteria-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPhoneTooShort      = errors.New("phone number must be at least 10 characters")
	ErrPasswordRequired   = errors.New("password is required")
)

// Service handles authentication business logic
type Service struct {
	users      UserStore
	ledger     RevocationLedger
	tokens     TokenService
	logger     *logging.Logger
	bcryptCost int
}

func NewService(
	users UserStore,
	ledger RevocationLedger,
	tokens TokenService,
	logger *logging.Logger,
	bcryptCost int,
) *Service {
	return &Service{
		users:      users,
		ledger:     ledger,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account and issues an auth token. A uniqueness
// violation from the store (including a lost race with a concurrent signup)
// surfaces as user.ErrDuplicateUser.
func (s *Service) Register(ctx context.Context, email, phone, name, password string) (string, error) {
	// Validate input
	if email == "" {
		return "", ErrEmailRequired
	}
	if len(email) > 254 {
		return "", ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmailFormat
	}
	if len(phone) < 10 {
		return "", ErrPhoneTooShort
	}
	if password == "" {
		return "", ErrPasswordRequired
	}

	// Hash password before it ever reaches the store
	passwordHash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, email, phone, name, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUser) {
			return "", user.ErrDuplicateUser
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.CreateToken(newUser.ID)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	s.logger.Info("user registered", "user_id", newUser.ID)

	return token, nil
}

// Login authenticates a user and returns an auth token. An unknown email and
// a wrong password both report ErrInvalidCredentials so the response does not
// reveal which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !CheckPassword(existing.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(existing.ID)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", existing.ID)

	return token, nil
}

// Logout revokes the exact token string presented with the request. Logout is
// idempotent: a token already on the ledger counts as a success.
func (s *Service) Logout(ctx context.Context, token string, claims *Claims) error {
	err := s.ledger.Revoke(ctx, token, claims.ExpiresAt)
	if err != nil {
		if errors.Is(err, ErrTokenAlreadyRevoked) {
			return nil
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info("token revoked", "user_id", claims.UserID)

	return nil
}
