package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pardha-bandaru/cafeteria-api/internal/logging"
	"github.com/pardha-bandaru/cafeteria-api/internal/user"
)

func newTestService(t *testing.T) (*Service, *fakeUserStore, *fakeLedger) {
	t.Helper()
	users := newFakeUserStore()
	ledger := newFakeLedger()
	svc := NewService(users, ledger, newTestJWTService(t), logging.NewLogger(true), bcrypt.MinCost)
	return svc, users, ledger
}

func TestRegister_Success(t *testing.T) {
	svc, users, _ := newTestService(t)

	token, err := svc.Register(context.Background(), "a@x.com", "1234567890", "Alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	created, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", created.PasswordHash)
	assert.True(t, CheckPassword(created.PasswordHash, "secret"))
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		phone    string
		password string
		wantErr  error
	}{
		{"missing email", "", "1234567890", "secret", ErrEmailRequired},
		{"bad email", "not-an-email", "1234567890", "secret", ErrInvalidEmailFormat},
		{"short phone", "a@x.com", "12345", "secret", ErrPhoneTooShort},
		{"missing password", "a@x.com", "1234567890", "", ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.phone, "Alice", tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_DuplicateEmailAndPhone(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "1234567890", "Alice", "secret")
	require.NoError(t, err)

	// Same email and phone
	_, err = svc.Register(ctx, "a@x.com", "1234567890", "Alice", "secret")
	assert.ErrorIs(t, err, user.ErrDuplicateUser)

	// New email, same phone
	_, err = svc.Register(ctx, "b@x.com", "1234567890", "Bob", "secret")
	assert.ErrorIs(t, err, user.ErrDuplicateUser)
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "1234567890", "Alice", "secret")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "1234567890", "Alice", "secret")
	require.NoError(t, err)

	_, wrongPass := svc.Login(ctx, "a@x.com", "wrong")
	_, unknownEmail := svc.Login(ctx, "nobody@x.com", "secret")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPass, unknownEmail)
}

func TestLogin_StoreFailureIsNotCredentialFailure(t *testing.T) {
	svc, users, _ := newTestService(t)
	users.err = errStoreDown

	_, err := svc.Login(context.Background(), "a@x.com", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestLogout_RevokesAndIsIdempotent(t *testing.T) {
	svc, _, ledger := newTestService(t)
	ctx := context.Background()

	claims := &Claims{UserID: 1, IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, svc.Logout(ctx, "token-1", claims))

	revoked, err := ledger.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Second logout with the same token reports success
	require.NoError(t, svc.Logout(ctx, "token-1", claims))
}
