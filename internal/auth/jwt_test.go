package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testValidity = 5*24*time.Hour + 5*time.Second

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService([]byte("test-secret"), testValidity)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService(nil, testValidity)
	assert.Error(t, err)
}

func TestCreateToken_RoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.CreateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.Add(testValidity).Unix(), claims.ExpiresAt.Unix())
}

func TestVerifyToken_Expired(t *testing.T) {
	svc := newTestJWTService(t)
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.CreateToken(42)
	require.NoError(t, err)

	// Advance the clock one second past expiry
	svc.now = func() time.Time { return issued.Add(testValidity + time.Second) }

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_TamperedSignature(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.CreateToken(42)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip a character in the signature segment
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.VerifyToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.CreateToken(42)
	require.NoError(t, err)

	other, err := NewJWTService([]byte("other-secret"), testValidity)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := newTestJWTService(t)

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.VerifyToken(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenStr)
	}
}
