package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pardha-bandaru/cafeteria-api/internal/httputil"
	"github.com/pardha-bandaru/cafeteria-api/internal/logging"
	"github.com/pardha-bandaru/cafeteria-api/internal/user"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey   ContextKey = "auth_user"
	ClaimsContextKey ContextKey = "auth_claims"
	TokenContextKey  ContextKey = "auth_token"
)

// Fixed user-facing rejection messages. Lower-level decode errors are never
// forwarded verbatim.
const (
	msgTokenMissing   = "provide a valid auth token"
	msgTokenMalformed = "bearer token malformed"
	msgTokenExpired   = "token has expired, please log in again"
	msgTokenInvalid   = "invalid token, please log in again"
	msgTokenRevoked   = "token revoked, please log in again"
)

// Middleware gates protected routes behind token validation
type Middleware struct {
	tokens TokenService
	ledger RevocationLedger
	users  UserStore
}

func NewMiddleware(tokens TokenService, ledger RevocationLedger, users UserStore) *Middleware {
	return &Middleware{
		tokens: tokens,
		ledger: ledger,
		users:  users,
	}
}

// RequireAuth admits a request only when it carries a well-formed, valid,
// non-revoked bearer token whose subject resolves to an existing user. Every
// failure is terminal; the downstream handler is never partially invoked.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		// Extract the bearer token
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.RespondFail(w, msgTokenMissing, httputil.CodeUnauthenticated, http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			httputil.RespondFail(w, msgTokenMalformed, httputil.CodeUnauthenticated, http.StatusUnauthorized)
			return
		}
		token := parts[1]

		// Decode
		claims, err := m.tokens.VerifyToken(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				httputil.RespondFail(w, msgTokenExpired, httputil.CodeUnauthenticated, http.StatusUnauthorized)
				return
			}
			httputil.RespondFail(w, msgTokenInvalid, httputil.CodeUnauthenticated, http.StatusUnauthorized)
			return
		}

		// Revocation check
		revoked, err := m.ledger.IsRevoked(r.Context(), token)
		if err != nil {
			logger.Error("revocation check failed", "error", err.Error())
			httputil.RespondFail(w, "service unavailable, please try again", httputil.CodeInternalError, http.StatusInternalServerError)
			return
		}
		if revoked {
			httputil.RespondFail(w, msgTokenRevoked, httputil.CodeUnauthenticated, http.StatusUnauthorized)
			return
		}

		// Resolve the subject. A deleted account is reported exactly like a
		// malformed token so callers cannot probe account existence.
		authUser, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				httputil.RespondFail(w, msgTokenInvalid, httputil.CodeUnauthenticated, http.StatusUnauthorized)
				return
			}
			logger.Error("user lookup failed", "error", err.Error())
			httputil.RespondFail(w, "service unavailable, please try again", httputil.CodeInternalError, http.StatusInternalServerError)
			return
		}

		// Admit: attach identity, claims and the raw token for downstream use
		ctx := context.WithValue(r.Context(), UserContextKey, authUser)
		ctx = context.WithValue(ctx, ClaimsContextKey, claims)
		ctx = context.WithValue(ctx, TokenContextKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext extracts the authenticated user from the request context
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(UserContextKey).(*user.User)
	return u, ok
}

// ClaimsFromContext extracts the decoded token claims from the request context
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return c, ok
}

// TokenFromContext extracts the raw bearer token from the request context
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(TokenContextKey).(string)
	return t, ok
}
