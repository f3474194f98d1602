package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pardha-bandaru/cafeteria-api/internal/httputil"
	"github.com/pardha-bandaru/cafeteria-api/internal/logging"
)

// newTestRouter wires the auth endpoints plus a gate-protected probe the way
// the real router does.
func newTestRouter(t *testing.T) (*chi.Mux, *fakeLimiter) {
	t.Helper()

	users := newFakeUserStore()
	ledger := newFakeLedger()
	tokens := newTestJWTService(t)
	logger := logging.NewLogger(true)

	service := NewService(users, ledger, tokens, logger, bcrypt.MinCost)
	limiter := &fakeLimiter{}
	handler := NewHandler(service, limiter, logger)
	gate := NewMiddleware(tokens, ledger, users)

	r := chi.NewRouter()
	r.Post("/auth/signup", handler.Signup)
	r.Post("/auth/login", handler.Login)
	r.Group(func(r chi.Router) {
		r.Use(gate.RequireAuth)
		r.Post("/auth/logout", handler.Logout)
		r.Get("/protected", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	return r, limiter
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, token string) (*httptest.ResponseRecorder, httputil.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp httputil.Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	}
	return rec, resp
}

func TestSignup_Success(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/auth/signup", SignupRequest{
		Email:    "a@x.com",
		Phone:    "1234567890",
		Name:     "Alice",
		Password: "secret",
	}, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Successfully registered.", resp.Message)
	assert.NotEmpty(t, resp.AuthToken)
}

func TestSignup_Duplicate(t *testing.T) {
	router, _ := newTestRouter(t)

	body := SignupRequest{Email: "a@x.com", Phone: "1234567890", Name: "Alice", Password: "secret"}
	rec, _ := doJSON(t, router, http.MethodPost, "/auth/signup", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := doJSON(t, router, http.MethodPost, "/auth/signup", body, "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "fail", resp.Status)
	assert.Equal(t, httputil.CodeAlreadyExists, resp.Code)
}

func TestSignup_ValidationFailure(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/auth/signup", SignupRequest{
		Email:    "a@x.com",
		Phone:    "123",
		Name:     "Alice",
		Password: "secret",
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httputil.CodeValidationFailed, resp.Code)
}

func TestSignup_RateLimited(t *testing.T) {
	router, limiter := newTestRouter(t)
	limiter.exceeded = true

	rec, resp := doJSON(t, router, http.MethodPost, "/auth/signup", SignupRequest{
		Email:    "a@x.com",
		Phone:    "1234567890",
		Name:     "Alice",
		Password: "secret",
	}, "")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, httputil.CodeTooManyRequests, resp.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	_, _ = doJSON(t, router, http.MethodPost, "/auth/signup", SignupRequest{
		Email:    "a@x.com",
		Phone:    "1234567890",
		Name:     "Alice",
		Password: "secret",
	}, "")

	// Wrong password and unknown email produce identical responses
	recWrong, respWrong := doJSON(t, router, http.MethodPost, "/auth/login",
		LoginRequest{Email: "a@x.com", Password: "wrong"}, "")
	recUnknown, respUnknown := doJSON(t, router, http.MethodPost, "/auth/login",
		LoginRequest{Email: "nobody@x.com", Password: "secret"}, "")

	assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, respWrong, respUnknown)
}

func TestAuthLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	// Register
	rec, resp := doJSON(t, router, http.MethodPost, "/auth/signup", SignupRequest{
		Email:    "a@x.com",
		Phone:    "1234567890",
		Name:     "Alice",
		Password: "secret",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, resp.AuthToken)

	// Login with the same credentials
	rec, resp = doJSON(t, router, http.MethodPost, "/auth/login",
		LoginRequest{Email: "a@x.com", Password: "secret"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, resp.AuthToken)
	token := resp.AuthToken

	// Protected resource admits the token
	rec, _ = doJSON(t, router, http.MethodGet, "/protected", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	// Logout revokes it
	rec, resp = doJSON(t, router, http.MethodPost, "/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully logged out.", resp.Message)

	// The same token is now rejected as revoked
	rec, resp = doJSON(t, router, http.MethodGet, "/protected", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token revoked, please log in again", resp.Message)

	// Logging out again with the revoked token is also rejected by the gate
	rec, _ = doJSON(t, router, http.MethodPost, "/auth/logout", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
