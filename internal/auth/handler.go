package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pardha-bandaru/cafeteria-api/internal/httputil"
	"github.com/pardha-bandaru/cafeteria-api/internal/logging"
	"github.com/pardha-bandaru/cafeteria-api/internal/user"
)

// RateLimiter throttles requests per client IP and purpose
type RateLimiter interface {
	CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error)
	RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error
}

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service     *Service
	rateLimiter RateLimiter
	logger      *logging.Logger
}

func NewHandler(service *Service, rateLimiter RateLimiter, logger *logging.Logger) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// SignupRequest represents the registration request body
type SignupRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles user registration
// @Summary      Register a new user
// @Description  Create a new account and receive an auth token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Registration details"
// @Success      201 {object} httputil.Response
// @Failure      202 {object} httputil.Response "User already exists"
// @Failure      400 {object} httputil.Response "Validation error"
// @Router       /auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if !h.allowRequest(w, r, "signup") {
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid signup request body", "error", err.Error())
		httputil.RespondFail(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	token, err := h.service.Register(r.Context(), req.Email, req.Phone, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUser) {
			logger.Warn("signup failed: user already exists")
			// 202 preserved for client compatibility with the original API
			httputil.RespondFail(w, "user with phone/email already exists, please log in", httputil.CodeAlreadyExists, http.StatusAccepted)
			return
		}
		if errors.Is(err, ErrEmailRequired) || errors.Is(err, ErrInvalidEmailFormat) ||
			errors.Is(err, ErrPhoneTooShort) || errors.Is(err, ErrPasswordRequired) {
			logger.Warn("signup failed: validation error", "error", err.Error())
			httputil.RespondFail(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		logger.Error("signup failed: internal error", "error", err.Error())
		httputil.RespondFail(w, "some error occurred, please try again", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondToken(w, "Successfully registered.", token, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive an auth token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} httputil.Response
// @Failure      401 {object} httputil.Response "Invalid credentials"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if !h.allowRequest(w, r, "login") {
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondFail(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			httputil.RespondFail(w, "invalid email or password", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondFail(w, "failed to login", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondToken(w, "Successfully logged in.", token, http.StatusOK)
}

// Logout handles user logout
// @Summary      User logout
// @Description  Revoke the presented auth token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.Response
// @Failure      401 {object} httputil.Response "Unauthenticated"
// @Router       /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	// The gate has already admitted this request; both values are present.
	token, ok := TokenFromContext(r.Context())
	claims, okClaims := ClaimsFromContext(r.Context())
	if !ok || !okClaims {
		httputil.RespondFail(w, msgTokenMissing, httputil.CodeUnauthenticated, http.StatusUnauthorized)
		return
	}

	if err := h.service.Logout(r.Context(), token, claims); err != nil {
		logger.Error("logout failed: internal error", "error", err.Error())
		httputil.RespondFail(w, "failed to log out", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondSuccess(w, "Successfully logged out.", http.StatusOK)
}

// allowRequest applies IP rate limiting for the given purpose. Limiter
// failures are logged, not enforced.
func (h *Handler) allowRequest(w http.ResponseWriter, r *http.Request, purpose string) bool {
	logger := logging.GetLoggerFromContext(r.Context())

	ip := getClientIP(r)
	exceeded, err := h.rateLimiter.CheckIPRateLimitWithPurpose(r.Context(), ip, purpose)
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("IP rate limit exceeded", "ip", ip, "purpose", purpose)
		httputil.RespondFail(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return false
	}

	if err := h.rateLimiter.RecordIPRequestWithPurpose(r.Context(), ip, purpose); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}

	return true
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (behind proxy/load balancer)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback to RemoteAddr
	ip := r.RemoteAddr
	// RemoteAddr format is "IP:port", extract just the IP
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
