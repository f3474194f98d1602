package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pardha-bandaru/cafeteria-api/internal/auth"
	"github.com/pardha-bandaru/cafeteria-api/internal/cafeteria"
	"github.com/pardha-bandaru/cafeteria-api/internal/config"
	"github.com/pardha-bandaru/cafeteria-api/internal/httputil"
	"github.com/pardha-bandaru/cafeteria-api/internal/item"
	"github.com/pardha-bandaru/cafeteria-api/internal/logging"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	authMiddleware *auth.Middleware,
	cafeteriaHandler *cafeteria.Handler,
	itemHandler *item.Handler,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)               // Security headers on all responses
	r.Use(middleware.Recoverer)          // Recover from panics
	r.Use(middleware.RequestID)          // Add request ID
	r.Use(middleware.RealIP)             // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	r.Use(middleware.Compress(5))        // Compress responses

	// Public routes
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		// Logout revokes the presented token, so it runs behind the gate
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/logout", authHandler.Logout)
		})
	})

	// Protected resource routes
	r.Route("/user/cafeteria", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/", cafeteriaHandler.List)
		r.Post("/", cafeteriaHandler.Create)
		r.Get("/{cafeID}", cafeteriaHandler.Get)
		r.Put("/{cafeID}", cafeteriaHandler.Update)
		r.Delete("/{cafeID}", cafeteriaHandler.Delete)

		r.Route("/{cafeID}/item", func(r chi.Router) {
			r.Get("/", itemHandler.List)
			r.Post("/", itemHandler.Create)
			r.Get("/{itemID}", itemHandler.Get)
			r.Put("/{itemID}", itemHandler.Update)
			r.Delete("/{itemID}", itemHandler.Delete)
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
