// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/minhngyn/opusdb/internal/catalog/category"
	"github.com/minhngyn/opusdb/internal/catalog/genre"
	"github.com/minhngyn/opusdb/internal/catalog/title"
	"github.com/minhngyn/opusdb/internal/feedback"
	"github.com/minhngyn/opusdb/internal/platform/config"
	"github.com/minhngyn/opusdb/internal/platform/constants"
	"github.com/minhngyn/opusdb/internal/platform/middleware"
	"github.com/minhngyn/opusdb/internal/users/account"
	"github.com/minhngyn/opusdb/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles signup, token exchange, and session routes.
	Auth *auth.Handler

	// Title handles the works catalog and its filters.
	Title *title.Handler

	// Category and Genre manage the classification reference data.
	Category *category.Handler
	Genre    *genre.Handler

	// Feedback handles reviews and comments nested under titles.
	Feedback *feedback.Handler

	// Account handles user administration and the /users/me profile.
	Account *account.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		api.Route("/titles", func(titles chi.Router) {
			h.Title.RegisterRoutes(titles)
			titles.Mount("/{titleID}/reviews", h.Feedback.Routes())
		})

		api.Route("/categories", func(categories chi.Router) {
			h.Category.RegisterRoutes(categories)
		})
		api.Route("/genres", func(genres chi.Router) {
			h.Genre.RegisterRoutes(genres)
		})

		api.Route("/users", func(users chi.Router) {
			h.Account.RegisterRoutes(users)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
