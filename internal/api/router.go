package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the chi router: request ID, real IP, logging and
// panic recovery apply globally, matching the teacher's server middleware
// stack; POST /plans additionally requires a bearer token when auth is
// configured.
func NewRouter(h *Handlers, auth *AuthMiddleware) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", h.HealthCheck)
	r.With(auth.Authenticate).Post("/plans", h.PostPlan)

	return r
}
