package server

import (
	"context"
	"log"

	"keywordapi/internal/handlers"
	"keywordapi/internal/handlers/api"
	"keywordapi/internal/middleware"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	DB       api.Pinger
	Handlers *api.Handlers
	// Verifier checks bearer tokens when authentication is enabled. Nil
	// falls back to identity headers.
	Verifier middleware.TokenVerifier
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Deps) {
	probeHandler := api.NewProbeHandler(deps.DB)
	s.App.Get("/health", probeHandler.Readiness)
	s.App.Get("/healthz", probeHandler.Liveness)

	if s.Metrics != nil {
		s.App.Get("/metrics", s.Metrics.Handler())
	}

	// Auth routes - only initialize if OIDC is configured
	if s.Cfg.IsOIDCEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize OIDC login: %v", err)
		} else {
			s.App.Get("/auth/login", authHandler.Login)
			s.App.Get("/auth/callback", authHandler.Callback)
			s.App.Get("/auth/logout", authHandler.Logout)
		}
	}

	actorMiddleware := middleware.NewActorMiddleware(s.Cfg, deps.Verifier)
	v1 := s.App.Group("/api/v1", actorMiddleware.Resolve)
	deps.Handlers.Register(v1)
}
