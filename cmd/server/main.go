package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"keywordapi/internal/config"
	"keywordapi/internal/db"
	"keywordapi/internal/handlers/api"
	"keywordapi/internal/metrics"
	"keywordapi/internal/middleware"
	"keywordapi/internal/server"
	"keywordapi/internal/service"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Bearer token verification
	var verifier middleware.TokenVerifier
	if cfg.AuthEnabled && cfg.IsOIDCEnabled() {
		v, err := middleware.NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCClientID)
		if err != nil {
			log.Fatalf("Failed to initialize OIDC verifier: %v", err)
		}
		verifier = v
	} else if cfg.AuthEnabled {
		log.Println("OIDC is not configured; actors are read from X-User-ID and X-User-Role headers")
	} else {
		log.Printf("Authentication disabled; requests act as %s", cfg.MockUserID)
	}

	srv := server.New(cfg, metrics.New(database))
	srv.RegisterRoutes(ctx, server.Deps{
		DB: database,
		Handlers: &api.Handlers{
			Domains:   api.NewDomainHandler(service.NewDomainService(database)),
			Niches:    api.NewNicheHandler(service.NewNicheService(database)),
			Subniches: api.NewSubnicheHandler(service.NewSubnicheService(database)),
			Keywords:  api.NewKeywordHandler(service.NewKeywordService(database)),
		},
		Verifier: verifier,
	})

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
