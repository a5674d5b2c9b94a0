package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// DefaultMockUserID is the actor used when authentication is disabled.
const DefaultMockUserID = "a1b2c3d4-e5f6-7890-1234-567890abcdef"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // Client CA bundle; enables mTLS when set

	// Actor resolution
	AuthEnabled  bool
	MockUserID   string // env: MOCK_USER_ID, used while AuthEnabled is false
	MockUserRole string // env: MOCK_USER_ROLE

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Rate limiting
	RedisURL     string // Shared limiter storage; in-memory when empty
	RateLimitMax int    // Requests per minute per client

	// Seeding
	SeedFile string // YAML catalogue for cmd/seed
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:              getEnv("ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/keywordapi?sslmode=disable"),
		TLSEnabled:       getEnvBool("TLS_ENABLED", false),
		TLSCertFile:      getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:       getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:        getEnv("TLS_CA_FILE", ""),
		AuthEnabled:      getEnvBool("AUTH_ENABLED", false),
		MockUserID:       getEnv("MOCK_USER_ID", DefaultMockUserID),
		MockUserRole:     getEnv("MOCK_USER_ROLE", "admin"),
		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		RateLimitMax:     getEnvInt("RATE_LIMIT_MAX", 100),
		SeedFile:         getEnv("SEED_FILE", ""),
	}
}

// Validate checks values that cannot be defaulted safely.
func (c *Config) Validate() error {
	if _, err := uuid.Parse(c.MockUserID); err != nil {
		return fmt.Errorf("MOCK_USER_ID must be a UUID: %w", err)
	}
	if c.RateLimitMax < 1 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}
	if c.TLSEnabled && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return fmt.Errorf("TLS_ENABLED requires TLS_CERT_FILE and TLS_KEY_FILE")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsOIDCEnabled returns true when bearer tokens can be verified.
func (c *Config) IsOIDCEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// MockActorID returns the parsed mock actor id. Call Validate first.
func (c *Config) MockActorID() uuid.UUID {
	id, err := uuid.Parse(c.MockUserID)
	if err != nil {
		return uuid.Nil
	}
	return id
}
