package config

import (
	"testing"

	"github.com/google/uuid"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "")
	t.Setenv("MOCK_USER_ID", "")
	t.Setenv("RATE_LIMIT_MAX", "")

	cfg := Load()
	if cfg.AuthEnabled {
		t.Error("AuthEnabled should default to false")
	}
	if cfg.MockActorID() != uuid.MustParse(DefaultMockUserID) {
		t.Errorf("MockActorID() = %v, want %v", cfg.MockActorID(), DefaultMockUserID)
	}
	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want 100", cfg.RateLimitMax)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("RATE_LIMIT_MAX", "25")
	t.Setenv("MOCK_USER_ROLE", "project-staff")

	cfg := Load()
	if !cfg.AuthEnabled {
		t.Error("AuthEnabled = false, want true")
	}
	if cfg.RateLimitMax != 25 {
		t.Errorf("RateLimitMax = %d, want 25", cfg.RateLimitMax)
	}
	if cfg.MockUserRole != "project-staff" {
		t.Errorf("MockUserRole = %q", cfg.MockUserRole)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad mock id", func(c *Config) { c.MockUserID = "not-a-uuid" }, true},
		{"zero rate limit", func(c *Config) { c.RateLimitMax = 0 }, true},
		{"tls without files", func(c *Config) { c.TLSEnabled = true }, true},
		{"tls with files", func(c *Config) {
			c.TLSEnabled = true
			c.TLSCertFile = "cert.pem"
			c.TLSKeyFile = "key.pem"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{MockUserID: DefaultMockUserID, RateLimitMax: 100}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"", true, true},
		{"1", false, true},
		{"false", true, false},
		{"garbage", true, true},
	}

	for _, tt := range tests {
		t.Setenv("KEYWORDAPI_TEST_BOOL", tt.value)
		if got := getEnvBool("KEYWORDAPI_TEST_BOOL", tt.fallback); got != tt.want {
			t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.value, tt.fallback, got, tt.want)
		}
	}
}
