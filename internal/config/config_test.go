package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.MemberCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache ttl: %v", cfg.MemberCacheTTL)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected default origins, got %v", cfg.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate outside production: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("JWT_EXPIRY", "notanumber")
	t.Setenv("METRICS_ENABLED", "no")
	t.Setenv("MEMBER_CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Fatalf("expected 9000, got %s", cfg.Port)
	}
	if cfg.JWTExpiry != 24 {
		t.Fatalf("invalid int should fall back, got %d", cfg.JWTExpiry)
	}
	if cfg.MetricsEnabled {
		t.Fatalf("expected metrics disabled")
	}
	if cfg.MemberCacheTTL != 30*time.Second {
		t.Fatalf("expected 30s, got %v", cfg.MemberCacheTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestValidateProductionSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected default secret to be rejected in production")
	}

	cfg.JWTSecret = "a-real-secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
