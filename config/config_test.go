package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_TTL", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	cfg := FromEnv()
	if cfg.JWTTTL != 2*time.Hour {
		t.Fatalf("JWTTTL = %v", cfg.JWTTTL)
	}
	if cfg.UploadMaxBytes != 4<<20 {
		t.Fatalf("UploadMaxBytes = %d", cfg.UploadMaxBytes)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("LOGIN_RATE_LIMIT", "not-a-number")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.dev , ,https://b.dev")
	cfg := FromEnv()
	if cfg.JWTTTL != 30*time.Minute {
		t.Fatalf("JWTTTL = %v", cfg.JWTTTL)
	}
	if cfg.LoginRateLimit != 10 {
		t.Fatalf("malformed int should fall back, got %d", cfg.LoginRateLimit)
	}
	if cfg.PostgresDSN() != "postgres://u:p@db:5432/x" {
		t.Fatalf("DSN = %q", cfg.PostgresDSN())
	}
	if got := cfg.CORSOrigins(); len(got) != 2 || got[1] != "https://b.dev" {
		t.Fatalf("origins = %v", got)
	}
}
