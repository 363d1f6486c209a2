// File: internal/config/config_test.go
package config

import (
    "strings"
    "testing"
    "time"
)

func TestLoad_Defaults(t *testing.T) {
    t.Setenv("ENV", "test")
    for _, key := range []string{"DATABASE_DRIVER", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW", "UPSTREAM_TIMEOUT", "EMAIL_PROVIDER", "RATE_LIMIT_BACKEND"} {
        t.Setenv(key, "")
    }

    cfg, err := Load()
    if err != nil {
        t.Fatalf("Load() error = %v", err)
    }
    if cfg.RateLimitMax != 20 {
        t.Errorf("RateLimitMax = %d, want 20", cfg.RateLimitMax)
    }
    if cfg.RateLimitWindow != 60*time.Second {
        t.Errorf("RateLimitWindow = %v, want 60s", cfg.RateLimitWindow)
    }
    if cfg.UpstreamTimeout != 30*time.Second {
        t.Errorf("UpstreamTimeout = %v, want 30s", cfg.UpstreamTimeout)
    }
}

func TestGetEnvAsDuration(t *testing.T) {
    t.Setenv("TEST_DURATION", "45")
    if got := getEnvAsDuration("TEST_DURATION", time.Second); got != 45*time.Second {
        t.Errorf("plain seconds: got %v", got)
    }
    t.Setenv("TEST_DURATION", "2m")
    if got := getEnvAsDuration("TEST_DURATION", time.Second); got != 2*time.Minute {
        t.Errorf("duration string: got %v", got)
    }
    t.Setenv("TEST_DURATION", "soon")
    if got := getEnvAsDuration("TEST_DURATION", time.Second); got != time.Second {
        t.Errorf("invalid value should fall back, got %v", got)
    }
}

func TestValidate_ProductionRequiresSecrets(t *testing.T) {
    cfg := &Config{
        Environment:      "production",
        DatabaseDriver:   "sqlite",
        RateLimitBackend: "database",
        RateLimitMax:     20,
        RateLimitWindow:  time.Minute,
        UpstreamTimeout:  time.Second,
        EmailProvider:    "log",
    }

    err := cfg.Validate()
    if err == nil {
        t.Fatal("expected missing secrets error")
    }
    if !strings.Contains(err.Error(), "ADMIN_JWT_SECRET") || !strings.Contains(err.Error(), "LLM_API_KEY") {
        t.Errorf("unexpected error: %v", err)
    }

    cfg.AdminJWTSecret = "k"
    cfg.LLMAPIKey = "k"
    if err := cfg.Validate(); err != nil {
        t.Errorf("Validate() error = %v", err)
    }
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
    cfg := &Config{
        DatabaseDriver:   "mysql",
        RateLimitBackend: "database",
        RateLimitMax:     1,
        RateLimitWindow:  time.Minute,
        UpstreamTimeout:  time.Second,
        EmailProvider:    "log",
    }
    if err := cfg.Validate(); err == nil {
        t.Error("expected error for unsupported driver")
    }
}
