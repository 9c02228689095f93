package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.AppName != "navyk" {
		t.Errorf("expected default app name navyk, got %s", cfg.AppName)
	}
	if cfg.AuthMode != "mock" {
		t.Errorf("expected default auth mode mock, got %s", cfg.AuthMode)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.Session.RefreshWindow != 10*time.Minute {
		t.Errorf("expected 10m refresh window, got %s", cfg.Session.RefreshWindow)
	}
	if cfg.Session.InactivityLimit != 30*time.Minute {
		t.Errorf("expected 30m inactivity limit, got %s", cfg.Session.InactivityLimit)
	}
	if cfg.Session.RateLimitWindow != time.Minute {
		t.Errorf("expected 60s rate window, got %s", cfg.Session.RateLimitWindow)
	}
	if cfg.Session.RateLimitMax != 100 {
		t.Errorf("expected rate budget 100, got %d", cfg.Session.RateLimitMax)
	}
	if cfg.Mongo.Database != "navyk_security" {
		t.Errorf("expected default database navyk_security, got %s", cfg.Mongo.Database)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected an error when JWT_SECRET is unset")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("AUTH_MODE", "mongo")
	t.Setenv("SESSION_INACTIVITY_LIMIT", "45m")
	t.Setenv("RATE_LIMIT_MAX", "250")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AuthMode != "mongo" {
		t.Errorf("expected auth mode mongo, got %s", cfg.AuthMode)
	}
	if cfg.Session.InactivityLimit != 45*time.Minute {
		t.Errorf("expected 45m inactivity limit, got %s", cfg.Session.InactivityLimit)
	}
	if cfg.Session.RateLimitMax != 250 {
		t.Errorf("expected rate budget 250, got %d", cfg.Session.RateLimitMax)
	}
}
