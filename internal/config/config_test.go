package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv(EnvSecret, "")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), EnvSecret) {
		t.Fatalf("expected missing-secret error, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvSecret, "mySecret")
	t.Setenv(EnvAddr, "")
	t.Setenv(EnvTokenTTL, "")
	t.Setenv(EnvBcryptCost, "")
	t.Setenv(EnvPostgres, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if string(cfg.Secret) != "mySecret" {
		t.Fatalf("unexpected secret")
	}
	if cfg.TokenTTL != 0 {
		t.Fatalf("expected no token expiry by default, got %v", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("unexpected bcrypt cost: %d", cfg.BcryptCost)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(EnvSecret, "mySecret")
	t.Setenv(EnvAddr, ":9999")
	t.Setenv(EnvTokenTTL, "15m")
	t.Setenv(EnvBcryptCost, "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Fatalf("unexpected ttl: %v", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("unexpected cost: %d", cfg.BcryptCost)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv(EnvSecret, "mySecret")

	t.Setenv(EnvTokenTTL, "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid ttl")
	}
	t.Setenv(EnvTokenTTL, "")

	t.Setenv(EnvBcryptCost, "lots")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid cost")
	}
}
