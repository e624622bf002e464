package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by the service.
const (
	EnvAddr       = "HELLOSVC_ADDR"
	EnvSecret     = "HELLOSVC_AUTH_SECRET"
	EnvTokenTTL   = "HELLOSVC_TOKEN_TTL"
	EnvBcryptCost = "HELLOSVC_BCRYPT_COST"
	EnvPostgres   = "HELLOSVC_PG_DSN"
	EnvRateBurst  = "HELLOSVC_RATE_BURST"
	EnvRatePerSec = "HELLOSVC_RATE_PER_SEC"
)

// Config holds all service configuration. It is constructed once at startup
// and handed to components by value; the auth secret in particular is shared
// by token issue and verify and never mutated while requests are in flight.
type Config struct {
	Addr        string
	Secret      []byte
	TokenTTL    time.Duration // zero disables token expiry
	BcryptCost  int
	PostgresDSN string
	RateBurst   int
	RatePerSec  int
}

// Load reads configuration from the environment, with optional .env support.
func Load() (Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := Config{
		Addr:        ":8080",
		BcryptCost:  10,
		PostgresDSN: os.Getenv(EnvPostgres),
		RateBurst:   20,
		RatePerSec:  10,
	}
	if addr := strings.TrimSpace(os.Getenv(EnvAddr)); addr != "" {
		cfg.Addr = addr
	}

	secret := strings.TrimSpace(os.Getenv(EnvSecret))
	if secret == "" {
		return Config{}, errors.New(EnvSecret + " is required")
	}
	cfg.Secret = []byte(secret)

	if raw := strings.TrimSpace(os.Getenv(EnvTokenTTL)); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl < 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", EnvTokenTTL, raw)
		}
		cfg.TokenTTL = ttl
	}
	if raw := strings.TrimSpace(os.Getenv(EnvBcryptCost)); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %q", EnvBcryptCost, raw)
		}
		cfg.BcryptCost = cost
	}
	if raw := strings.TrimSpace(os.Getenv(EnvRateBurst)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", EnvRateBurst, raw)
		}
		cfg.RateBurst = n
	}
	if raw := strings.TrimSpace(os.Getenv(EnvRatePerSec)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", EnvRatePerSec, raw)
		}
		cfg.RatePerSec = n
	}
	return cfg, nil
}
