package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/quillpost/quillpost-go/internal/crypto"
)

var ErrMissingSecret = errors.New("SECRET_KEY must be set in production environment")

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	SecretKey   string
	SessionTTL  time.Duration
}

// Production reports whether the server runs with production settings.
func (c Config) Production() bool {
	return c.Env == "production"
}

// Load reads the configuration from the environment and exits when it is
// unusable.
func Load() Config {
	cfg, err := FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// FromEnv reads the configuration from the environment. Outside production a
// missing SECRET_KEY is replaced by a random one that lasts until restart.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "5002"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", "sqlite:///posts.db"),
		SecretKey:   os.Getenv("SECRET_KEY"),
		SessionTTL:  24 * time.Hour,
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("invalid SESSION_TTL %q", v)
		}
		cfg.SessionTTL = ttl
	}

	if cfg.SecretKey == "" {
		if cfg.Production() {
			return Config{}, ErrMissingSecret
		}
		secret, err := crypto.GenerateSecret(64)
		if err != nil {
			return Config{}, err
		}
		cfg.SecretKey = secret
		slog.Warn("SECRET_KEY not set, using an ephemeral secret; sessions end on restart")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
