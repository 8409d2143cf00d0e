package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything main needs to wire the server. Values come
// from environment variables, with a local .env file honored for
// development.
type Config struct {
	HTTPAddr      string
	DBConnStr     string
	JWTSecret     []byte
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string

	// MaintenanceInterval is the period of the background loop that
	// freezes overdue credit cards, applies monthly interest and purges
	// expired password-reset requests.
	MaintenanceInterval time.Duration
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	// Best effort; absence of a .env file is the normal case outside
	// local development.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:            ":" + envOr("PORT", "8080"),
		DBConnStr:           os.Getenv("DB_CONN_STR"),
		JWTSecret:           []byte(envOr("JWT_SECRET", "")),
		TokenTTL:            24 * time.Hour,
		AdminEmail:          envOr("ADMIN_EMAIL", "admin@bank.local"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		MaintenanceInterval: time.Hour,
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	if iv := os.Getenv("MAINTENANCE_INTERVAL"); iv != "" {
		d, err := time.ParseDuration(iv)
		if err != nil {
			return nil, fmt.Errorf("invalid MAINTENANCE_INTERVAL: %w", err)
		}
		cfg.MaintenanceInterval = d
	}

	if cfg.DBConnStr == "" {
		// Build the connection string from individual vars (Docker
		// friendly).
		cfg.DBConnStr = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			envOr("DB_HOST", "localhost"),
			envOr("DB_PORT", "5432"),
			envOr("DB_USER", "postgres"),
			envOr("DB_PASSWORD", "postgres"),
			envOr("DB_NAME", "bank"),
		)
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
