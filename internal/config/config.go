// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ikovac/met-forecast-api/internal/logger"
)

// Config holds everything the service needs to run.
type Config struct {
	Port       string
	CORSOrigin string

	MongoURI      string
	MongoDatabase string

	ProviderBaseURL string
	UserAgent       string
	ClientTimeout   time.Duration
	BreakerTimeout  time.Duration

	SweepInterval   time.Duration
	RefreshInterval time.Duration
	Retention       time.Duration
}

// Load reads configuration from the environment with sensible defaults.
// A .env file is honored when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		Port:            getenvDefault("PORT", "8080"),
		CORSOrigin:      getenvDefault("ORIGIN", "*"),
		MongoURI:        getenvDefault("DB_CONN_STRING", "mongodb://localhost:27017"),
		MongoDatabase:   getenvDefault("DB_NAME", "forecast"),
		ProviderBaseURL: getenvDefault("PROVIDER_BASE_URL", "https://api.met.no/weatherapi/locationforecast/2.0/compact"),
		UserAgent:       getenvDefault("PROVIDER_USER_AGENT", "met-forecast-api/1.0 github.com/ikovac/met-forecast-api"),
	}

	var err error
	if cfg.ClientTimeout, err = getenvDuration("PROVIDER_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.BreakerTimeout, err = getenvDuration("BREAKER_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getenvDuration("SWEEP_INTERVAL", "6h"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "30m"); err != nil {
		return nil, err
	}
	if cfg.Retention, err = getenvDuration("RETENTION", "24h"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
