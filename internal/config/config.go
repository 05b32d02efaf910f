package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// ForecastDays is the forecast horizon: that many daily summaries and
	// 24x as many hourly records per bundle.
	ForecastDays int

	// GeoLatency is the simulated geocoding lookup latency.
	GeoLatency time.Duration

	// DefaultPlace is resolved when geolocation fails with no active
	// dataset.
	DefaultPlace string

	// Session store retention.
	SessionMaxAge time.Duration // max idle age (0 = unlimited)
	SessionMax    int           // max live sessions (0 = unlimited)

	// SweepInterval controls how often expired sessions are swept.
	SweepInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 9)
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 16 {
		return nil, fmt.Errorf("FORECAST_DAYS must be between 1 and 16, got %d", cfg.ForecastDays)
	}

	latencyStr := getenvDefault("GEO_LATENCY", "120ms")
	latency, err := time.ParseDuration(latencyStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GEO_LATENCY: %w", err)
	}
	cfg.GeoLatency = latency

	cfg.DefaultPlace = getenvDefault("DEFAULT_PLACE", "New York")

	maxAgeStr := getenvDefault("SESSION_MAX_AGE", "30m")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_MAX_AGE: %w", err)
	}
	cfg.SessionMaxAge = maxAge

	cfg.SessionMax = getenvInt("SESSION_MAX", 1000)

	sweepStr := getenvDefault("SWEEP_INTERVAL", "5m")
	sweep, err := time.ParseDuration(sweepStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}
	cfg.SweepInterval = sweep

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
