package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend modes.
const (
	BackendFixtures = "fixtures"
	BackendRemote   = "remote"
)

// Config holds the application configuration.
type Config struct {
	APIBaseURL     string
	BackendMode    string // fixtures or remote
	RequestTimeout time.Duration
	DatabasePath   string // durable session token store
	Profile        string // key of the stored session
	LogLevel       string

	// Fixture backend (ecolearn serve)
	ServerPort       int
	JWTSecret        string
	TokenTTL         time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
	PlantingSchedule string // cron spec for promoting in-progress plantings
	IsProduction     bool
}

// Load loads configuration from an optional .env file, environment variables or defaults.
func Load() (*Config, error) {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	mode := getEnv("BACKEND_MODE", BackendFixtures)
	if mode != BackendFixtures && mode != BackendRemote {
		return nil, fmt.Errorf("invalid BACKEND_MODE %q: want %s or %s", mode, BackendFixtures, BackendRemote)
	}

	return &Config{
		APIBaseURL:       getEnv("API_BASE_URL", "http://localhost:8080/api"),
		BackendMode:      mode,
		RequestTimeout:   timeout,
		DatabasePath:     getEnv("DATABASE_PATH", "./ecolearn.db"),
		Profile:          getEnv("PROFILE", "default"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ServerPort:       port,
		JWTSecret:        getEnv("JWT_SECRET", "ecolearn-dev-secret"),
		TokenTTL:         ttl,
		RateLimitRPS:     rps,
		RateLimitBurst:   burst,
		PlantingSchedule: getEnv("PLANTING_SCHEDULE", "@every 1m"),
		IsProduction:     getEnv("APP_ENV", "development") == "production",
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
