// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	UserID   string

	// Database. SQLite paths and postgres:// URLs are both accepted.
	DatabaseURL string

	// Redis. Empty disables the briefing cache.
	RedisURL string

	// RabbitMQ. Empty disables the broker; events are dropped.
	RabbitMQURL string

	// BriefingCacheTTL bounds how stale a cached briefing may be.
	BriefingCacheTTL time.Duration

	// Buffer policy overrides, in minutes. Zero keeps the default.
	DomesticCheckInMin      int
	InternationalCheckInMin int
	TravelToAirportMin      int
	AppointmentBufferMin    int

	// InternationalTokens overrides the destination token list.
	InternationalTokens []string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		UserID:      getEnv("WAYFARER_USER_ID", "local"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		BriefingCacheTTL: getDurationEnv("BRIEFING_CACHE_TTL", 5*time.Minute),

		DomesticCheckInMin:      getIntEnv("BUFFER_DOMESTIC_CHECKIN_MIN", 0),
		InternationalCheckInMin: getIntEnv("BUFFER_INTL_CHECKIN_MIN", 0),
		TravelToAirportMin:      getIntEnv("BUFFER_TRAVEL_TO_AIRPORT_MIN", 0),
		AppointmentBufferMin:    getIntEnv("BUFFER_APPOINTMENT_MIN", 0),

		InternationalTokens: getListEnv("INTERNATIONAL_TOKENS"),
	}

	return cfg, nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getListEnv(key string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
