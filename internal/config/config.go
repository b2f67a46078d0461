package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	Environment    string

	// PocketBase backend
	PocketBaseURL      string
	PocketBaseIdentity string // service account used for collection access
	PocketBasePassword string

	// Admin API sessions
	JWTSecret     string
	SessionMaxAge int // hours

	RedisURL string

	// Contact form relay (optional; disabled when host is empty)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Revenue projection used by reports. The per-conversion amount and
	// currency multiplier are business placeholders, so they stay injectable.
	RevenuePerConversion float64
	CurrencyRate         float64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Environment:    getEnv("ENVIRONMENT", "production"),

		PocketBaseURL:      getEnv("POCKETBASE_URL", "http://127.0.0.1:8090"),
		PocketBaseIdentity: getEnv("POCKETBASE_IDENTITY", ""),
		PocketBasePassword: getEnv("POCKETBASE_PASSWORD", ""),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		SessionMaxAge: getIntEnv("SESSION_MAX_AGE_HOURS", 12),

		RedisURL: getEnv("REDIS_URL", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getIntEnv("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "contact@betpromo.pro"),

		RevenuePerConversion: getFloatEnv("REVENUE_PER_CONVERSION", 15),
		CurrencyRate:         getFloatEnv("CURRENCY_RATE", 655),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getFloatEnv gets a float environment variable with a fallback value
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
