package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	SessionSecret string        // Required: HMAC secret for session tokens
	SessionIssuer string        // Optional: issuer claim for session tokens (default: tasklist)
	SessionTTL    time.Duration // Optional: session token lifetime (default: 24h)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./tasklist.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SessionSecret:       os.Getenv("TASKLIST_SESSION_SECRET"),
		SessionIssuer:       getEnvOrDefault("TASKLIST_SESSION_ISSUER", "tasklist"),
		SessionTTL:          getEnvDurationOrDefault("TASKLIST_SESSION_TTL", 24*time.Hour),
		DatabaseFile:        getEnvOrDefault("TASKLIST_DATABASE_FILE", "tasklist.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
