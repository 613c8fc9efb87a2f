// Package config provides environment-driven configuration for
// cmd/server, mirroring the teacher's internal/config.Load() style
// (getEnv/getEnvBool helpers) with the PostgreSQL/cache fields dropped
// and redipy's backend-selection knobs added.
package config

import (
	"os"
	"strconv"
)

// Config holds the server's runtime configuration.
type Config struct {
	// Backend selects which Dispatcher Client drives: "memory" for the
	// in-process engine, "redis" for a live Redis server.
	Backend string

	// Redis server address, used when Backend == "redis".
	RedisAddr string

	// Redis authentication password (optional).
	RedisPassword string

	// RedisPrefix namespaces every key redipy touches, both against the
	// in-process engine and a live Redis server.
	RedisPrefix string

	// Metrics server address.
	MetricsAddr string

	// Debug mode.
	Debug bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Backend:       getEnv("REDIPY_BACKEND", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisPrefix:   getEnv("REDIS_PREFIX", ""),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),
		Debug:         getEnvBool("DEBUG", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
