// Package config provides configuration for the cache service and the server
// embedding it. Values are loaded from environment variables with sensible
// defaults and validated before use.
//
// Environment Variables:
//
// Application settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//
// Cache configuration:
//   - CACHE_LOCAL_CAPACITY: Max entries in the in-process tier (default: 1000)
//   - CACHE_NAMESPACE: Key prefix for the remote tier (default: "cache:")
//   - CACHE_STATS_INTERVAL: Cron spec for the periodic statistics report
//     (default: "@every 1m")
//
// Redis configuration (remote tier):
//   - REDIS_ENABLED: Whether the remote tier is configured (default: true)
//   - REDIS_ADDRESS: Redis server address (default: localhost:6379)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15, owned exclusively by the cache
//     (default: 0)
//   - REDIS_POOL_SIZE: Redis connection pool size (default: 10)
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration values for the cache server.
type Config struct {
	// Application settings
	Port     string // Server port number
	LogLevel string // Logging level (debug, info, warn, error)

	// Cache configuration
	CacheLocalCapacity int    // Max entries in the L1 tier
	CacheNamespace     string // Key prefix owned by the cache in Redis
	CacheStatsInterval string // Cron spec for the statistics report

	// Redis configuration for the remote tier
	RedisEnabled  bool   // Whether to configure the remote tier at all
	RedisAddress  string // Redis server address (host:port)
	RedisPassword string // Redis authentication password
	RedisDB       int    // Redis database number (0-15)
	RedisPoolSize int    // Redis connection pool size
}

// Load creates a Config from environment variables. It does not validate;
// call Validate() on the result before use.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CacheLocalCapacity: getIntEnv("CACHE_LOCAL_CAPACITY", 1000),
		CacheNamespace:     getEnv("CACHE_NAMESPACE", "cache:"),
		CacheStatsInterval: getEnv("CACHE_STATS_INTERVAL", "@every 1m"),

		RedisEnabled:  getBoolEnv("REDIS_ENABLED", true),
		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		RedisPoolSize: getIntEnv("REDIS_POOL_SIZE", 10),
	}
}

// Validate ensures the configuration can start the service safely.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port must be numeric, got %q", c.Port)
	}

	if c.CacheLocalCapacity <= 0 {
		return fmt.Errorf("cache local capacity must be positive, got %d", c.CacheLocalCapacity)
	}

	if c.RedisEnabled {
		if c.RedisAddress == "" {
			return fmt.Errorf("redis address is required when redis is enabled")
		}
		if c.RedisDB < 0 || c.RedisDB > 15 {
			return fmt.Errorf("redis db must be 0-15, got %d", c.RedisDB)
		}
		if c.RedisPoolSize <= 0 {
			return fmt.Errorf("redis pool size must be positive, got %d", c.RedisPoolSize)
		}
	}

	return nil
}

// getEnv retrieves an environment variable value or returns a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv retrieves a boolean environment variable value or returns a
// default on absence or parse failure.
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable value or returns a
// default on absence or parse failure.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
