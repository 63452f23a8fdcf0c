package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1000, cfg.CacheLocalCapacity)
	assert.Equal(t, "cache:", cfg.CacheNamespace)
	assert.Equal(t, "@every 1m", cfg.CacheStatsInterval)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 10, cfg.RedisPoolSize)

	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_LOCAL_CAPACITY", "50")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 50, cfg.CacheLocalCapacity)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("CACHE_LOCAL_CAPACITY", "not-a-number")

	cfg := Load()
	assert.Equal(t, 1000, cfg.CacheLocalCapacity)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Load()
		cfg.RedisEnabled = true
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty port", func(c *Config) { c.Port = "" }, "port is required"},
		{"non-numeric port", func(c *Config) { c.Port = "http" }, "port must be numeric"},
		{"zero capacity", func(c *Config) { c.CacheLocalCapacity = 0 }, "capacity must be positive"},
		{"negative capacity", func(c *Config) { c.CacheLocalCapacity = -1 }, "capacity must be positive"},
		{"empty redis address", func(c *Config) { c.RedisAddress = "" }, "redis address is required"},
		{"redis db out of range", func(c *Config) { c.RedisDB = 16 }, "redis db must be 0-15"},
		{"zero pool size", func(c *Config) { c.RedisPoolSize = 0 }, "pool size must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RedisChecksSkippedWhenDisabled(t *testing.T) {
	cfg := Load()
	cfg.RedisEnabled = false
	cfg.RedisAddress = ""
	cfg.RedisDB = 99

	assert.NoError(t, cfg.Validate())
}
