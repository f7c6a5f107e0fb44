package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORAGE_BACKEND", "CACHE_BACKEND", "DIRECTORY_BACKEND", "CACHE_POLICY", "MOCK_FALLBACK_ENABLED", "DEFAULT_REGION", "REDIS_CACHE_TTL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, StorageCSV, cfg.StorageBackend)
	assert.Equal(t, CacheFlat, cfg.CacheBackend)
	assert.Equal(t, DirectoryAWS, cfg.DirectoryBackend)
	assert.Equal(t, "per_region", cfg.CachePolicy)
	assert.True(t, cfg.MockFallbackEnabled)
	assert.Equal(t, "us-east-1", cfg.DefaultRegion)
	assert.Equal(t, time.Duration(0), cfg.RedisCacheTTL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("DIRECTORY_BACKEND", "mock")
	t.Setenv("MOCK_FALLBACK_ENABLED", "off")
	t.Setenv("REDIS_CACHE_TTL", "300")
	t.Setenv("SNOWFLAKE_NODE_ID", "42")
	t.Setenv("DB_HOST", "db.internal")

	cfg := Load()

	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, CacheRedis, cfg.CacheBackend)
	assert.Equal(t, DirectoryMock, cfg.DirectoryBackend)
	assert.False(t, cfg.MockFallbackEnabled)
	assert.Equal(t, 5*time.Minute, cfg.RedisCacheTTL)
	assert.Equal(t, int64(42), cfg.SnowflakeNodeID)
	assert.Contains(t, cfg.DatabaseURL(), "@db.internal:")
	assert.Contains(t, cfg.DatabaseDSN(), "host=db.internal")
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"storage", func(c *Config) { c.StorageBackend = "s3" }},
		{"cache", func(c *Config) { c.CacheBackend = "memcached" }},
		{"directory", func(c *Config) { c.DirectoryBackend = "gcp" }},
		{"snowflake", func(c *Config) { c.SnowflakeNodeID = 2048 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{StorageBackend: StorageCSV, CacheBackend: CacheFlat, DirectoryBackend: DirectoryMock}
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetenvBool(t *testing.T) {
	tests := map[string]bool{"1": true, "yes": true, "ON": true, "0": false, "no": false, "garbage": true}
	for v, want := range tests {
		t.Setenv("X_TEST_BOOL", v)
		assert.Equal(t, want, getenvBool("X_TEST_BOOL", true), v)
	}
}
