package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		GRPCAddr:     ":8080",
		APIToken:     "dev-token",
		LogLevel:     "info",
		LogFormat:    "text",
		CacheBackend: CacheBackendMemory,
		CacheSize:    256,
		CacheTTL:     10 * time.Minute,
		OTelEnabled:  true,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{name: "valid memory cache config", mutate: func(c *Config) {}},
		{name: "valid redis config", mutate: func(c *Config) {
			c.CacheBackend = CacheBackendRedis
			c.RedisAddr = "localhost:6379"
		}},
		{name: "cache disabled ignores TTL", mutate: func(c *Config) {
			c.CacheBackend = CacheBackendNone
			c.CacheTTL = 0
		}},
		{name: "valid otel endpoint", mutate: func(c *Config) { c.OTelEndpoint = "http://localhost:4318" }},
		{
			name:        "invalid gRPC address",
			mutate:      func(c *Config) { c.GRPCAddr = "8080" },
			wantErr:     true,
			errorString: "invalid gRPC address '8080'",
		},
		{
			name:        "empty API token",
			mutate:      func(c *Config) { c.APIToken = "  " },
			wantErr:     true,
			errorString: "API token cannot be empty",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "unknown cache backend",
			mutate:      func(c *Config) { c.CacheBackend = "memcached" },
			wantErr:     true,
			errorString: "invalid cache backend 'memcached'",
		},
		{
			name:        "memory cache size too small",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			wantErr:     true,
			errorString: "invalid cache size 0",
		},
		{
			name:        "redis without address",
			mutate:      func(c *Config) { c.CacheBackend = CacheBackendRedis },
			wantErr:     true,
			errorString: "REDIS_ADDR is required",
		},
		{
			name:        "non-positive TTL",
			mutate:      func(c *Config) { c.CacheTTL = -time.Second },
			wantErr:     true,
			errorString: "invalid cache TTL",
		},
		{
			name:        "otel endpoint without scheme",
			mutate:      func(c *Config) { c.OTelEndpoint = "localhost:4318" },
			wantErr:     true,
			errorString: "invalid OTel endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.APIToken = ""
	cfg.LogFormat = "yaml"

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API token cannot be empty")
	assert.Contains(t, err.Error(), "invalid log format 'yaml'")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GRPC_ADDR", "API_TOKEN", "LOG_LEVEL", "LOG_FORMAT", "CACHE_BACKEND", "CACHE_SIZE", "CACHE_TTL", "REDIS_ADDR", "OTEL_ENDPOINT", "OTEL_ENABLED"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.GRPCAddr)
	assert.Equal(t, "dev-token", cfg.APIToken)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.TracingEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GRPC_ADDR", "127.0.0.1:9090")
	t.Setenv("CACHE_BACKEND", CacheBackendRedis)
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("OTEL_ENDPOINT", "http://collector:4318")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.GRPCAddr)
	assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.TracingEnabled())
}
