package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Cache backends
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds the server configuration, read from the environment
type Config struct {
	// gRPC server
	GRPCAddr string `env:"GRPC_ADDR" envDefault:":8080"`
	APIToken string `env:"API_TOKEN" envDefault:"dev-token"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Projection result cache
	CacheBackend string        `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheSize    int           `env:"CACHE_SIZE" envDefault:"256"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	RedisAddr    string        `env:"REDIS_ADDR"`

	// Tracing, opt-in
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

// Load reads an optional .env file, then parses the environment into a Config.
// Variables already set in the environment win over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration and returns every problem found
func (c *Config) Validate() error {
	var problems []string

	if _, port, err := net.SplitHostPort(c.GRPCAddr); err != nil || port == "" {
		problems = append(problems, fmt.Sprintf("invalid gRPC address '%s': must be host:port or :port", c.GRPCAddr))
	}

	if strings.TrimSpace(c.APIToken) == "" {
		problems = append(problems, "API token cannot be empty")
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	switch c.CacheBackend {
	case CacheBackendNone:
	case CacheBackendMemory:
		if c.CacheSize < 1 {
			problems = append(problems, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
		}
	case CacheBackendRedis:
		if c.RedisAddr == "" {
			problems = append(problems, "REDIS_ADDR is required when using the redis cache backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid cache backend '%s': must be one of [%s %s %s]",
			c.CacheBackend, CacheBackendNone, CacheBackendMemory, CacheBackendRedis))
	}

	if c.CacheBackend != CacheBackendNone && c.CacheTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid cache TTL %s: must be positive", c.CacheTTL))
	}

	if c.OTelEndpoint != "" {
		if u, err := url.Parse(c.OTelEndpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			problems = append(problems, fmt.Sprintf("invalid OTel endpoint '%s': must be an http(s) URL", c.OTelEndpoint))
		}
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

// TracingEnabled reports whether spans should be exported
func (c *Config) TracingEnabled() bool {
	return c.OTelEnabled && c.OTelEndpoint != ""
}
