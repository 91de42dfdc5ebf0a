package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete gateway configuration, loadable from environment
// variables (STOREFRONT_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string `default:"0.0.0.0:8080" usage:"Gateway listen address"`
	BackendURL   string `usage:"Ordering backend base URL (STOREFRONT_BACKEND_URL)" flag:"backend-url"`
	BackendToken string `usage:"Bearer token for the ordering backend" flag:"backend-token"`
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Graceful     GracefulConfig
}

// RedisConfig controls the session state store.
type RedisConfig struct {
	Addr       string        `default:"localhost:6379" usage:"Redis address" flag:"redis-addr"`
	Password   string        `default:"" usage:"Redis password" flag:"redis-password"`
	DB         int           `default:"0" usage:"Redis database number" flag:"redis-db"`
	SessionTTL time.Duration `default:"24h" usage:"Session state retention" flag:"session-ttl"`
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STOREFRONT",
		Files:     []string{"config.yaml", "/etc/storefront/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.BackendURL == "" {
		return nil, errors.New("backend URL is required: set STOREFRONT_BACKEND_URL or BACKEND_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like PORT and REDIS_URL to the
// gateway's STOREFRONT_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.BackendURL == "" {
		if v := os.Getenv("BACKEND_URL"); v != "" {
			c.BackendURL = v
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" && c.Redis.Addr == "localhost:6379" {
		c.Redis.Addr = v
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
