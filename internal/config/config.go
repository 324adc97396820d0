package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/aiven-clouds-proxy/internal/clouds/upstream"
)

var validate = validator.New()

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// Upstream cloud listing endpoint and outbound call limits.
	UpstreamURL        string        `validate:"required,url"`
	UpstreamTimeout    time.Duration `validate:"gt=0s"`
	UpstreamMaxRetries int           `validate:"min=0,max=10"`

	// Cache sizing.
	CacheTTL        time.Duration `validate:"gt=0s"`
	CacheMaxEntries int           `validate:"min=1"`

	// The only browser origin allowed to call the API.
	CORSOrigin string `validate:"required,url"`

	// WarmInterval controls how often the cache warmer runs (0 = disabled).
	WarmInterval time.Duration `validate:"gte=0s"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("config: no .env file loaded: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8000")
	cfg.UpstreamURL = getenvDefault("UPSTREAM_URL", upstream.DefaultURL)
	cfg.UpstreamMaxRetries = getenvInt("UPSTREAM_MAX_RETRIES", 2)
	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", 1024)
	cfg.CORSOrigin = getenvDefault("CORS_ORIGIN", "http://localhost:3000")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "text")

	var err error
	if cfg.UpstreamTimeout, err = getenvDuration("UPSTREAM_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.WarmInterval, err = getenvDuration("WARM_INTERVAL", "0"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
