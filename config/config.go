package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	MFDS      MFDSConfig
	Catalog   CatalogConfig
	RateLimit RateLimitConfig
	Product   ProductConfig
	Store     StoreConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MFDSConfig holds the 식품의약품안전처 recipe API configuration.
// APIKey may be empty at startup; recipe endpoints then fail per
// request until it is provided.
type MFDSConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// CatalogConfig bounds the ingredient catalog scan and cache.
type CatalogConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	ChunkSize     int           `mapstructure:"chunk_size"`
	MaxScan       int           `mapstructure:"max_scan"`
	MinNameLength int           `mapstructure:"min_name_length"`
	MaxNameLength int           `mapstructure:"max_name_length"`
}

// RateLimitConfig holds the per-client fixed window settings.
// MaxRequests 0 means auto: 40 in production, 10 elsewhere, so local
// tinkering trips the limiter early enough to be noticed.
type RateLimitConfig struct {
	Window      time.Duration `mapstructure:"window"`
	MaxRequests int           `mapstructure:"max_requests"`
}

// ProductConfig holds the Open Food Facts lookup configuration.
type ProductConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Type     string `mapstructure:"type"` // "memory" or "redis"
	RedisURL string `mapstructure:"redis_url"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/jipbab-note/")

	v.SetEnvPrefix("JIPBAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.RateLimit.MaxRequests == 0 {
		if config.Server.Environment == "production" {
			config.RateLimit.MaxRequests = 40
		} else {
			config.RateLimit.MaxRequests = 10
		}
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Empty-string defaults keep env-only keys visible to Unmarshal.
	v.SetDefault("mfds.api_key", "")
	v.SetDefault("mfds.base_url", "https://openapi.foodsafetykorea.go.kr/api")
	v.SetDefault("mfds.timeout", "4500ms")
	v.SetDefault("mfds.retry_count", 2)
	v.SetDefault("mfds.retry_delay", "250ms")

	v.SetDefault("catalog.ttl", "15m")
	v.SetDefault("catalog.chunk_size", 200)
	v.SetDefault("catalog.max_scan", 1200)
	v.SetDefault("catalog.min_name_length", 2)
	v.SetDefault("catalog.max_name_length", 24)

	v.SetDefault("ratelimit.window", "60s")
	v.SetDefault("ratelimit.max_requests", 0)

	v.SetDefault("product.base_url", "https://world.openfoodfacts.org/api/v2/product")
	v.SetDefault("product.timeout", "5s")

	v.SetDefault("store.type", "memory")
	v.SetDefault("store.redis_url", "")
}

// validate validates the configuration.
func validate(config *Config) error {
	if config.Store.Type != "memory" && config.Store.Type != "redis" {
		return fmt.Errorf("store type must be 'memory' or 'redis', got: %s", config.Store.Type)
	}
	if config.Store.Type == "redis" && config.Store.RedisURL == "" {
		return fmt.Errorf("redis URL is required when store type is 'redis'")
	}
	if config.RateLimit.MaxRequests < 0 {
		return fmt.Errorf("ratelimit max_requests must not be negative")
	}
	if config.Catalog.ChunkSize < 1 || config.Catalog.MaxScan < config.Catalog.ChunkSize {
		return fmt.Errorf("catalog scan bounds are inconsistent")
	}
	return nil
}
