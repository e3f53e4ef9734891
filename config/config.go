package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog backend API configuration
type CatalogConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds matching thresholds. Zero values mean "use the
// built-in defaults"; the knobs exist for tuning, not for routine use.
type MatchingConfig struct {
	MinScore           float64 `mapstructure:"min_score"`
	HighConfidence     float64 `mapstructure:"high_confidence"`
	MediumConfidence   float64 `mapstructure:"medium_confidence"`
	MaxBatchSize       int     `mapstructure:"max_batch_size"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/catifypro/")

	// Environment variable settings
	v.SetEnvPrefix("CATIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"https://*.catifypro.com", "http://localhost:5173"})

	// Catalog backend defaults. The empty api_key default registers the key
	// so the CATIFY_CATALOG_API_KEY env var binds through Unmarshal.
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.base_url", "https://api.catifypro.com")

	// Cache defaults
	v.SetDefault("cache.ttl", "15m")

	// Matching defaults mirror the matcher package's built-ins
	v.SetDefault("matching.min_score", 0.50)
	v.SetDefault("matching.high_confidence", 0.90)
	v.SetDefault("matching.medium_confidence", 0.70)
	v.SetDefault("matching.max_batch_size", 500)
	v.SetDefault("matching.enable_debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.APIKey == "" {
		return fmt.Errorf("catalog API key is required (set CATIFY_CATALOG_API_KEY)")
	}

	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL must not be empty")
	}

	m := config.Matching
	if m.MinScore < 0 || m.MinScore > 1 ||
		m.MediumConfidence < 0 || m.MediumConfidence > 1 ||
		m.HighConfidence < 0 || m.HighConfidence > 1 {
		return fmt.Errorf("matching thresholds must be within [0, 1]")
	}
	if m.MinScore > m.MediumConfidence || m.MediumConfidence > m.HighConfidence {
		return fmt.Errorf("matching thresholds must satisfy min_score <= medium_confidence <= high_confidence")
	}

	return nil
}
