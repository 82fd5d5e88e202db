package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
	Responses ResponsesConfig `mapstructure:"responses"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds the menu GraphQL API configuration
type CatalogConfig struct {
	GraphQLURL      string        `mapstructure:"graphql_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	CacheDuration   time.Duration `mapstructure:"cache_duration"`
	FallbackEnabled bool          `mapstructure:"fallback_enabled"`
	FuzzyThreshold  float64       `mapstructure:"fuzzy_threshold"`
}

// CacheConfig holds session cache configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration, in requests per minute
type RateLimitConfig struct {
	PerIP   int `mapstructure:"per_ip"`
	Catalog int `mapstructure:"catalog"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// ResponsesConfig controls reply template selection
type ResponsesConfig struct {
	Randomize bool `mapstructure:"randomize"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/orderbot/")

	// Environment variable settings: server.port -> ORDERBOT_SERVER_PORT
	v.SetEnvPrefix("ORDERBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env if present. Variables already set in the
// environment are never overridden.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.graphql_url", "http://localhost:4000/graphql")
	v.SetDefault("catalog.timeout", "10s")
	v.SetDefault("catalog.cache_duration", "300s")
	v.SetDefault("catalog.fallback_enabled", true)
	v.SetDefault("catalog.fuzzy_threshold", 0.70)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.catalog", 60)

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("responses.randomize", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Catalog.GraphQLURL == "" {
		return fmt.Errorf("catalog GraphQL URL is required (set ORDERBOT_CATALOG_GRAPHQL_URL)")
	}

	if config.Catalog.Timeout <= 0 || config.Catalog.CacheDuration <= 0 {
		return fmt.Errorf("catalog timeout and cache duration must be positive")
	}

	if config.Catalog.FuzzyThreshold <= 0 || config.Catalog.FuzzyThreshold >= 1 {
		return fmt.Errorf("fuzzy threshold must be between 0 and 1, got: %v", config.Catalog.FuzzyThreshold)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}

	if config.RateLimit.PerIP <= 0 || config.RateLimit.Catalog <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}

	return nil
}
