package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	FoodAPI FoodAPIConfig
	Cache   CacheConfig
	Import  ImportConfig
	Store   StoreConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FoodAPIConfig holds nutrition provider configuration
type FoodAPIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds profile cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ImportConfig holds import pipeline configuration
type ImportConfig struct {
	EnrichConcurrency int   `mapstructure:"enrich_concurrency"`
	MaxFileSize       int64 `mapstructure:"max_file_size"`
}

// StoreConfig holds meal store configuration
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutritrack/")

	v.SetEnvPrefix("NUTRITRACK")
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

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("foodapi.api_key", "")
	v.SetDefault("foodapi.base_url", "https://api.nal.usda.gov/fdc")

	v.SetDefault("cache.ttl", "720h") // 30 days

	v.SetDefault("import.enrich_concurrency", 4)
	v.SetDefault("import.max_file_size", 5*1024*1024) // 5MB

	v.SetDefault("store.path", "nutritrack.db")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.FoodAPI.APIKey == "" {
		return fmt.Errorf("food API key is required (set NUTRITRACK_FOODAPI_API_KEY)")
	}

	if config.Import.EnrichConcurrency < 1 {
		return fmt.Errorf("import.enrich_concurrency must be at least 1, got: %d", config.Import.EnrichConcurrency)
	}

	if config.Import.MaxFileSize < 1 {
		return fmt.Errorf("import.max_file_size must be positive, got: %d", config.Import.MaxFileSize)
	}

	if config.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}

	return nil
}
