// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
	HTTPAddr      string        `mapstructure:"HTTP_ADDR"`
	DBURL         string        `mapstructure:"DB_URL"`
	GithubToken   string        `mapstructure:"GITHUB_TOKEN"`
	GithubAPIURL  string        `mapstructure:"GITHUB_API_URL"`
	GithubTimeout time.Duration `mapstructure:"GITHUB_TIMEOUT"`
}

// LoadConfig reads configuration from file and/or environment variables.
// The token is optional (anonymous access covers public repositories) and
// GITHUB_API_URL is only needed to point at a non-default API root.
func LoadConfig() (*Config, error) {
	// Set default values. Every key gets one so that viper picks the key
	// up from the environment even when no .env file is present.
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("DB_URL", "")
	viper.SetDefault("GITHUB_TOKEN", "")
	viper.SetDefault("GITHUB_API_URL", "")
	viper.SetDefault("GITHUB_TIMEOUT", "15s")

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.GithubTimeout <= 0 {
		return nil, errors.New("GITHUB_TIMEOUT must be a positive duration (e.g. 15s)")
	}

	return &cfg, nil
}
