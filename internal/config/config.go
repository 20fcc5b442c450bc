// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is prepended to every environment variable read by LoadConfig.
const EnvPrefix = "CURRENCYAPP"

// Config holds the complete application configuration.
type Config struct {
	API     APIConfig
	Cache   CacheConfig
	Console ConsoleConfig
	Log     LogConfig
}

// APIConfig holds settings for the currencyapi.net rate endpoint.
type APIConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	Key          string `mapstructure:"key"`
	BaseCurrency string `mapstructure:"base_currency"`
	Output       string `mapstructure:"output"`
	TimeoutSec   int    `mapstructure:"timeout_sec"`
}

// CacheConfig holds settings for the local rate cache file.
type CacheConfig struct {
	File            string `mapstructure:"file"`
	DurationMinutes int    `mapstructure:"duration_minutes"`
}

// ConsoleConfig holds settings for the interactive menus.
type ConsoleConfig struct {
	ShowRate bool `mapstructure:"show_rate"` // print the rate used below each result
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"` // "stderr", "stdout" or a file path.
}

// Duration returns the cache freshness window.
func (c CacheConfig) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}

// LoadConfig reads configuration from an optional .env file, config files,
// environment variables and defaults.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	return Load(viper.New(), ".", "./config")
}

// Load fills a Config from v, searching configPaths for config.yaml.
func Load(v *viper.Viper, configPaths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the key variable of earlier releases keeps working
	_ = v.BindEnv("api.key", EnvPrefix+"_API_KEY", "CURRENCY_API_KEY")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://currencyapi.net/api/v1/rates")
	v.SetDefault("api.key", "")
	v.SetDefault("api.base_currency", "USD")
	v.SetDefault("api.output", "JSON")
	v.SetDefault("api.timeout_sec", 10)
	v.SetDefault("cache.file", "currencyCache.json")
	v.SetDefault("cache.duration_minutes", 1440)
	v.SetDefault("console.show_rate", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.output", "stderr")
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	}
	if !isCurrencyCode(c.API.BaseCurrency) {
		errs = append(errs, fmt.Errorf("api.base_currency must be a 3-letter currency code, got %q", c.API.BaseCurrency))
	}
	if !strings.EqualFold(c.API.Output, "JSON") {
		errs = append(errs, fmt.Errorf("api.output must be JSON, got %q", c.API.Output))
	}
	if c.API.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout_sec must be positive, got %d", c.API.TimeoutSec))
	}

	if c.Cache.File == "" {
		errs = append(errs, fmt.Errorf("cache.file is required"))
	}
	if c.Cache.DurationMinutes <= 0 {
		errs = append(errs, fmt.Errorf("cache.duration_minutes must be positive, got %d", c.Cache.DurationMinutes))
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Output == "" {
		errs = append(errs, fmt.Errorf("log.output is required"))
	}

	return errors.Join(errs...)
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
