package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Positions PositionsConfig `yaml:"positions"`
	Cache     CacheConfig     `yaml:"cache"`
	Currency  CurrencyConfig  `yaml:"currency"`
	Logging   LoggingConfig   `yaml:"logging"`
	Wallets   WalletsConfig   `yaml:"wallets"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// BackendConfig holds the configuration for the backend positions API client.
type BackendConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	RateLimitBurst       int     `yaml:"rateLimitBurst"`
}

// PositionsConfig holds configuration for the positions pipeline.
type PositionsConfig struct {
	DefaultCurrency string `yaml:"defaultCurrency"`
}

// CacheConfig holds configuration for the positions store cache.
type CacheConfig struct {
	CacheTimeMinutes       int `yaml:"cacheTimeMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// CurrencyConfig holds the static quote-currency conversion rates.
type CurrencyConfig struct {
	Rates map[string]string `yaml:"rates"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// WalletsConfig holds configuration for the tracked-wallet prewarm.
type WalletsConfig struct {
	File    string `yaml:"file"`
	Prewarm bool   `yaml:"prewarm"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
		logrus.Infof("Server port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Backend.RequestTimeoutMillis == 0 {
		cfg.Backend.RequestTimeoutMillis = 10000
		logrus.Infof("Backend.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Backend.RequestTimeoutMillis)
	}
	if cfg.Positions.DefaultCurrency == "" {
		cfg.Positions.DefaultCurrency = "USD"
		logrus.Infof("Positions.DefaultCurrency not set, defaulting to %s", cfg.Positions.DefaultCurrency)
	}
	if cfg.Cache.CacheTimeMinutes == 0 {
		cfg.Cache.CacheTimeMinutes = 5
		logrus.Infof("Cache.CacheTimeMinutes not set, defaulting to %d minutes", cfg.Cache.CacheTimeMinutes)
	}
	if cfg.Cache.CleanupIntervalMinutes == 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
		logrus.Infof("Cache.CleanupIntervalMinutes not set, defaulting to %d minutes", cfg.Cache.CleanupIntervalMinutes)
	}
	if cfg.Wallets.File == "" {
		cfg.Wallets.File = "data/wallets.txt"
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}
