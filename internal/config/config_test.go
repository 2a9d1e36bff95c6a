package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	content := `
server:
  port: ":9090"
backend:
  baseURL: "http://localhost:3000"
  requestTimeoutMillis: 5000
  rateLimitPerSecond: 10
  rateLimitBurst: 5
positions:
  defaultCurrency: "EUR"
cache:
  cacheTimeMinutes: 3
currency:
  rates:
    eur: "0.9"
logging:
  level: "debug"
wallets:
  file: "data/wallets.txt"
  prewarm: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Backend.BaseURL)
	assert.Equal(t, int64(5000), cfg.Backend.RequestTimeoutMillis)
	assert.Equal(t, "EUR", cfg.Positions.DefaultCurrency)
	assert.Equal(t, 3, cfg.Cache.CacheTimeMinutes)
	assert.Equal(t, "0.9", cfg.Currency.Rates["eur"])
	assert.True(t, cfg.Wallets.Prewarm)

	// Unset values fall back to defaults.
	assert.Equal(t, 10, cfg.Cache.CleanupIntervalMinutes)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, int64(10000), cfg.Backend.RequestTimeoutMillis)
	assert.Equal(t, "USD", cfg.Positions.DefaultCurrency)
	assert.Equal(t, 5, cfg.Cache.CacheTimeMinutes)
	assert.Equal(t, "data/wallets.txt", cfg.Wallets.File)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
