package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "quoting-service", cfg.App.Name)
	assert.Equal(t, "Quoting System API", cfg.App.DisplayName)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, 75*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultClientTimeout, cfg.Client.Timeout)
	assert.Equal(t, DefaultClientCircuitMaxFailures, cfg.Client.CircuitBreaker.MaxFailures)
	assert.Equal(t, 90*time.Second, cfg.Client.Transport.IdleConnTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_UpstreamDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultShopifyAPIVersion, cfg.Services.Shopify.APIVersion)
	assert.Equal(t, DefaultShopifyOrderTags, cfg.Services.Shopify.OrderTags)
	assert.InDelta(t, DefaultDiscountPercentage, cfg.Services.Shopify.DefaultDiscountPercentage, 0.0001)
	assert.False(t, cfg.Services.Shopify.ResolvePriceRules)

	assert.Equal(t, DefaultCin7Stage, cfg.Services.Cin7.Stage)
	assert.InDelta(t, DefaultCin7Probability, cfg.Services.Cin7.Probability, 0.0001)
	assert.Equal(t, DefaultCin7ReferencePrefix, cfg.Services.Cin7.ReferencePrefix)
}

func TestLoad_StoreAndCacheDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "quotes.db", cfg.Store.DSN)
	assert.True(t, cfg.Store.AutoMigrate)
	assert.Equal(t, 30*time.Minute, cfg.Store.ConnMaxLifetime)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, DefaultProductCacheTTL, cfg.Cache.ProductTTL)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER__PORT", "9090")
	t.Setenv("APP_LOG__LEVEL", "warn")
	t.Setenv("APP_SERVICES__SHOPIFY__ACCESS_TOKEN", "shpat_test")
	t.Setenv("APP_SERVICES__CIN7__API_KEY", "cin7-key")
	t.Setenv("APP_STORE__MAX_OPEN_CONNS", "25")
	t.Setenv("APP_CORS__ALLOWED_ORIGINS", "https://shop.example.com,https://admin.example.com")
	t.Setenv("APP_FEATURES__QUOTE_CONCURRENT_FANOUT", "true")

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "shpat_test", cfg.Services.Shopify.AccessToken)
	assert.Equal(t, "cin7-key", cfg.Services.Cin7.APIKey)
	assert.Equal(t, 25, cfg.Store.MaxOpenConns)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "true", cfg.Features["quote_concurrent_fanout"])
}

func TestLoad_ProfileOverridesBase(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "base.yaml", `
log:
  format: text
services:
  shopify:
    base_url: https://base.myshopify.com
`)
	writeYAML(t, dir, "qa.yaml", `
app:
  environment: qa
services:
  shopify:
    base_url: https://qa.myshopify.com
store:
  driver: memory
`)

	cfg, err := LoadFrom(dir, "qa")
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "qa", cfg.App.Environment)
	assert.Equal(t, "https://qa.myshopify.com", cfg.Services.Shopify.BaseURL)
	assert.Equal(t, "memory", cfg.Store.Driver)
}

func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "quoting-service", cfg.App.Name)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "base.yaml", "server: [unclosed")

	_, err := LoadFrom(dir, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

func TestEnvValue(t *testing.T) {
	key, value := envValue("APP_SERVICES__SHOPIFY__API_VERSION", "2024-04")
	assert.Equal(t, "services.shopify.api_version", key)
	assert.Equal(t, "2024-04", value)

	key, value = envValue("APP_CORS__ALLOWED_ORIGINS", "a,b")
	assert.Equal(t, "cors.allowed_origins", key)
	assert.Equal(t, []string{"a", "b"}, value)
}
