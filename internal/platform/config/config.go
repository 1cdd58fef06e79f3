// Package config loads the service configuration using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 1 << 20

	// DefaultClientTimeout bounds every upstream call.
	DefaultClientTimeout              = 30 * time.Second
	DefaultClientCircuitMaxFailures   = 5
	DefaultClientCircuitHalfOpenLimit = 1

	DefaultTransportMaxIdleConns        = 100
	DefaultTransportMaxIdleConnsPerHost = 10

	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28

	DefaultShopifyAPIVersion  = "2024-01"
	DefaultShopifyOrderTags   = "quote,laser-machine"
	DefaultDiscountPercentage = 10.0

	DefaultCin7Stage           = "New"
	DefaultCin7Probability     = 50.0
	DefaultCin7ReferencePrefix = "WEB-"

	DefaultStoreMaxOpenConns = 10
	DefaultStoreMaxIdleConns = 5
	DefaultProductCacheTTL   = 5 * time.Minute

	// DefaultConfigDir is resolved against the working directory.
	DefaultConfigDir = "configs"
)

const (
	envPrefix = "APP_"
	// envNestingSeparator separates nested keys so single underscores survive.
	envNestingSeparator = "__"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig         `koanf:"app"       validate:"required"`
	Server    ServerConfig      `koanf:"server"    validate:"required"`
	Log       LogConfig         `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig   `koanf:"telemetry"`
	CORS      CORSConfig        `koanf:"cors"`
	Client    ClientConfig      `koanf:"client"    validate:"required"`
	Services  ServicesConfig    `koanf:"services"  validate:"required"`
	Store     StoreConfig       `koanf:"store"     validate:"required"`
	Cache     CacheConfig       `koanf:"cache"`
	Features  map[string]string `koanf:"features"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"         validate:"required"`
	DisplayName string `koanf:"display_name" validate:"required"`
	Version     string `koanf:"version"      validate:"required"`
	Environment string `koanf:"environment"  validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	// RequestTimeout must leave room for both upstream calls.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required,min=1s"`
	MaxRequestSize int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins" validate:"required,min=1"`
}

// ClientConfig contains HTTP client settings shared by all upstreams.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP connection pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig contains the upstream platforms.
type ServicesConfig struct {
	Shopify ShopifyConfig `koanf:"shopify" validate:"required"`
	Cin7    Cin7Config    `koanf:"cin7"    validate:"required"`
}

// ShopifyConfig configures the order-management upstream.
type ShopifyConfig struct {
	Name        string `koanf:"name"         validate:"required"`
	BaseURL     string `koanf:"base_url"     validate:"required,url"`
	AccessToken string `koanf:"access_token" validate:"required"`
	APIVersion  string `koanf:"api_version"  validate:"required"`
	OrderTags   string `koanf:"order_tags"`
	// ResolvePriceRules applies a discount code's real value instead of the default percentage.
	ResolvePriceRules         bool    `koanf:"resolve_price_rules"`
	DefaultDiscountPercentage float64 `koanf:"default_discount_percentage" validate:"gt=0,lte=100"`
}

// Cin7Config configures the inventory upstream.
type Cin7Config struct {
	Name            string  `koanf:"name"             validate:"required"`
	BaseURL         string  `koanf:"base_url"         validate:"required,url"`
	Username        string  `koanf:"username"         validate:"required"`
	APIKey          string  `koanf:"api_key"          validate:"required"`
	Stage           string  `koanf:"stage"            validate:"required"`
	Probability     float64 `koanf:"probability"      validate:"min=0,max=100"`
	ReferencePrefix string  `koanf:"reference_prefix" validate:"required"`
}

// StoreConfig selects the quote store backend.
type StoreConfig struct {
	Driver          string        `koanf:"driver"            validate:"required,oneof=memory sqlite postgres"`
	DSN             string        `koanf:"dsn"               validate:"required_unless=Driver memory"`
	MaxOpenConns    int           `koanf:"max_open_conns"    validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns"    validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

// CacheConfig configures the optional redis product cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	RedisURL   string        `koanf:"redis_url"   validate:"required_if=Enabled true"`
	ProductTTL time.Duration `koanf:"product_ttl" validate:"required_if=Enabled true"`
}

func defaults() map[string]any {
	return map[string]any{
		"app.name":         "quoting-service",
		"app.display_name": "Quoting System API",
		"app.version":      "dev",
		"app.environment":  "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "90s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "75s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quoting.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quoting-service",
		"telemetry.sampling_rate": 1.0,

		"cors.allowed_origins": []string{"*"},

		"client.timeout":                           DefaultClientTimeout.String(),
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.shopify.name":                        "shopify",
		"services.shopify.api_version":                 DefaultShopifyAPIVersion,
		"services.shopify.order_tags":                  DefaultShopifyOrderTags,
		"services.shopify.resolve_price_rules":         false,
		"services.shopify.default_discount_percentage": DefaultDiscountPercentage,

		"services.cin7.name":             "cin7",
		"services.cin7.base_url":         "https://api.cin7.com/api/v1",
		"services.cin7.stage":            DefaultCin7Stage,
		"services.cin7.probability":      DefaultCin7Probability,
		"services.cin7.reference_prefix": DefaultCin7ReferencePrefix,

		"store.driver":            "sqlite",
		"store.dsn":               "quotes.db",
		"store.max_open_conns":    DefaultStoreMaxOpenConns,
		"store.max_idle_conns":    DefaultStoreMaxIdleConns,
		"store.conn_max_lifetime": "30m",
		"store.auto_migrate":      true,

		"cache.enabled":     false,
		"cache.redis_url":   "",
		"cache.product_ttl": DefaultProductCacheTTL.String(),
	}
}

// Load reads configuration from the default configs directory.
func Load(profile string) (*Config, error) {
	return LoadFrom(DefaultConfigDir, profile)
}

// LoadFrom loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix, "__" between nested keys)
//  2. A .env file in the working directory, for variables not already set
//  3. Profile config file ({dir}/{profile}.yaml)
//  4. Base config file ({dir}/base.yaml)
//  5. Default values
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := loadFileIfExists(k, filepath.Join(dir, "base.yaml")); err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		if err := loadFileIfExists(k, filepath.Join(dir, profile+".yaml")); err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envValue maps APP_SERVICES__SHOPIFY__ACCESS_TOKEN to services.shopify.access_token.
// List values are comma separated.
func envValue(name, value string) (string, any) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, envPrefix)), envNestingSeparator, ".")

	if key == "cors.allowed_origins" {
		return key, strings.Split(value, ",")
	}

	return key, value
}

// loadFileIfExists returns nil when path does not exist.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
