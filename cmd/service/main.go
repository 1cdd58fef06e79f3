// Package main is the entry point for the quoting service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/quoting-service/internal/adapters/cache"
	"github.com/jsamuelsen/quoting-service/internal/adapters/clients"
	"github.com/jsamuelsen/quoting-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quoting-service/internal/adapters/flags"
	"github.com/jsamuelsen/quoting-service/internal/adapters/http"
	"github.com/jsamuelsen/quoting-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoting-service/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quoting-service/internal/adapters/storage/sqlstore"
	"github.com/jsamuelsen/quoting-service/internal/app"
	"github.com/jsamuelsen/quoting-service/internal/platform/config"
	"github.com/jsamuelsen/quoting-service/internal/platform/logging"
	"github.com/jsamuelsen/quoting-service/internal/platform/metrics"
	"github.com/jsamuelsen/quoting-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quoting-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

// closer is satisfied by the store and cache adapters that hold connections.
type closer interface {
	Close() error
}

// quoteStore is a store that can also report its health.
type quoteStore interface {
	ports.QuoteStore
	ports.HealthChecker
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("store", cfg.Store.Driver),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()

	// 5. Open the quote store
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}

	defer closeQuietly(logger, "store", store)

	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	// 6. Create the upstream clients (ACL pattern)
	shopify, cin7, err := newPlatforms(cfg, logger)
	if err != nil {
		return err
	}

	// 7. Optional product cache
	var productCache ports.Cache

	if cfg.Cache.Enabled {
		redisCache, cacheErr := cache.NewRedis(ctx, cfg.Cache.RedisURL)
		if cacheErr != nil {
			return fmt.Errorf("connecting to cache: %w", cacheErr)
		}

		defer closeQuietly(logger, "cache", redisCache)

		if err := healthRegistry.Register(redisCache); err != nil {
			return fmt.Errorf("registering cache health check: %w", err)
		}

		productCache = redisCache
	}

	// 8. Create application services
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Store:     store,
		Orders:    shopify,
		Inventory: cin7,
		Flags:     flags.NewStatic(cfg.Features),
		Metrics:   metrics.NewQuoteMetrics(),
		Logger:    logger,
	})

	productService := app.NewProductService(app.ProductServiceConfig{
		Orders:   shopify,
		Cache:    productCache,
		CacheTTL: cfg.Cache.ProductTTL,
		Logger:   logger,
	})

	// 9. Create handlers
	healthHandler := handlers.NewHealthHandler(handlers.HealthHandlerConfig{
		Registry:    healthRegistry,
		BuildInfo:   handlers.NewBuildInfo(Version, Commit, BuildTime),
		ServiceName: cfg.App.DisplayName,
	})

	// 10. Create HTTP server and router
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		ServiceName:    cfg.App.Name,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		HealthHandler:  healthHandler,
		QuoteHandler:   handlers.NewQuoteHandler(quoteService),
		ProductHandler: handlers.NewProductHandler(productService),
		Timeout:        cfg.Server.RequestTimeout,
	})

	// 11. Start server (non-blocking)
	serverErr := server.Start()

	// 12. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

func openStore(ctx context.Context, cfg config.StoreConfig) (quoteStore, error) {
	if cfg.Driver == "memory" {
		return memory.NewQuoteStore(), nil
	}

	store, err := sqlstore.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Driver, err)
	}

	return store, nil
}

func newPlatforms(cfg *config.Config, logger *slog.Logger) (*acl.ShopifyClient, *acl.Cin7Client, error) {
	shopifyCfg := cfg.Services.Shopify
	cin7Cfg := cfg.Services.Cin7

	shopifyHTTP, err := clients.New(&clients.Config{
		BaseURL:     shopifyCfg.BaseURL,
		ServiceName: shopifyCfg.Name,
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    acl.ShopifyAuth(shopifyCfg.AccessToken),
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating shopify client: %w", err)
	}

	cin7HTTP, err := clients.New(&clients.Config{
		BaseURL:     cin7Cfg.BaseURL,
		ServiceName: cin7Cfg.Name,
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    acl.Cin7Auth(cin7Cfg.Username, cin7Cfg.APIKey),
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating cin7 client: %w", err)
	}

	shopify := acl.NewShopifyClient(acl.ShopifyClientConfig{
		Client:  shopifyHTTP,
		Shopify: shopifyCfg,
		Logger:  logger,
	})

	cin7 := acl.NewCin7Client(acl.Cin7ClientConfig{
		Client: cin7HTTP,
		Cin7:   cin7Cfg,
		Logger: logger,
	})

	return shopify, cin7, nil
}

func closeQuietly(logger *slog.Logger, name string, v any) {
	c, ok := v.(closer)
	if !ok {
		return
	}

	if err := c.Close(); err != nil {
		logger.Error("close failed", slog.String("component", name), slog.Any("error", err))
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}

		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
