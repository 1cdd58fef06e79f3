package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoting-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoting-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoting-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 60 * time.Second

// RouterConfig contains the handlers and settings for the router.
type RouterConfig struct {
	// ServiceName names the server spans.
	ServiceName string

	// AllowedOrigins feeds the CORS middleware. Empty means "*".
	AllowedOrigins []string

	HealthHandler  *handlers.HealthHandler
	QuoteHandler   *handlers.QuoteHandler
	ProductHandler *handlers.ProductHandler

	// Timeout bounds each /api request. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing and metrics
//  5. Logging (skips /-/ probes)
//  6. CORS
//
// Route groups:
//   - /-/: probes, build info and metrics, no timeout
//   - /api: the quoting API, with the request timeout
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(
		middleware.Logging(),
		middleware.CORS(origins),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/api")
	api.Use(middleware.Timeout(cfg.Timeout))

	setupAPIRoutes(api, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.HealthHandler != nil {
		rg.GET("/health", cfg.HealthHandler.Health)
	}

	if cfg.ProductHandler != nil {
		cfg.ProductHandler.RegisterProductRoutes(rg)
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}
}
