package benchmark

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quoting-service/internal/adapters/flags"
	httpadapter "github.com/jsamuelsen/quoting-service/internal/adapters/http"
	"github.com/jsamuelsen/quoting-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoting-service/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quoting-service/internal/app"
	"github.com/jsamuelsen/quoting-service/internal/domain"
	"github.com/jsamuelsen/quoting-service/internal/platform/logging"
	"github.com/jsamuelsen/quoting-service/internal/platform/metrics"
	"github.com/jsamuelsen/quoting-service/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

const quoteBody = `{
	"product_id": "7001",
	"product_handle": "standing-desk",
	"product_title": "Standing Desk",
	"line_items": [{"code": "DESK-1", "name": "Standing Desk", "qty": 2, "unit_price": "250.00"}],
	"customer": {
		"first_name": "Grace", "last_name": "Hopper", "email": "grace@example.com",
		"business_name": "Hopper Compilers", "address_line1": "1 Harbour Rd",
		"city": "Sydney", "state": "NSW", "postal_code": "2000"
	}
}`

// stubPlatforms answers both upstream ports instantly.
type stubPlatforms struct{}

func (stubPlatforms) FetchProduct(_ context.Context, id string) (*domain.Product, error) {
	return &domain.Product{ID: id, Title: "Standing Desk"}, nil
}

func (stubPlatforms) ValidateDiscountCode(context.Context, string) []domain.DiscountDescriptor {
	return nil
}

func (stubPlatforms) CreateDraftOrder(context.Context, *domain.QuoteRequest) (*domain.DraftOrder, error) {
	return &domain.DraftOrder{ID: "1001"}, nil
}

func (stubPlatforms) CreateQuote(context.Context, *domain.QuoteRequest) (*domain.UpstreamQuote, error) {
	return &domain.UpstreamQuote{ID: "55"}, nil
}

func newQuoteService(concurrent bool) *app.QuoteService {
	ff := flags.NewStatic(nil)
	if concurrent {
		ff.Set(ports.FlagConcurrentFanOut, "true")
	}

	return app.NewQuoteService(app.QuoteServiceConfig{
		Store:     memory.NewQuoteStore(),
		Orders:    stubPlatforms{},
		Inventory: stubPlatforms{},
		Flags:     ff,
		Metrics:   metrics.NewQuoteMetricsWithRegisterer(prometheus.NewRegistry()),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func sampleRequest() *domain.QuoteRequest {
	return &domain.QuoteRequest{
		ProductID:     "7001",
		ProductHandle: "standing-desk",
		ProductTitle:  "Standing Desk",
		LineItems:     []domain.LineItem{{Code: "DESK-1", Name: "Standing Desk", Quantity: 2}},
		Customer: domain.Customer{
			FirstName:    "Grace",
			LastName:     "Hopper",
			Email:        "grace@example.com",
			BusinessName: "Hopper Compilers",
			AddressLine1: "1 Harbour Rd",
			City:         "Sydney",
			State:        "NSW",
			PostalCode:   "2000",
			Country:      domain.DefaultCountry,
		},
	}
}

// BenchmarkCreateQuote_Sequential measures the orchestration overhead with
// the two upstream calls made one after the other.
func BenchmarkCreateQuote_Sequential(b *testing.B) {
	svc := newQuoteService(false)
	req := sampleRequest()
	ctx := context.Background()

	b.ReportAllocs()

	for b.Loop() {
		if _, err := svc.CreateQuote(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCreateQuote_Concurrent measures the errgroup fan-out.
func BenchmarkCreateQuote_Concurrent(b *testing.B) {
	svc := newQuoteService(true)
	req := sampleRequest()
	ctx := context.Background()

	b.ReportAllocs()

	for b.Loop() {
		if _, err := svc.CreateQuote(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}

func newRouter() *gin.Engine {
	logging.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	registry := ports.NewHealthRegistry()
	_ = registry.Register(memory.NewQuoteStore())

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName: "quoting-service",
		HealthHandler: handlers.NewHealthHandler(handlers.HealthHandlerConfig{
			Registry:  registry,
			BuildInfo: handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z"),
			Gatherer:  prometheus.NewRegistry(),
		}),
		QuoteHandler: handlers.NewQuoteHandler(newQuoteService(false)),
	})

	return engine
}

// BenchmarkPostQuote_FullChain measures binding, validation and the whole
// middleware chain on POST /api/quotes.
func BenchmarkPostQuote_FullChain(b *testing.B) {
	router := newRouter()

	b.ReportAllocs()

	for b.Loop() {
		req := httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(quoteBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
		}
	}
}

// BenchmarkLiveness is the critical path for Kubernetes probes.
func BenchmarkLiveness(b *testing.B) {
	router := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

// BenchmarkReadiness includes running the store health check.
func BenchmarkReadiness(b *testing.B) {
	router := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
