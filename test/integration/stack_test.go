//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quoting-service/internal/adapters/clients"
	"github.com/jsamuelsen/quoting-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quoting-service/internal/adapters/flags"
	httpadapter "github.com/jsamuelsen/quoting-service/internal/adapters/http"
	"github.com/jsamuelsen/quoting-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoting-service/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quoting-service/internal/app"
	"github.com/jsamuelsen/quoting-service/internal/platform/config"
	"github.com/jsamuelsen/quoting-service/internal/platform/metrics"
	"github.com/jsamuelsen/quoting-service/internal/ports"
)

const shopifyAPIPrefix = "/admin/api/2024-01"

// upstream is a scripted fake of one platform API.
type upstream struct {
	server *httptest.Server
	status atomic.Int32
	calls  atomic.Int32

	mu   sync.Mutex
	last map[string]any
}

func newUpstream(success func(w http.ResponseWriter, r *http.Request)) *upstream {
	u := &upstream{}

	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			u.calls.Add(1)
			u.record(r)
		}

		w.Header().Set("Content-Type", "application/json")

		if status := int(u.status.Load()); status != 0 {
			w.WriteHeader(status)
			_, _ = fmt.Fprintf(w, `{"errors":%q}`, http.StatusText(status))

			return
		}

		success(w, r)
	}))

	return u
}

func (u *upstream) record(r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return
	}

	var body any
	if json.Unmarshal(raw, &body) != nil {
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	switch v := body.(type) {
	case map[string]any:
		u.last = v
	case []any:
		if len(v) > 0 {
			u.last, _ = v[0].(map[string]any)
		}
	}
}

func (u *upstream) lastBody() map[string]any {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.last
}

// failWith makes every call answer status. Zero restores success.
func (u *upstream) failWith(status int) {
	u.status.Store(int32(status))
}

func shopifySuccess(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == shopifyAPIPrefix+"/draft_orders.json":
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"draft_order":{"id":1001,"name":"#D1001","status":"open","invoice_url":"https://shop.example.com/invoices/1001"}}`))
	case strings.HasPrefix(r.URL.Path, shopifyAPIPrefix+"/discount_codes.json"):
		_, _ = w.Write([]byte(`{"discount_codes":[]}`))
	case strings.HasPrefix(r.URL.Path, shopifyAPIPrefix+"/products/"):
		_, _ = w.Write([]byte(`{"product":{"id":7001,"title":"Standing Desk","handle":"standing-desk","variants":[{"id":1,"title":"Default","sku":"DESK-1","price":"250.00"}]}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":"Not Found"}`))
	}
}

func cin7Success(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/Quotes" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	_, _ = w.Write([]byte(`[{"id":55,"code":"","success":true}]`))
}

// stack is the full service running in-process against fake platforms.
type stack struct {
	shopify *upstream
	cin7    *upstream
	api     *httptest.Server
	store   ports.QuoteStore
	flags   *flags.Static
}

type quoteStore interface {
	ports.QuoteStore
	ports.HealthChecker
}

// newStack wires the service the same way cmd/service does. A nil store
// selects the in-memory backend.
func newStack(store quoteStore) (*stack, error) {
	gin.SetMode(gin.TestMode)

	if store == nil {
		store = memory.NewQuoteStore()
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := &stack{
		shopify: newUpstream(shopifySuccess),
		cin7:    newUpstream(cin7Success),
		store:   store,
		flags:   flags.NewStatic(nil),
	}

	clientCfg := func(name, baseURL string, auth func(*http.Request)) *clients.Config {
		return &clients.Config{
			BaseURL:     baseURL,
			ServiceName: name,
			Timeout:     5 * time.Second,
			Circuit: config.CircuitBreakerConfig{
				MaxFailures:   50,
				Timeout:       time.Second,
				HalfOpenLimit: 1,
			},
			AuthFunc: auth,
			Logger:   logger,
		}
	}

	shopifyHTTP, err := clients.New(clientCfg("shopify", s.shopify.server.URL, acl.ShopifyAuth("shpat_test")))
	if err != nil {
		s.Close()
		return nil, err
	}

	cin7HTTP, err := clients.New(clientCfg("cin7", s.cin7.server.URL, acl.Cin7Auth("acme", "key")))
	if err != nil {
		s.Close()
		return nil, err
	}

	shopify := acl.NewShopifyClient(acl.ShopifyClientConfig{
		Client: shopifyHTTP,
		Shopify: config.ShopifyConfig{
			Name:                      "shopify",
			BaseURL:                   s.shopify.server.URL,
			APIVersion:                "2024-01",
			DefaultDiscountPercentage: config.DefaultDiscountPercentage,
		},
		Logger: logger,
	})

	cin7 := acl.NewCin7Client(acl.Cin7ClientConfig{
		Client: cin7HTTP,
		Cin7: config.Cin7Config{
			Name:            "cin7",
			BaseURL:         s.cin7.server.URL,
			Probability:     config.DefaultCin7Probability,
			ReferencePrefix: config.DefaultCin7ReferencePrefix,
		},
		Logger: logger,
	})

	registry := ports.NewHealthRegistry()
	if err := registry.Register(store); err != nil {
		s.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()

	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Store:     store,
		Orders:    shopify,
		Inventory: cin7,
		Flags:     s.flags,
		Metrics:   metrics.NewQuoteMetricsWithRegisterer(reg),
		Logger:    logger,
	})

	products := app.NewProductService(app.ProductServiceConfig{Orders: shopify, Logger: logger})

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName: "quoting-service",
		HealthHandler: handlers.NewHealthHandler(handlers.HealthHandlerConfig{
			Registry:    registry,
			BuildInfo:   handlers.NewBuildInfo("test", "none", "now"),
			ServiceName: "Quoting System API",
			Gatherer:    reg,
		}),
		QuoteHandler:   handlers.NewQuoteHandler(quotes),
		ProductHandler: handlers.NewProductHandler(products),
		Timeout:        10 * time.Second,
	})

	s.api = httptest.NewServer(engine)

	return s, nil
}

// Close stops the API and both fakes.
func (s *stack) Close() {
	if s.api != nil {
		s.api.Close()
	}

	s.shopify.server.Close()
	s.cin7.server.Close()
}

func quoteRequestBody(code string, qty int) string {
	return fmt.Sprintf(`{
		"product_id": "7001",
		"product_handle": "standing-desk",
		"product_title": "Standing Desk",
		"line_items": [{"code": %q, "name": "Standing Desk", "qty": %d, "unit_price": "250.00"}],
		"customer": {
			"first_name": "Grace", "last_name": "Hopper", "email": "grace@example.com",
			"business_name": "Hopper Compilers", "phone": "+61 2 5550 1234",
			"address_line1": "1 Harbour Rd", "city": "Sydney", "state": "NSW", "postal_code": "2000"
		}
	}`, code, qty)
}

func (s *stack) post(ctx context.Context, path, body string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.api.URL+path, strings.NewReader(body))
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	return s.do(req)
}

func (s *stack) get(ctx context.Context, path string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.api.URL+path, nil)
	if err != nil {
		return nil, nil, err
	}

	return s.do(req)
}

func (s *stack) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := s.api.Client().Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	return resp, body, err
}
