package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jsamuelsen/quoting-service/internal/adapters/clients"
	"github.com/jsamuelsen/quoting-service/internal/domain"
	"github.com/jsamuelsen/quoting-service/internal/platform/config"
	"github.com/jsamuelsen/quoting-service/internal/platform/logging"
)

// referenceLayout is YYYYMMDDHHMMSS.
const referenceLayout = "20060102150405"

// Cin7Auth returns an AuthFunc that sets HTTP basic auth.
func Cin7Auth(username, apiKey string) func(*http.Request) {
	return func(r *http.Request) {
		r.SetBasicAuth(username, apiKey)
	}
}

// Cin7ClientConfig configures a Cin7Client.
type Cin7ClientConfig struct {
	// Client must be built with Cin7Auth and the API base URL.
	Client *clients.Client
	Cin7   config.Cin7Config
	Logger *slog.Logger
	// Now stamps the quote reference. Defaults to time.Now.
	Now func() time.Time
}

// Cin7Client implements ports.InventoryPlatform against the Cin7 Omni API.
type Cin7Client struct {
	BaseAdapter
	stage       string
	probability float64
	prefix      string
	now         func() time.Time
	logger      *slog.Logger
}

// NewCin7Client creates a Cin7Client. Panics if Client is nil.
func NewCin7Client(cfg Cin7ClientConfig) *Cin7Client {
	if cfg.Client == nil {
		panic("Cin7Client: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	stage := cfg.Cin7.Stage
	if stage == "" {
		stage = config.DefaultCin7Stage
	}

	prefix := cfg.Cin7.ReferencePrefix
	if prefix == "" {
		prefix = config.DefaultCin7ReferencePrefix
	}

	return &Cin7Client{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		stage:       stage,
		probability: cfg.Cin7.Probability,
		prefix:      prefix,
		now:         now,
		logger:      logger,
	}
}

type cin7LineItem struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
}

type cin7Quote struct {
	FirstName          string         `json:"firstName"`
	LastName           string         `json:"lastName"`
	Company            string         `json:"company"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	DeliveryFirstName  string         `json:"deliveryFirstName"`
	DeliveryLastName   string         `json:"deliveryLastName"`
	DeliveryCompany    string         `json:"deliveryCompany"`
	DeliveryAddress1   string         `json:"deliveryAddress1"`
	DeliveryAddress2   string         `json:"deliveryAddress2"`
	DeliveryCity       string         `json:"deliveryCity"`
	DeliveryState      string         `json:"deliveryState"`
	DeliveryPostalCode string         `json:"deliveryPostalCode"`
	DeliveryCountry    string         `json:"deliveryCountry"`
	Stage              string         `json:"stage"`
	Probability        float64        `json:"probability"`
	LineItems          []cin7LineItem `json:"lineItems"`
	Reference          string         `json:"reference"`
}

// cin7Result is one element of the /Quotes response array.
type cin7Result struct {
	ID      json.Number `json:"id"`
	Code    string      `json:"code"`
	Success *bool       `json:"success"`
	Errors  []string    `json:"errors"`
}

// CreateQuote creates a quote for req and returns its identifiers.
func (c *Cin7Client) CreateQuote(ctx context.Context, req *domain.QuoteRequest) (*domain.UpstreamQuote, error) {
	const op = "create quote"

	quote := c.buildQuote(req)

	c.logger.Log(ctx, logging.LevelTrace, "sending quote",
		slog.String("reference", quote.Reference),
		slog.Int("line_items", len(quote.LineItems)),
	)

	body, err := c.Post(ctx, "/Quotes", []cin7Quote{quote}, op)
	if err != nil {
		return nil, err
	}

	raw, err := Decode[json.RawMessage](&c.BaseAdapter, body, op)
	if err != nil {
		return nil, err
	}

	result, err := c.firstResult(*raw, op)
	if err != nil {
		return nil, err
	}

	reference := result.Code
	if reference == "" {
		reference = quote.Reference
	}

	return &domain.UpstreamQuote{ID: result.ID.String(), Reference: reference}, nil
}

func (c *Cin7Client) firstResult(raw json.RawMessage, op string) (*cin7Result, error) {
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domain.WrapIntegrationError(c.ServiceName(), op, errors.New("response is not an array"))
	}

	var results []cin7Result
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, domain.WrapIntegrationError(c.ServiceName(), op, err)
	}

	if len(results) == 0 {
		return nil, domain.WrapIntegrationError(c.ServiceName(), op, errors.New("response array is empty"))
	}

	first := &results[0]

	if first.Success != nil && !*first.Success {
		reason := "upstream reported failure"
		if len(first.Errors) > 0 {
			reason = strings.Join(first.Errors, "; ")
		}

		return nil, domain.WrapIntegrationError(c.ServiceName(), op, errors.New(reason))
	}

	if first.ID.String() == "" {
		return nil, domain.WrapIntegrationError(c.ServiceName(), op, errors.New("response missing quote id"))
	}

	return first, nil
}

func (c *Cin7Client) buildQuote(req *domain.QuoteRequest) cin7Quote {
	items := make([]cin7LineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		var price float64
		if item.UnitPrice != nil {
			price = item.UnitPrice.InexactFloat64()
		}

		items = append(items, cin7LineItem{
			Code:      item.Code,
			Name:      item.Name,
			Qty:       float64(item.Quantity),
			UnitPrice: price,
		})
	}

	cust := req.Customer

	return cin7Quote{
		FirstName:          cust.FirstName,
		LastName:           cust.LastName,
		Company:            cust.BusinessName,
		Email:              cust.Email,
		Phone:              deref(cust.Phone),
		DeliveryFirstName:  cust.FirstName,
		DeliveryLastName:   cust.LastName,
		DeliveryCompany:    cust.BusinessName,
		DeliveryAddress1:   cust.AddressLine1,
		DeliveryAddress2:   deref(cust.AddressLine2),
		DeliveryCity:       cust.City,
		DeliveryState:      cust.State,
		DeliveryPostalCode: cust.PostalCode,
		DeliveryCountry:    cust.Country,
		Stage:              c.stage,
		Probability:        c.probability,
		LineItems:          items,
		Reference:          c.prefix + c.now().Format(referenceLayout),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
