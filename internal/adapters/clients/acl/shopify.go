package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jsamuelsen/quoting-service/internal/adapters/clients"
	"github.com/jsamuelsen/quoting-service/internal/domain"
	"github.com/jsamuelsen/quoting-service/internal/platform/config"
	"github.com/jsamuelsen/quoting-service/internal/platform/logging"
)

// ShopifyAccessTokenHeader carries the Admin API token.
const ShopifyAccessTokenHeader = "X-Shopify-Access-Token"

const (
	defaultValueType  = "percentage"
	missingPrice      = "0.00"
	noCustomerNotes   = "None"
	minPriceFractions = 2
)

// ShopifyAuth returns an AuthFunc that sets the access token header.
func ShopifyAuth(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set(ShopifyAccessTokenHeader, token)
	}
}

// ShopifyClientConfig configures a ShopifyClient.
type ShopifyClientConfig struct {
	// Client must be built with ShopifyAuth and the store URL as BaseURL.
	Client  *clients.Client
	Shopify config.ShopifyConfig
	Logger  *slog.Logger
}

// ShopifyClient implements ports.OrderPlatform against the Shopify Admin REST API.
type ShopifyClient struct {
	BaseAdapter
	apiPrefix       string
	tags            string
	resolveRules    bool
	defaultDiscount string
	logger          *slog.Logger
}

// NewShopifyClient creates a ShopifyClient. Panics if Client is nil.
func NewShopifyClient(cfg ShopifyClientConfig) *ShopifyClient {
	if cfg.Client == nil {
		panic("ShopifyClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	version := cfg.Shopify.APIVersion
	if version == "" {
		version = config.DefaultShopifyAPIVersion
	}

	tags := cfg.Shopify.OrderTags
	if tags == "" {
		tags = config.DefaultShopifyOrderTags
	}

	percentage := cfg.Shopify.DefaultDiscountPercentage
	if percentage <= 0 {
		percentage = config.DefaultDiscountPercentage
	}

	return &ShopifyClient{
		BaseAdapter:     NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		apiPrefix:       "/admin/api/" + version,
		tags:            tags,
		resolveRules:    cfg.Shopify.ResolvePriceRules,
		defaultDiscount: formatDiscountValue(decimal.NewFromFloat(percentage)),
		logger:          logger,
	}
}

type shopifyVariant struct {
	ID    json.Number `json:"id"`
	Title string      `json:"title"`
	SKU   string      `json:"sku"`
	Price string      `json:"price"`
}

type shopifyProduct struct {
	ID          json.Number      `json:"id"`
	Title       string           `json:"title"`
	Handle      string           `json:"handle"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Status      string           `json:"status"`
	Tags        string           `json:"tags"`
	Variants    []shopifyVariant `json:"variants"`
}

type shopifyDiscountCode struct {
	ID          json.Number `json:"id"`
	Code        string      `json:"code"`
	PriceRuleID json.Number `json:"price_rule_id"`
	UsageCount  int         `json:"usage_count"`
}

type shopifyPriceRule struct {
	ValueType string `json:"value_type"`
	Value     string `json:"value"`
}

type draftLineItem struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	SKU      string `json:"sku"`
	Custom   bool   `json:"custom"`
}

type draftCustomer struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
}

type draftAddress struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Company   string  `json:"company"`
	Address1  string  `json:"address1"`
	Address2  *string `json:"address2"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
	Zip       string  `json:"zip"`
	Country   string  `json:"country"`
}

type draftDiscount struct {
	Title     string `json:"title"`
	ValueType string `json:"value_type"`
	Value     string `json:"value"`
}

// draftOrder is the outbound payload. The two timestamps are always null so
// the order stays a draft and no invoice is sent.
type draftOrder struct {
	LineItems                 []draftLineItem `json:"line_items"`
	Customer                  draftCustomer   `json:"customer"`
	ShippingAddress           draftAddress    `json:"shipping_address"`
	BillingAddress            draftAddress    `json:"billing_address"`
	UseCustomerDefaultAddress bool            `json:"use_customer_default_address"`
	Note                      string          `json:"note"`
	Tags                      string          `json:"tags"`
	InvoiceSentAt             *string         `json:"invoice_sent_at"`
	CompletedAt               *string         `json:"completed_at"`
	AppliedDiscount           *draftDiscount  `json:"applied_discount,omitempty"`
}

type createdDraftOrder struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	Status     string      `json:"status"`
	InvoiceURL string      `json:"invoice_url"`
}

// FetchProduct returns the catalog product with the given ID.
func (c *ShopifyClient) FetchProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "fetch product"

	body, err := c.Get(ctx, fmt.Sprintf("%s/products/%s.json", c.apiPrefix, url.PathEscape(id)), op)
	if err != nil {
		return nil, err
	}

	envelope, err := Decode[struct {
		Product *shopifyProduct `json:"product"`
	}](&c.BaseAdapter, body, op)
	if err != nil {
		return nil, err
	}

	if envelope.Product == nil {
		return nil, domain.WrapIntegrationError(c.ServiceName(), op, errors.New("response missing product"))
	}

	return translateProduct(envelope.Product)
}

// ValidateDiscountCode looks up code. Lookup failures are logged and yield
// an empty list.
func (c *ShopifyClient) ValidateDiscountCode(ctx context.Context, code string) []domain.DiscountDescriptor {
	const op = "validate discount code"

	logger := logging.FromContext(ctx)

	codes, err := c.lookupDiscountCodes(ctx, code, op)
	if err != nil {
		logger.WarnContext(ctx, "discount code validation failed",
			slog.String("discount_code", code),
			slog.Any("error", err),
		)

		return []domain.DiscountDescriptor{}
	}

	return codes
}

func (c *ShopifyClient) lookupDiscountCodes(ctx context.Context, code, op string) ([]domain.DiscountDescriptor, error) {
	path := c.apiPrefix + "/discount_codes.json?" + url.Values{"code": {code}}.Encode()

	body, err := c.Get(ctx, path, op)
	if err != nil {
		return nil, err
	}

	envelope, err := Decode[struct {
		DiscountCodes []shopifyDiscountCode `json:"discount_codes"`
	}](&c.BaseAdapter, body, op)
	if err != nil {
		return nil, err
	}

	return TranslateSlice(envelope.DiscountCodes, translateDiscountCode)
}

// CreateDraftOrder creates a draft order for req and returns its identifiers.
func (c *ShopifyClient) CreateDraftOrder(ctx context.Context, req *domain.QuoteRequest) (*domain.DraftOrder, error) {
	const op = "create draft order"

	order := c.buildDraftOrder(req)

	if req.HasDiscountCode() {
		code := strings.TrimSpace(*req.DiscountCode)
		if codes := c.ValidateDiscountCode(ctx, code); len(codes) > 0 {
			discount := c.resolveDiscount(ctx, code, codes[0])
			order.AppliedDiscount = &draftDiscount{
				Title:     discount.Title,
				ValueType: discount.ValueType,
				Value:     discount.Value,
			}
		}
	}

	c.logger.Log(ctx, logging.LevelTrace, "sending draft order",
		slog.Int("line_items", len(order.LineItems)),
		slog.Bool("discounted", order.AppliedDiscount != nil),
	)

	body, err := c.Post(ctx, c.apiPrefix+"/draft_orders.json", struct {
		DraftOrder *draftOrder `json:"draft_order"`
	}{DraftOrder: order}, op)
	if err != nil {
		return nil, err
	}

	envelope, err := Decode[struct {
		DraftOrder *createdDraftOrder `json:"draft_order"`
	}](&c.BaseAdapter, body, op)
	if err != nil {
		return nil, err
	}

	if envelope.DraftOrder == nil || envelope.DraftOrder.ID.String() == "" {
		return nil, domain.WrapIntegrationError(c.ServiceName(), op, errors.New("response missing draft order id"))
	}

	created := envelope.DraftOrder

	return &domain.DraftOrder{
		ID:         created.ID.String(),
		Name:       created.Name,
		Status:     created.Status,
		InvoiceURL: created.InvoiceURL,
	}, nil
}

func (c *ShopifyClient) buildDraftOrder(req *domain.QuoteRequest) *draftOrder {
	items := make([]draftLineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		items = append(items, draftLineItem{
			Title:    item.Name,
			Price:    formatPrice(item.UnitPrice),
			Quantity: item.Quantity,
			SKU:      item.Code,
			Custom:   true,
		})
	}

	cust := req.Customer
	address := draftAddress{
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		Company:   cust.BusinessName,
		Address1:  cust.AddressLine1,
		Address2:  cust.AddressLine2,
		City:      cust.City,
		Province:  cust.State,
		Zip:       cust.PostalCode,
		Country:   cust.Country,
	}

	notes := noCustomerNotes
	if req.Notes != nil && *req.Notes != "" {
		notes = *req.Notes
	}

	return &draftOrder{
		LineItems: items,
		Customer: draftCustomer{
			FirstName: cust.FirstName,
			LastName:  cust.LastName,
			Email:     cust.Email,
			Phone:     cust.Phone,
		},
		ShippingAddress: address,
		BillingAddress:  address,
		Note:            fmt.Sprintf("Quote generated from product: %s. Customer notes: %s", req.ProductTitle, notes),
		Tags:            c.tags,
	}
}

// resolveDiscount returns the configured percentage unless price rule
// resolution is on and the rule can be read.
func (c *ShopifyClient) resolveDiscount(ctx context.Context, code string, found domain.DiscountDescriptor) domain.AppliedDiscount {
	fallback := domain.AppliedDiscount{Title: code, ValueType: defaultValueType, Value: c.defaultDiscount}

	if !c.resolveRules || found.PriceRuleID == "" {
		return fallback
	}

	rule, err := c.fetchPriceRule(ctx, found.PriceRuleID)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "price rule lookup failed, using default discount",
			slog.String("price_rule_id", found.PriceRuleID),
			slog.Any("error", err),
		)

		return fallback
	}

	value, err := decimal.NewFromString(rule.Value)
	if err != nil || rule.ValueType == "" {
		return fallback
	}

	return domain.AppliedDiscount{Title: code, ValueType: rule.ValueType, Value: formatDiscountValue(value)}
}

func (c *ShopifyClient) fetchPriceRule(ctx context.Context, id string) (*shopifyPriceRule, error) {
	const op = "fetch price rule"

	body, err := c.Get(ctx, fmt.Sprintf("%s/price_rules/%s.json", c.apiPrefix, url.PathEscape(id)), op)
	if err != nil {
		return nil, err
	}

	envelope, err := Decode[struct {
		PriceRule *shopifyPriceRule `json:"price_rule"`
	}](&c.BaseAdapter, body, op)
	if err != nil {
		return nil, err
	}

	if envelope.PriceRule == nil {
		return nil, domain.WrapIntegrationError(c.ServiceName(), op, errors.New("response missing price rule"))
	}

	return envelope.PriceRule, nil
}

func translateProduct(ext *shopifyProduct) (*domain.Product, error) {
	variants := make([]domain.ProductVariant, 0, len(ext.Variants))
	for _, v := range ext.Variants {
		variants = append(variants, domain.ProductVariant{
			ID:    v.ID.String(),
			Title: v.Title,
			SKU:   v.SKU,
			Price: v.Price,
		})
	}

	return &domain.Product{
		ID:          ext.ID.String(),
		Title:       ext.Title,
		Handle:      ext.Handle,
		Vendor:      ext.Vendor,
		ProductType: ext.ProductType,
		Status:      ext.Status,
		Tags:        ext.Tags,
		Variants:    variants,
	}, nil
}

func translateDiscountCode(ext *shopifyDiscountCode) (*domain.DiscountDescriptor, error) {
	return &domain.DiscountDescriptor{
		ID:          ext.ID.String(),
		Code:        ext.Code,
		PriceRuleID: ext.PriceRuleID.String(),
		UsageCount:  ext.UsageCount,
	}, nil
}

// formatPrice keeps the exact price with at least two fraction digits.
func formatPrice(price *decimal.Decimal) string {
	if price == nil {
		return missingPrice
	}

	return price.StringFixed(max(minPriceFractions, -price.Exponent()))
}

// formatDiscountValue renders a rule value as Shopify's positive amount, e.g. "10.0".
func formatDiscountValue(value decimal.Decimal) string {
	return value.Abs().StringFixed(max(1, -value.Exponent()))
}
