package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jsamuelsen/quoting-service/internal/domain"
)

// LineItemRequest is one product line of a quote request.
type LineItemRequest struct {
	Code      string           `json:"code"                 validate:"required,notempty"`
	Name      string           `json:"name"                 validate:"required,notempty"`
	Quantity  int              `json:"qty"                  validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CustomerRequest is the buyer block of a quote request.
type CustomerRequest struct {
	FirstName    string  `json:"first_name"              validate:"required,notempty"`
	LastName     string  `json:"last_name"               validate:"required,notempty"`
	Email        string  `json:"email"                   validate:"required,basic_email"`
	BusinessName string  `json:"business_name"           validate:"required,notempty"`
	Phone        *string `json:"phone,omitempty"`
	AddressLine1 string  `json:"address_line1"           validate:"required,notempty"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         string  `json:"city"                    validate:"required,notempty"`
	State        string  `json:"state"                   validate:"required,notempty"`
	PostalCode   string  `json:"postal_code"             validate:"required,notempty"`
	Country      string  `json:"country,omitempty"`
}

// CreateQuoteRequest is the body of POST /api/quotes. product_handle and
// product_title must be present but may be empty.
type CreateQuoteRequest struct {
	ProductID     string            `json:"product_id"              validate:"required,notempty"`
	ProductHandle *string           `json:"product_handle"          validate:"required"`
	ProductTitle  *string           `json:"product_title"           validate:"required"`
	LineItems     []LineItemRequest `json:"line_items"              validate:"required,min=1,max=10,dive"`
	Customer      CustomerRequest   `json:"customer"`
	DiscountCode  *string           `json:"discount_code,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
}

// ToDomain converts the request to its domain form.
func (r *CreateQuoteRequest) ToDomain() *domain.QuoteRequest {
	items := make([]domain.LineItem, len(r.LineItems))
	for i, item := range r.LineItems {
		items[i] = domain.LineItem{
			Code:      item.Code,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	country := r.Customer.Country
	if country == "" {
		country = domain.DefaultCountry
	}

	return &domain.QuoteRequest{
		ProductID:     r.ProductID,
		ProductHandle: deref(r.ProductHandle),
		ProductTitle:  deref(r.ProductTitle),
		LineItems:     items,
		Customer: domain.Customer{
			FirstName:    r.Customer.FirstName,
			LastName:     r.Customer.LastName,
			Email:        r.Customer.Email,
			BusinessName: r.Customer.BusinessName,
			Phone:        r.Customer.Phone,
			AddressLine1: r.Customer.AddressLine1,
			AddressLine2: r.Customer.AddressLine2,
			City:         r.Customer.City,
			State:        r.Customer.State,
			PostalCode:   r.Customer.PostalCode,
			Country:      country,
		},
		DiscountCode: r.DiscountCode,
		Notes:        r.Notes,
	}
}

// QuoteSummaryResponse is the body returned from quote creation.
type QuoteSummaryResponse struct {
	QuoteID             string    `json:"quote_id"`
	ShopifyDraftOrderID *string   `json:"shopify_draft_order_id"`
	Cin7QuoteID         *string   `json:"cin7_quote_id"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	CustomerName        string    `json:"customer_name"`
	TotalItems          int       `json:"total_items"`
	Message             string    `json:"message"`
}

// ToQuoteSummaryResponse converts a domain summary.
func ToQuoteSummaryResponse(s *domain.QuoteSummary) QuoteSummaryResponse {
	return QuoteSummaryResponse{
		QuoteID:             s.QuoteID,
		ShopifyDraftOrderID: s.ShopifyDraftOrderID,
		Cin7QuoteID:         s.Cin7QuoteID,
		Status:              string(s.Status),
		CreatedAt:           s.CreatedAt.UTC(),
		CustomerName:        s.CustomerName,
		TotalItems:          s.TotalItems,
		Message:             s.Message,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// QuoteEnvelope wraps a single stored quote.
type QuoteEnvelope struct {
	Quote *domain.QuoteRecord `json:"quote"`
}

// QuoteListEnvelope wraps the stored quotes, newest first.
type QuoteListEnvelope struct {
	Quotes []*domain.QuoteRecord `json:"quotes"`
}

// ProductEnvelope wraps a catalog product.
type ProductEnvelope struct {
	Product *domain.Product `json:"product"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}
