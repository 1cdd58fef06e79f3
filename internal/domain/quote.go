package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Line item bounds for a single quote request.
const (
	MinLineItems = 1
	MaxLineItems = 10
)

// DefaultCountry is used when a customer address omits the country.
const DefaultCountry = "Australia"

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// IsBasicEmail reports whether s has the local@domain.tld shape.
func IsBasicEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// QuoteStatus is the lifecycle state of a persisted quote.
type QuoteStatus string

const (
	// QuoteStatusProcessing is the only state before both upstream attempts finish.
	QuoteStatusProcessing QuoteStatus = "processing"
	QuoteStatusCompleted  QuoteStatus = "completed"
	QuoteStatusPartial    QuoteStatus = "partial"
	QuoteStatusFailed     QuoteStatus = "failed"
)

// IsTerminal reports whether no further transition can happen.
func (s QuoteStatus) IsTerminal() bool {
	switch s {
	case QuoteStatusCompleted, QuoteStatusPartial, QuoteStatusFailed:
		return true
	default:
		return false
	}
}

// Message returns the human readable summary shown to the caller.
func (s QuoteStatus) Message() string {
	switch s {
	case QuoteStatusCompleted:
		return "Quote successfully created in both Shopify and Cin7 Omni"
	case QuoteStatusPartial:
		return "Quote partially created. Check logs for details."
	case QuoteStatusFailed:
		return "Quote creation failed in both systems"
	default:
		return "Quote is being processed"
	}
}

// StatusFromOutcomes derives the terminal status from the two upstream results.
func StatusFromOutcomes(orderCreated, quoteCreated bool) QuoteStatus {
	switch {
	case orderCreated && quoteCreated:
		return QuoteStatusCompleted
	case orderCreated || quoteCreated:
		return QuoteStatusPartial
	default:
		return QuoteStatusFailed
	}
}

// LineItem is one product line in a quote.
// A nil UnitPrice means the upstream default applies.
type LineItem struct {
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Quantity  int              `json:"qty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// Customer is the buyer and their delivery address.
type Customer struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	BusinessName string  `json:"business_name"`
	Phone        *string `json:"phone,omitempty"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postal_code"`
	Country      string  `json:"country"`
}

// DisplayName is "First Last".
func (c Customer) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// QuoteRequest is the inbound, request-scoped quote payload.
type QuoteRequest struct {
	ProductID     string
	ProductHandle string
	ProductTitle  string
	LineItems     []LineItem
	Customer      Customer
	DiscountCode  *string
	Notes         *string
}

// HasDiscountCode reports whether a non-blank discount code was supplied.
func (r *QuoteRequest) HasDiscountCode() bool {
	return r.DiscountCode != nil && strings.TrimSpace(*r.DiscountCode) != ""
}

// Validate enforces the request invariants. It also fills the default country.
func (r *QuoteRequest) Validate() error {
	if strings.TrimSpace(r.ProductID) == "" {
		return NewValidationError("product_id", "is required")
	}

	if n := len(r.LineItems); n < MinLineItems || n > MaxLineItems {
		return NewValidationErrorWithValue("line_items",
			fmt.Sprintf("must contain between %d and %d items", MinLineItems, MaxLineItems), n)
	}

	for i, item := range r.LineItems {
		if item.Quantity <= 0 {
			return NewValidationErrorWithValue(fmt.Sprintf("line_items[%d].qty", i), "must be greater than 0", item.Quantity)
		}

		if strings.TrimSpace(item.Code) == "" {
			return NewValidationError(fmt.Sprintf("line_items[%d].code", i), "is required")
		}
	}

	if !IsBasicEmail(r.Customer.Email) {
		return NewValidationErrorWithValue("customer.email", "must be a valid email address", r.Customer.Email)
	}

	if r.Customer.Country == "" {
		r.Customer.Country = DefaultCountry
	}

	return nil
}

// QuoteRecord is the persisted document for one quote request.
type QuoteRecord struct {
	ID                  string      `json:"quote_id"`
	ProductID           string      `json:"product_id"`
	ProductHandle       string      `json:"product_handle"`
	ProductTitle        string      `json:"product_title"`
	LineItems           []LineItem  `json:"line_items"`
	Customer            Customer    `json:"customer"`
	DiscountCode        *string     `json:"discount_code"`
	Notes               *string     `json:"notes"`
	Status              QuoteStatus `json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
	ShopifyDraftOrderID *string     `json:"shopify_draft_order_id"`
	Cin7QuoteID         *string     `json:"cin7_quote_id"`
	Errors              []string    `json:"errors"`
}

// NewQuoteRecord builds the initial processing record for req.
func NewQuoteRecord(id string, req *QuoteRequest, createdAt time.Time) *QuoteRecord {
	items := make([]LineItem, len(req.LineItems))
	copy(items, req.LineItems)

	return &QuoteRecord{
		ID:            id,
		ProductID:     req.ProductID,
		ProductHandle: req.ProductHandle,
		ProductTitle:  req.ProductTitle,
		LineItems:     items,
		Customer:      req.Customer,
		DiscountCode:  req.DiscountCode,
		Notes:         req.Notes,
		Status:        QuoteStatusProcessing,
		CreatedAt:     createdAt,
		Errors:        []string{},
	}
}

// Clone returns a deep copy of the record.
func (q *QuoteRecord) Clone() *QuoteRecord {
	if q == nil {
		return nil
	}

	c := *q
	c.LineItems = append([]LineItem(nil), q.LineItems...)
	c.Errors = append([]string{}, q.Errors...)
	c.DiscountCode = cloneString(q.DiscountCode)
	c.Notes = cloneString(q.Notes)
	c.ShopifyDraftOrderID = cloneString(q.ShopifyDraftOrderID)
	c.Cin7QuoteID = cloneString(q.Cin7QuoteID)
	c.Customer.Phone = cloneString(q.Customer.Phone)
	c.Customer.AddressLine2 = cloneString(q.Customer.AddressLine2)

	return &c
}

// Summary builds the creation response for the record.
func (q *QuoteRecord) Summary() *QuoteSummary {
	return &QuoteSummary{
		QuoteID:             q.ID,
		ShopifyDraftOrderID: q.ShopifyDraftOrderID,
		Cin7QuoteID:         q.Cin7QuoteID,
		Status:              q.Status,
		CreatedAt:           q.CreatedAt,
		CustomerName:        q.Customer.DisplayName(),
		TotalItems:          len(q.LineItems),
		Message:             q.Status.Message(),
	}
}

// QuoteSummary is returned from quote creation.
type QuoteSummary struct {
	QuoteID             string
	ShopifyDraftOrderID *string
	Cin7QuoteID         *string
	Status              QuoteStatus
	CreatedAt           time.Time
	CustomerName        string
	TotalItems          int
	Message             string
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}

	v := *s

	return &v
}
