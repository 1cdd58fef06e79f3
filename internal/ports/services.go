// Package ports defines the contracts between the quoting application layer
// and its adapters. Methods take a context first, speak in domain types and
// report failures with domain errors.
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/quoting-service/internal/domain"
)

// QuoteStore persists quote records. It is the only owner of persisted quote data.
type QuoteStore interface {
	// Insert stores a new record.
	// Returns domain.ErrConflict if a record with the same ID exists.
	Insert(ctx context.Context, record *domain.QuoteRecord) error

	// Replace overwrites the whole record stored under id.
	Replace(ctx context.Context, id string, record *domain.QuoteRecord) error

	// GetByID returns domain.ErrNotFound if the record does not exist.
	GetByID(ctx context.Context, id string) (*domain.QuoteRecord, error)

	// ListAll returns every record, newest first.
	ListAll(ctx context.Context) ([]*domain.QuoteRecord, error)
}

// OrderPlatform is the order-management upstream that receives draft orders.
//
// Any upstream failure is returned as a *domain.IntegrationError.
type OrderPlatform interface {
	FetchProduct(ctx context.Context, id string) (*domain.Product, error)

	// ValidateDiscountCode is advisory: on failure it returns an empty list.
	ValidateDiscountCode(ctx context.Context, code string) []domain.DiscountDescriptor

	CreateDraftOrder(ctx context.Context, req *domain.QuoteRequest) (*domain.DraftOrder, error)
}

// InventoryPlatform is the inventory upstream that receives quotes.
type InventoryPlatform interface {
	CreateQuote(ctx context.Context, req *domain.QuoteRequest) (*domain.UpstreamQuote, error)
}

// Cache is a byte-oriented key/value cache with expiry.
type Cache interface {
	// Get returns domain.ErrNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value for ttl. A zero ttl means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete does not fail when the key is absent.
	Delete(ctx context.Context, key string) error
}
