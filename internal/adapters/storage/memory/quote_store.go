// Package memory provides an in-process ports.QuoteStore.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/jsamuelsen/quoting-service/internal/domain"
)

// QuoteStore keeps deep copies of records in a map. Contents are lost on restart.
type QuoteStore struct {
	mu    sync.RWMutex
	items map[string]*domain.QuoteRecord
}

// NewQuoteStore creates an empty store.
func NewQuoteStore() *QuoteStore {
	return &QuoteStore{items: make(map[string]*domain.QuoteRecord)}
}

// Insert implements ports.QuoteStore.
func (s *QuoteStore) Insert(_ context.Context, record *domain.QuoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[record.ID]; ok {
		return domain.NewConflictError("quote", "id "+record.ID+" already exists")
	}

	s.items[record.ID] = record.Clone()

	return nil
}

// Replace implements ports.QuoteStore.
func (s *QuoteStore) Replace(_ context.Context, id string, record *domain.QuoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return domain.NewNotFoundError("quote", id)
	}

	stored := record.Clone()
	stored.ID = id
	s.items[id] = stored

	return nil
}

// GetByID implements ports.QuoteStore.
func (s *QuoteStore) GetByID(_ context.Context, id string) (*domain.QuoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("quote", id)
	}

	return record.Clone(), nil
}

// ListAll implements ports.QuoteStore.
func (s *QuoteStore) ListAll(_ context.Context) ([]*domain.QuoteRecord, error) {
	s.mu.RLock()
	out := make([]*domain.QuoteRecord, 0, len(s.items))
	for _, record := range s.items {
		out = append(out, record.Clone())
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *domain.QuoteRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(b.ID, a.ID)
	})

	return out, nil
}

// Name implements ports.HealthChecker.
func (s *QuoteStore) Name() string {
	return "store"
}

// Check implements ports.HealthChecker. The map is always available.
func (s *QuoteStore) Check(context.Context) error {
	return nil
}
