package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoting-service/internal/domain"
	"github.com/jsamuelsen/quoting-service/internal/mocks"
)

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:     "7001",
		Title:  "Standing Desk",
		Handle: "standing-desk",
		Variants: []domain.ProductVariant{
			{ID: "1", Title: "Default", SKU: "DESK-1", Price: "100.00"},
		},
	}
}

func TestNewProductService_PanicsWithoutOrders(t *testing.T) {
	assert.Panics(t, func() { NewProductService(ProductServiceConfig{}) })
}

func TestProductService_GetProduct_NoCache(t *testing.T) {
	orders := mocks.NewMockOrderPlatform(t)
	orders.EXPECT().FetchProduct(mock.Anything, "7001").Return(sampleProduct(), nil).Once()

	svc := NewProductService(ProductServiceConfig{Orders: orders, Logger: discardLogger()})

	got, err := svc.GetProduct(context.Background(), "7001")
	require.NoError(t, err)
	assert.Equal(t, "Standing Desk", got.Title)
}

func TestProductService_GetProduct(t *testing.T) {
	integrationErr := domain.NewIntegrationError("shopify", "fetch product", 404, "Not Found")

	tests := []struct {
		name      string
		setup     func(*mocks.MockOrderPlatform, *mocks.MockCache)
		wantTitle string
		wantErr   error
	}{
		{
			name: "cache hit skips upstream",
			setup: func(_ *mocks.MockOrderPlatform, c *mocks.MockCache) {
				c.EXPECT().Get(mock.Anything, "product:7001").
					Return([]byte(`{"id":"7001","title":"Cached Desk","handle":"standing-desk","variants":[]}`), nil)
			},
			wantTitle: "Cached Desk",
		},
		{
			name: "miss fetches and stores",
			setup: func(o *mocks.MockOrderPlatform, c *mocks.MockCache) {
				c.EXPECT().Get(mock.Anything, "product:7001").Return(nil, domain.NewNotFoundError("cache entry", "product:7001"))
				o.EXPECT().FetchProduct(mock.Anything, "7001").Return(sampleProduct(), nil)
				c.EXPECT().Set(mock.Anything, "product:7001", mock.Anything, 5*time.Minute).Return(nil)
			},
			wantTitle: "Standing Desk",
		},
		{
			name: "cache failures are bypassed",
			setup: func(o *mocks.MockOrderPlatform, c *mocks.MockCache) {
				c.EXPECT().Get(mock.Anything, "product:7001").Return(nil, errors.New("redis down"))
				o.EXPECT().FetchProduct(mock.Anything, "7001").Return(sampleProduct(), nil)
				c.EXPECT().Set(mock.Anything, "product:7001", mock.Anything, 5*time.Minute).Return(errors.New("redis down"))
			},
			wantTitle: "Standing Desk",
		},
		{
			name: "corrupt entry is evicted",
			setup: func(o *mocks.MockOrderPlatform, c *mocks.MockCache) {
				c.EXPECT().Get(mock.Anything, "product:7001").Return([]byte("{"), nil)
				c.EXPECT().Delete(mock.Anything, "product:7001").Return(nil)
				o.EXPECT().FetchProduct(mock.Anything, "7001").Return(sampleProduct(), nil)
				c.EXPECT().Set(mock.Anything, "product:7001", mock.Anything, 5*time.Minute).Return(nil)
			},
			wantTitle: "Standing Desk",
		},
		{
			name: "upstream error is returned and not cached",
			setup: func(o *mocks.MockOrderPlatform, c *mocks.MockCache) {
				c.EXPECT().Get(mock.Anything, "product:7001").Return(nil, domain.NewNotFoundError("cache entry", "product:7001"))
				o.EXPECT().FetchProduct(mock.Anything, "7001").Return(nil, integrationErr)
			},
			wantErr: integrationErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := mocks.NewMockOrderPlatform(t)
			cache := mocks.NewMockCache(t)
			tt.setup(orders, cache)

			svc := NewProductService(ProductServiceConfig{
				Orders:   orders,
				Cache:    cache,
				CacheTTL: 5 * time.Minute,
				Logger:   discardLogger(),
			})

			got, err := svc.GetProduct(context.Background(), "7001")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, domain.IsIntegration(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, got.Title)
		})
	}
}
