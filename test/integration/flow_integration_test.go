//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoting-service/internal/adapters/storage/sqlstore"
	"github.com/jsamuelsen/quoting-service/internal/domain"
	"github.com/jsamuelsen/quoting-service/internal/platform/config"
	"github.com/jsamuelsen/quoting-service/internal/ports"
)

func newSQLiteStack(t *testing.T) *stack {
	t.Helper()

	store, err := sqlstore.Open(context.Background(), config.StoreConfig{
		Driver:       sqlstore.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "quotes.db"),
		MaxOpenConns: 1,
		AutoMigrate:  true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s, err := newStack(store)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return s
}

// TestQuoteFlow_SQLitePersistsOutcome verifies the final record, not just the
// response, carries the upstream IDs and errors.
func TestQuoteFlow_SQLitePersistsOutcome(t *testing.T) {
	s := newSQLiteStack(t)
	s.cin7.failWith(http.StatusUnauthorized)

	resp, body, err := s.post(context.Background(), "/api/quotes", quoteRequestBody("DESK-1", 2))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var summary struct {
		QuoteID string `json:"quote_id"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, string(domain.QuoteStatusPartial), summary.Status)

	record, err := s.store.GetByID(context.Background(), summary.QuoteID)
	require.NoError(t, err)

	assert.Equal(t, domain.QuoteStatusPartial, record.Status)
	require.NotNil(t, record.ShopifyDraftOrderID)
	assert.Equal(t, "1001", *record.ShopifyDraftOrderID)
	assert.Nil(t, record.Cin7QuoteID)
	require.Len(t, record.Errors, 1)
	assert.Contains(t, record.Errors[0], "Cin7 error:")
	assert.Equal(t, "Grace", record.Customer.FirstName)
}

// TestQuoteFlow_ConcurrentRequests runs many quotes at once with the
// concurrent fan-out enabled.
func TestQuoteFlow_ConcurrentRequests(t *testing.T) {
	const requests = 20

	s := newSQLiteStack(t)
	s.flags.Set(ports.FlagConcurrentFanOut, "true")

	var wg sync.WaitGroup

	codes := make(chan int, requests)

	for range requests {
		wg.Add(1)

		go func() {
			defer wg.Done()

			resp, _, err := s.post(context.Background(), "/api/quotes", quoteRequestBody("DESK-1", 1))
			if err != nil {
				codes <- 0
				return
			}

			codes <- resp.StatusCode
		}()
	}

	wg.Wait()
	close(codes)

	for code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}

	all, err := s.store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, requests)

	for _, record := range all {
		assert.Equal(t, domain.QuoteStatusCompleted, record.Status)
	}

	assert.Equal(t, int32(requests), s.shopify.calls.Load())
	assert.Equal(t, int32(requests), s.cin7.calls.Load())
}

func TestQuoteFlow_ReadinessReportsSQLite(t *testing.T) {
	s := newSQLiteStack(t)

	resp, body, err := s.get(context.Background(), "/-/ready")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"store"`)
}
