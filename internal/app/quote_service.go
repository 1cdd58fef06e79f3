// Package app contains the application services that orchestrate the
// quoting use cases through the ports.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quoting-service/internal/domain"
	"github.com/jsamuelsen/quoting-service/internal/platform/metrics"
	"github.com/jsamuelsen/quoting-service/internal/ports"
)

// Upstream labels used in logs and metrics.
const (
	UpstreamShopify = "shopify"
	UpstreamCin7    = "cin7"
)

// QuoteService fans a quote request out to the order and inventory
// platforms and keeps the local record of the outcome.
type QuoteService struct {
	store     ports.QuoteStore
	orders    ports.OrderPlatform
	inventory ports.InventoryPlatform
	flags     ports.FeatureFlags
	metrics   *metrics.QuoteMetrics
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// QuoteServiceConfig contains the dependencies of the quote service.
// Store, Orders and Inventory are required.
type QuoteServiceConfig struct {
	Store     ports.QuoteStore
	Orders    ports.OrderPlatform
	Inventory ports.InventoryPlatform

	// Flags is optional; without it the fan-out is sequential.
	Flags ports.FeatureFlags

	// Metrics is optional.
	Metrics *metrics.QuoteMetrics
	Logger  *slog.Logger

	// Clock and IDGen default to time.Now and uuid.NewString.
	Clock func() time.Time
	IDGen func() string
}

// NewQuoteService creates a quote service. It panics when a required
// dependency is missing.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Store == nil {
		panic("app: quote store is required")
	}

	if cfg.Orders == nil {
		panic("app: order platform is required")
	}

	if cfg.Inventory == nil {
		panic("app: inventory platform is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	if cfg.IDGen == nil {
		cfg.IDGen = uuid.NewString
	}

	return &QuoteService{
		store:     cfg.Store,
		orders:    cfg.Orders,
		inventory: cfg.Inventory,
		flags:     cfg.Flags,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		now:       cfg.Clock,
		newID:     cfg.IDGen,
	}
}

// CreateQuote validates req, records it, submits it to both upstreams and
// persists the combined outcome.
//
// Upstream failures never fail the call: they are recorded on the quote and
// reflected in its status. Only validation (*domain.ValidationError) and
// store failures (*domain.InfrastructureError) are returned.
func (s *QuoteService) CreateQuote(ctx context.Context, req *domain.QuoteRequest) (*domain.QuoteSummary, error) {
	if req == nil {
		return nil, domain.NewValidationError("request", "is required")
	}

	err := runStep(ctx, s.logger, StepValidate, func(context.Context) error {
		return req.Validate()
	})
	if err != nil {
		return nil, err
	}

	record := domain.NewQuoteRecord(s.newID(), req, s.now().UTC())
	logger := s.logger.With(slog.String("quote_id", record.ID))

	err = runStep(ctx, logger, StepPersistInitial, func(ctx context.Context) error {
		if err := s.store.Insert(ctx, record); err != nil {
			return domain.NewInfrastructureError("store insert", err)
		}

		return nil
	})
	if err != nil {
		s.recordPersistFailure(StepPersistInitial)
		return nil, err
	}

	// Once the record exists it must reach a terminal status, even if the
	// caller goes away. Upstream calls stay bounded by the client timeout.
	ctx = context.WithoutCancel(ctx)

	_ = runStep(ctx, logger, StepFanOut, func(ctx context.Context) error {
		s.fanOut(ctx, logger, req, record)
		return nil
	})

	record.Status = domain.StatusFromOutcomes(record.ShopifyDraftOrderID != nil, record.Cin7QuoteID != nil)

	err = runStep(ctx, logger, StepPersistFinal, func(ctx context.Context) error {
		if err := s.store.Replace(ctx, record.ID, record); err != nil {
			return domain.NewInfrastructureError("store replace", err)
		}

		return nil
	})
	if err != nil {
		s.recordPersistFailure(StepPersistFinal)
		return nil, err
	}

	var summary *domain.QuoteSummary

	err = runStep(ctx, logger, StepRespond, func(context.Context) error {
		if !record.Status.IsTerminal() {
			return fmt.Errorf("quote %s left in non-terminal status %q", record.ID, record.Status)
		}

		summary = record.Summary()

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordQuote(string(record.Status))
	}

	logger.InfoContext(ctx, "quote created",
		slog.String("status", string(record.Status)),
		slog.Int("errors", len(record.Errors)),
	)

	return summary, nil
}

// fanOut submits req to both upstreams and writes their outcomes onto
// record. Errors are appended Shopify first regardless of completion order.
func (s *QuoteService) fanOut(ctx context.Context, logger *slog.Logger, req *domain.QuoteRequest, record *domain.QuoteRecord) {
	createOrder := func(ctx context.Context) (*domain.DraftOrder, error) {
		start := time.Now()
		order, err := s.orders.CreateDraftOrder(ctx, req)
		s.recordUpstream(UpstreamShopify, err, time.Since(start))

		return order, err
	}

	createQuote := func(ctx context.Context) (*domain.UpstreamQuote, error) {
		start := time.Now()
		quote, err := s.inventory.CreateQuote(ctx, req)
		s.recordUpstream(UpstreamCin7, err, time.Since(start))

		return quote, err
	}

	run := Sequence2[*domain.DraftOrder, *domain.UpstreamQuote]
	if s.concurrent(ctx) {
		run = Settle2[*domain.DraftOrder, *domain.UpstreamQuote]
	}

	order, quote := run(ctx, createOrder, createQuote)

	if order.Err != nil {
		logger.ErrorContext(ctx, "shopify draft order failed", slog.Any("error", order.Err))
		record.Errors = append(record.Errors, fmt.Sprintf("Shopify error: %v", order.Err))
	} else if order.Value != nil {
		id := order.Value.ID
		record.ShopifyDraftOrderID = &id
	}

	if quote.Err != nil {
		logger.ErrorContext(ctx, "cin7 quote failed", slog.Any("error", quote.Err))
		record.Errors = append(record.Errors, fmt.Sprintf("Cin7 error: %v", quote.Err))
	} else if quote.Value != nil {
		id := quote.Value.ID
		record.Cin7QuoteID = &id
	}
}

func (s *QuoteService) concurrent(ctx context.Context) bool {
	if s.flags == nil {
		return false
	}

	return s.flags.IsEnabled(ctx, ports.FlagConcurrentFanOut, false)
}

func (s *QuoteService) recordUpstream(upstream string, err error, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordUpstreamCall(upstream, err, d)
	}
}

func (s *QuoteService) recordPersistFailure(step ExecutionStep) {
	if s.metrics != nil {
		s.metrics.RecordPersistFailure(string(step))
	}
}

// GetQuote returns the stored record for id.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*domain.QuoteRecord, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListQuotes returns every stored record, newest first.
func (s *QuoteService) ListQuotes(ctx context.Context) ([]*domain.QuoteRecord, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "listing quotes failed", slog.Any("error", err))
		return nil, err
	}

	return records, nil
}
