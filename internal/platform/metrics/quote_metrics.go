// Package metrics exposes Prometheus collectors for the quote workflow.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream call outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// QuoteMetrics counts quote outcomes and upstream calls.
type QuoteMetrics struct {
	quotes           *prometheus.CounterVec
	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	persistFailures  *prometheus.CounterVec
}

// NewQuoteMetrics registers the collectors with prometheus.DefaultRegisterer.
func NewQuoteMetrics() *QuoteMetrics {
	return NewQuoteMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewQuoteMetricsWithRegisterer registers with registerer. Collectors that
// are already registered are reused, so repeated construction is safe.
func NewQuoteMetricsWithRegisterer(registerer prometheus.Registerer) *QuoteMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &QuoteMetrics{
		quotes: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_requests_total",
			Help: "Quote requests by terminal status",
		}, []string{"status"})),
		upstreamCalls: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_upstream_calls_total",
			Help: "Upstream creation calls by upstream and outcome",
		}, []string{"upstream", "outcome"})),
		upstreamDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quote_upstream_call_duration_seconds",
			Help:    "Duration of upstream creation calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"upstream"})),
		persistFailures: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_persist_failures_total",
			Help: "Quote store writes that failed, by step",
		}, []string{"step"})),
	}
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		existing, ok := already.ExistingCollector.(C)
		if !ok {
			panic(fmt.Sprintf("collector already registered with unexpected type %T", already.ExistingCollector))
		}

		return existing
	}

	panic(fmt.Sprintf("register collector: %v", err))
}

// RecordQuote counts a quote that reached status.
func (m *QuoteMetrics) RecordQuote(status string) {
	m.quotes.WithLabelValues(status).Inc()
}

// RecordUpstreamCall counts one upstream call and observes its latency.
func (m *QuoteMetrics) RecordUpstreamCall(upstream string, err error, duration time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}

	m.upstreamCalls.WithLabelValues(upstream, outcome).Inc()
	m.upstreamDuration.WithLabelValues(upstream).Observe(duration.Seconds())
}

// RecordPersistFailure counts a failed store write.
func (m *QuoteMetrics) RecordPersistFailure(step string) {
	m.persistFailures.WithLabelValues(step).Inc()
}
