package ports

import "context"

// Flag names evaluated by the application.
const (
	// FlagConcurrentFanOut issues the two upstream calls concurrently.
	FlagConcurrentFanOut = "quote_concurrent_fanout"
)

// FeatureFlags evaluates runtime toggles. Evaluation never fails; a missing
// or unparsable flag yields defaultValue.
type FeatureFlags interface {
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool
}
