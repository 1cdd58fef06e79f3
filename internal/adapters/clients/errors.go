// Package clients provides the instrumented HTTP client used by upstream adapters.
package clients

import "errors"

// Transport-level failures. Adapters translate these into domain errors.
var (
	// ErrCircuitOpen is returned without sending when the upstream's breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRequestFailed wraps a request that never produced a response.
	ErrRequestFailed = errors.New("request failed")
)
