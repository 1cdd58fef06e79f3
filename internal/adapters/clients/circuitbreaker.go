package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/quoting-service/internal/platform/config"
)

// State is the circuit breaker state.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota
	// StateOpen rejects requests until the open timeout elapses.
	StateOpen
	// StateHalfOpen admits a limited number of probe requests.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker guards one upstream.
//
// Closed opens after MaxFailures consecutive failures. Open becomes half-open
// once Timeout has passed since it opened. Half-open closes after
// HalfOpenLimit consecutive successful probes and reopens on any failure.
type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      config.CircuitBreakerConfig
	state    State
	failures int
	probes   int // half-open requests in flight
	passed   int // successful half-open probes
	openedAt time.Time
	listener func(from, to State)
	now      func() time.Time
}

// NewCircuitBreaker creates a closed breaker. Zero limits are raised to one.
func NewCircuitBreaker(cfg config.CircuitBreakerConfig) *CircuitBreaker {
	cfg.MaxFailures = max(cfg.MaxFailures, 1)
	cfg.HalfOpenLimit = max(cfg.HalfOpenLimit, 1)

	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run after every transition, outside the lock.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	cb.listener = fn
	cb.mu.Unlock()
}

// Allow reports whether a request may be sent now.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.Timeout {
		notify := cb.setState(StateHalfOpen)
		cb.probes = 1
		cb.mu.Unlock()
		notify()

		return true
	}

	allowed := false

	switch cb.state {
	case StateClosed:
		allowed = true
	case StateHalfOpen:
		if cb.probes < cb.cfg.HalfOpenLimit {
			cb.probes++
			allowed = true
		}
	case StateOpen:
	}

	cb.mu.Unlock()

	return allowed
}

// RecordSuccess reports a completed request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	notify := func() {}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.probes--
		cb.passed++
		if cb.passed >= cb.cfg.HalfOpenLimit {
			notify = cb.setState(StateClosed)
		}
	case StateOpen:
	}

	cb.mu.Unlock()
	notify()
}

// RecordFailure reports a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()

	notify := func() {}

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			notify = cb.setState(StateOpen)
		}
	case StateHalfOpen:
		cb.probes--
		notify = cb.setState(StateOpen)
	case StateOpen:
	}

	cb.mu.Unlock()
	notify()
}

// State returns the current state without triggering transitions.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// setState must be called with mu held. The returned func fires the listener.
func (cb *CircuitBreaker) setState(next State) func() {
	prev := cb.state
	if prev == next {
		return func() {}
	}

	cb.state = next
	cb.failures = 0
	cb.passed = 0

	if next == StateOpen {
		cb.openedAt = cb.now()
		cb.probes = 0
	}

	listener := cb.listener
	if listener == nil {
		return func() {}
	}

	return func() { listener(prev, next) }
}
