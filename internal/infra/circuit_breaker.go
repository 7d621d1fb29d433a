package infra

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Closed → Open → Half-Open breaker in front of the remote advisor API, so a
// dead endpoint or a revoked key fails fast instead of holding requests for
// the full advisor timeout.
//
//   - Closed:    calls pass through
//   - Open:      calls fail immediately with ErrCircuitOpen
//   - Half-Open: calls pass through as probes; enough successes close the circuit

// CBState represents the current circuit breaker state.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

// String returns the state name used in /health and logs.
func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when Execute is called while the CB is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig holds tunable parameters.
type CircuitBreakerConfig struct {
	Name             string
	FailureThreshold int           // consecutive failures to trip open (default: 3)
	SuccessThreshold int           // consecutive half-open successes to close (default: 1)
	OpenTimeout      time.Duration // time spent open before probing (default: 30s)
}

// DefaultCBConfig returns the advisor breaker settings.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             "advisor",
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenTimeout:      30 * time.Second,
	}
}

// CircuitBreaker is safe for concurrent use.
type CircuitBreaker struct {
	mu               sync.Mutex
	name             string
	state            CBState
	failureCount     int
	successCount     int
	openedAt         time.Time
	failureThreshold int
	successThreshold int
	openTimeout      time.Duration
	now              func() time.Time
}

// NewCircuitBreaker creates a CB in Closed state.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	return &CircuitBreaker{
		name:             cfg.Name,
		state:            CBClosed,
		failureThreshold: cfg.FailureThreshold,
		successThreshold: cfg.SuccessThreshold,
		openTimeout:      cfg.OpenTimeout,
		now:              time.Now,
	}
}

// State returns the current state, moving open → half-open once the timeout has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentState()
}

func (cb *CircuitBreaker) currentState() CBState {
	if cb.state == CBOpen && cb.now().Sub(cb.openedAt) >= cb.openTimeout {
		cb.transition(CBHalfOpen)
	}
	return cb.state
}

// Execute runs fn through the breaker. A context cancelled by the caller does
// not count as a failure of the remote side.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	cb.mu.Lock()
	state := cb.currentState()
	cb.mu.Unlock()

	if state == CBOpen {
		return ErrCircuitOpen
	}

	err := fn(ctx)

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch {
	case err == nil:
		cb.onSuccess()
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		// abandoned by the caller
	default:
		cb.onFailure()
	}
	return err
}

// onFailure must be called under lock.
func (cb *CircuitBreaker) onFailure() {
	cb.failureCount++
	switch cb.state {
	case CBClosed:
		if cb.failureCount >= cb.failureThreshold {
			cb.trip()
		}
	case CBHalfOpen:
		cb.trip()
	}
}

// onSuccess must be called under lock.
func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case CBClosed:
		cb.failureCount = 0
	case CBHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.successThreshold {
			cb.transition(CBClosed)
		}
	}
}

func (cb *CircuitBreaker) trip() {
	cb.openedAt = cb.now()
	cb.transition(CBOpen)
}

func (cb *CircuitBreaker) transition(to CBState) {
	if cb.state == to {
		return
	}
	log.Warn().
		Str("breaker", cb.name).
		Str("from", cb.state.String()).
		Str("to", to.String()).
		Msg("circuit breaker state change")
	cb.state = to
	cb.failureCount = 0
	cb.successCount = 0
}
