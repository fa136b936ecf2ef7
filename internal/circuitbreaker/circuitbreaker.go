// Package circuitbreaker guards the MongoDB-backed stores (stock profiles,
// request logs) so a struggling database sheds load instead of stalling
// every cutting-plan request behind it.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned when calls are being rejected without reaching
// the protected resource.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the breaker's position in the closed/open/half-open cycle.
type State int

const (
	// StateClosed passes calls through and counts consecutive failures.
	StateClosed State = iota
	// StateOpen rejects calls until the cool-down expires.
	StateOpen
	// StateHalfOpen lets probe calls through to test recovery.
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

// Config tunes when the breaker trips and how it recovers.
type Config struct {
	// FailureThreshold is how many consecutive failures trip the breaker.
	FailureThreshold int
	// SuccessThreshold is how many consecutive half-open successes re-close it.
	SuccessThreshold int
	// Timeout is the cool-down before an open breaker admits a probe call.
	Timeout time.Duration
	// Name identifies the breaker in logs and health output.
	Name string
}

// DefaultConfig trips after five straight failures, probes after 30 seconds,
// and re-closes after two good probes.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

// CircuitBreaker tracks consecutive outcomes of a protected call and short
// circuits it while the backing resource looks unhealthy.
type CircuitBreaker struct {
	config    Config
	state     State
	failures  int
	successes int
	openedAt  time.Time
	mu        sync.RWMutex
}

// New returns a closed breaker with the given configuration.
func New(config Config) *CircuitBreaker {
	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
	}
}

// Execute runs fn under breaker protection. While the breaker is open and
// inside its cool-down, fn is not called and ErrCircuitOpen is returned.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.admit() {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.recordFailure()
		return err
	}

	cb.recordSuccess()
	return nil
}

// admit decides whether the call may proceed, moving an open breaker to
// half-open once the cool-down has elapsed.
func (cb *CircuitBreaker) admit() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return true
	}
	if time.Since(cb.openedAt) < cb.config.Timeout {
		return false
	}

	cb.state = StateHalfOpen
	cb.successes = 0
	log.Info().
		Str("circuit_breaker", cb.config.Name).
		Msg("Circuit breaker transitioning to half-open")
	return true
}

// recordFailure is called with the lock held.
func (cb *CircuitBreaker) recordFailure() {
	cb.failures++
	cb.openedAt = time.Now()

	switch cb.state {
	case StateClosed:
		if cb.failures >= cb.config.FailureThreshold {
			cb.state = StateOpen
			log.Warn().
				Str("circuit_breaker", cb.config.Name).
				Int("failure_count", cb.failures).
				Msg("Circuit breaker opened due to failures")
		}
	case StateHalfOpen:
		// A failed probe re-opens immediately.
		cb.state = StateOpen
		cb.failures = cb.config.FailureThreshold
		log.Warn().
			Str("circuit_breaker", cb.config.Name).
			Msg("Circuit breaker reopened after half-open failure")
	}
}

// recordSuccess is called with the lock held.
func (cb *CircuitBreaker) recordSuccess() {
	cb.failures = 0

	switch cb.state {
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.state = StateClosed
			cb.successes = 0
			log.Info().
				Str("circuit_breaker", cb.config.Name).
				Msg("Circuit breaker closed after successful recovery")
		}
	case StateClosed:
		cb.successes = 0
	}
}

// State returns the breaker's current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// IsOpen reports whether calls are currently being rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state == StateOpen
}

// Stats is a point-in-time snapshot for health reporting.
type Stats struct {
	State        string
	FailureCount int
	SuccessCount int
	LastFailure  time.Time
	IsHealthy    bool
}

// GetStats snapshots the breaker for the readiness endpoint.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		LastFailure:  cb.openedAt,
		IsHealthy:    cb.state == StateClosed,
	}
}
