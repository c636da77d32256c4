package litle

import (
	"errors"
	"sync"
	"time"
)

// circuitState represents the current state of the circuit breaker
type circuitState int

const (
	stateClosed circuitState = iota
	stateOpen
	stateHalfOpen
)

func (s circuitState) String() string {
	switch s {
	case stateClosed:
		return "closed"
	case stateOpen:
		return "open"
	case stateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// errCircuitOpen is returned when the breaker rejects a call outright
var errCircuitOpen = errors.New("circuit breaker is open")

// circuitBreakerConfig configures breaker behavior
type circuitBreakerConfig struct {
	// maxFailures is the number of consecutive failures before opening
	maxFailures uint32
	// cooldown is how long to wait before probing with one request
	cooldown time.Duration
}

func defaultCircuitBreakerConfig() circuitBreakerConfig {
	return circuitBreakerConfig{
		maxFailures: 5,
		cooldown:    30 * time.Second,
	}
}

// circuitBreaker sheds load from the processor endpoints after
// consecutive transport failures. After the cooldown a single probe is
// allowed through; its outcome decides between closing and reopening.
type circuitBreaker struct {
	mu         sync.Mutex
	state      circuitState
	failures   uint32
	openedAt   time.Time
	probing    bool
	config     circuitBreakerConfig
}

func newCircuitBreaker(config circuitBreakerConfig) *circuitBreaker {
	return &circuitBreaker{state: stateClosed, config: config}
}

// call executes fn if the breaker allows it and records the outcome
func (cb *circuitBreaker) call(fn func() error) error {
	if err := cb.beforeCall(); err != nil {
		return err
	}
	err := fn()
	cb.afterCall(err)
	return err
}

func (cb *circuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case stateClosed:
		return nil
	case stateOpen:
		if time.Since(cb.openedAt) > cb.config.cooldown {
			cb.state = stateHalfOpen
			cb.probing = true
			return nil
		}
		return errCircuitOpen
	case stateHalfOpen:
		if cb.probing {
			return errCircuitOpen
		}
		cb.probing = true
		return nil
	}
	return nil
}

func (cb *circuitBreaker) afterCall(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == stateHalfOpen {
		cb.probing = false
		if err == nil {
			cb.state = stateClosed
			cb.failures = 0
			return
		}
		cb.state = stateOpen
		cb.openedAt = time.Now()
		return
	}

	if err == nil {
		cb.failures = 0
		return
	}
	cb.failures++
	if cb.failures >= cb.config.maxFailures {
		cb.state = stateOpen
		cb.openedAt = time.Now()
	}
}

// currentState reports the breaker state for logging
func (cb *circuitBreaker) currentState() circuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
