package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/metrics"
)

var (
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// Guards fetches against a single host. Hosts that keep failing are cut off
// for resetTimeout before a test request is allowed through.
type CircuitBreaker struct {
	mutex            sync.Mutex
	failureCount     int
	lastFailure      time.Time
	resetTimeout     time.Duration
	failureThreshold int
	host             string
	state            string // "closed", "open", "half-open"
}

func NewCircuitBreaker(host string, failureThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	cb := &CircuitBreaker{
		host:             host,
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		state:            "closed",
	}

	// Initialize metric with closed state (0)
	metrics.CircuitBreakerState.WithLabelValues(host).Set(0)

	return cb
}

func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mutex.Lock()

	if cb.state == "open" {
		// Check if we should retry (half-open)
		if time.Since(cb.lastFailure) > cb.resetTimeout {
			cb.state = "half-open"
			metrics.CircuitBreakerState.WithLabelValues(cb.host).Set(1)
			logger.Log.Info("Circuit half-open, allowing test fetch",
				zap.String("host", cb.host))
		} else {
			cb.mutex.Unlock()
			return ErrCircuitOpen
		}
	}

	cb.mutex.Unlock()

	err := fn()

	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if err != nil {
		cb.failureCount++
		cb.lastFailure = time.Now()

		if cb.state == "half-open" || cb.failureCount >= cb.failureThreshold {
			cb.state = "open"
			metrics.CircuitBreakerState.WithLabelValues(cb.host).Set(2)
			logger.Log.Warn("Circuit opened for host",
				zap.String("host", cb.host),
				zap.Int("failures", cb.failureCount),
				zap.Time("until", cb.lastFailure.Add(cb.resetTimeout)))
		}

		return err
	}

	// Success - reset if we were in half-open state
	if cb.state == "half-open" {
		cb.state = "closed"
		cb.failureCount = 0
		metrics.CircuitBreakerState.WithLabelValues(cb.host).Set(0)
		logger.Log.Info("Circuit closed after successful fetch",
			zap.String("host", cb.host))
	}

	return nil
}

func (cb *CircuitBreaker) State() string {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

// Hands out one breaker per host so a batch of crawls can share failure
// history for sites that resolve to the same host.
type Registry struct {
	mutex            sync.Mutex
	breakers         map[string]*CircuitBreaker
	failureThreshold int
	resetTimeout     time.Duration
}

func NewRegistry(failureThreshold int, resetTimeout time.Duration) *Registry {
	return &Registry{
		breakers:         make(map[string]*CircuitBreaker),
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
	}
}

func (r *Registry) ForHost(host string) *CircuitBreaker {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if cb, ok := r.breakers[host]; ok {
		return cb
	}
	cb := NewCircuitBreaker(host, r.failureThreshold, r.resetTimeout)
	r.breakers[host] = cb
	return cb
}
