package intellib

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

var (
	// ErrCircuitBreakerOpened is returned when a circuit breaker blocks
	// access to its provider.
	ErrCircuitBreakerOpened = NewLookupError(ErrorKindTransport,
		errors.New("circuit breaker is opened"))

	// ErrCircuitBreakerIgnore marks an attempt which must not change
	// the failure counter.
	ErrCircuitBreakerIgnore = errors.New("circuit breaker should ignore this error")
)

type circuitBreakerState int

const (
	circuitBreakerStateClosed circuitBreakerState = iota
	circuitBreakerStateHalfOpened
	circuitBreakerStateOpened
)

type circuitBreakerCallback func(context.Context) (*http.Response, error)

// circuitBreaker protects a single provider endpoint. Closed state
// passes everything through; openThreshold consecutive failures move it
// to opened where every attempt is rejected; after halfOpenTimeout a
// single probe attempt is allowed and its outcome decides between
// closed and opened again. The failure counter is reset after
// resetFailuresTimeout of the closed state.
type circuitBreaker struct {
	mutex sync.Mutex

	state            circuitBreakerState
	failuresCount    uint32
	halfOpenProbing  bool
	halfOpenTimer    *time.Timer
	failuresTimer    *time.Timer

	openThreshold        uint32
	halfOpenTimeout      time.Duration
	resetFailuresTimeout time.Duration
}

func (c *circuitBreaker) Do(ctx context.Context, callback circuitBreakerCallback) (*http.Response, error) {
	if !c.admit() {
		return nil, ErrCircuitBreakerOpened
	}

	resp, err := callback(ctx)

	if errors.Is(err, ErrCircuitBreakerIgnore) {
		return resp, err
	}

	c.report(err == nil)

	return resp, err
}

func (c *circuitBreaker) admit() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	switch c.state {
	case circuitBreakerStateClosed:
		return true
	case circuitBreakerStateHalfOpened:
		if c.halfOpenProbing {
			return false
		}

		c.halfOpenProbing = true

		return true
	}

	return false
}

func (c *circuitBreaker) report(ok bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	switch c.state {
	case circuitBreakerStateClosed:
		if ok {
			return
		}

		c.failuresCount++

		if c.failuresCount > c.openThreshold {
			c.switchState(circuitBreakerStateOpened)
		}
	case circuitBreakerStateHalfOpened:
		if ok {
			c.switchState(circuitBreakerStateClosed)
		} else {
			c.switchState(circuitBreakerStateOpened)
		}
	}
}

func (c *circuitBreaker) switchState(state circuitBreakerState) {
	c.stopTimer(&c.halfOpenTimer)
	c.stopTimer(&c.failuresTimer)

	c.state = state
	c.failuresCount = 0
	c.halfOpenProbing = false

	switch state {
	case circuitBreakerStateClosed:
		c.failuresTimer = time.AfterFunc(c.resetFailuresTimeout, c.resetFailures)
	case circuitBreakerStateOpened:
		c.halfOpenTimer = time.AfterFunc(c.halfOpenTimeout, c.tryHalfOpen)
	}
}

func (c *circuitBreaker) resetFailures() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.state == circuitBreakerStateClosed {
		c.switchState(circuitBreakerStateClosed)
	}
}

func (c *circuitBreaker) tryHalfOpen() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.state == circuitBreakerStateOpened {
		c.switchState(circuitBreakerStateHalfOpened)
	}
}

func (c *circuitBreaker) stopTimer(timerRef **time.Timer) {
	if *timerRef == nil {
		return
	}

	(*timerRef).Stop()

	*timerRef = nil
}

func newCircuitBreaker(openThreshold uint32,
	halfOpenTimeout, resetFailuresTimeout time.Duration) *circuitBreaker {
	cb := &circuitBreaker{
		openThreshold:        openThreshold,
		halfOpenTimeout:      halfOpenTimeout,
		resetFailuresTimeout: resetFailuresTimeout,
	}

	cb.switchState(circuitBreakerStateClosed)

	return cb
}
