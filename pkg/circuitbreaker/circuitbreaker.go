package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

var ErrOpen = errors.New("circuit breaker is open")

type Settings struct {
	Name             string
	FailureThreshold int
	Timeout          time.Duration

	// ShouldTrip classifies errors: only errors it reports true for
	// count toward opening the breaker. Nil means every error counts.
	ShouldTrip func(error) bool
}

// CircuitBreaker trips after consecutive failures and rejects calls
// until the timeout elapses, then lets one probe through.
type CircuitBreaker struct {
	name             string
	failureThreshold int
	timeout          time.Duration
	shouldTrip       func(error) bool

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
}

func New(settings Settings) *CircuitBreaker {
	if settings.FailureThreshold <= 0 {
		settings.FailureThreshold = 5
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}
	if settings.ShouldTrip == nil {
		settings.ShouldTrip = func(err error) bool { return err != nil }
	}
	return &CircuitBreaker{
		name:             settings.Name,
		failureThreshold: settings.FailureThreshold,
		timeout:          settings.Timeout,
		shouldTrip:       settings.ShouldTrip,
		state:            StateClosed,
	}
}

func (cb *CircuitBreaker) Name() string { return cb.name }

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.state == StateOpen {
		if time.Since(cb.lastFailure) < cb.timeout {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.state = StateHalfOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil && cb.shouldTrip(err) {
		cb.failures++
		cb.lastFailure = time.Now()
		if cb.state == StateHalfOpen || cb.failures >= cb.failureThreshold {
			cb.state = StateOpen
		}
		return err
	}
	if err != nil {
		// Caller-fault errors close the loop like a success: the
		// service answered, so the breaker has nothing to protect.
		cb.state = StateClosed
		cb.failures = 0
		return err
	}

	cb.state = StateClosed
	cb.failures = 0
	return nil
}
