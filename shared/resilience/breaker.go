// Package resilience guards the booking entry point with a circuit breaker.
// Only transport and system faults count as failures; declined payments and
// caller mistakes pass through without moving the breaker.
package resilience

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker"

	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/telemetry"
)

// Policy configures a breaker. Zero fields fall back to defaults.
type Policy struct {
	// FailureThreshold is the failure ratio at which the breaker opens,
	// evaluated only once MinRequests calls were observed in the window.
	FailureThreshold float64
	// MinRequests is the minimum number of calls in the window before the
	// threshold applies.
	MinRequests uint32
	// Window is the rolling interval over which counts accumulate.
	Window time.Duration
	// CoolDown is how long the breaker stays open before probing again.
	CoolDown time.Duration
}

// DefaultPolicy opens at 50% failures over at least 5 calls and probes again
// after 30 seconds.
func DefaultPolicy() Policy {
	return Policy{
		FailureThreshold: 0.5,
		MinRequests:      5,
		Window:           60 * time.Second,
		CoolDown:         30 * time.Second,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.FailureThreshold <= 0 {
		p.FailureThreshold = d.FailureThreshold
	}
	if p.MinRequests == 0 {
		p.MinRequests = d.MinRequests
	}
	if p.Window <= 0 {
		p.Window = d.Window
	}
	if p.CoolDown <= 0 {
		p.CoolDown = d.CoolDown
	}
	return p
}

// Breaker wraps an operation with circuit breaking. When the circuit is open
// calls fail fast with a transport fault instead of reaching the guarded
// operation.
type Breaker struct {
	cb          *gobreaker.CircuitBreaker
	name        string
	activations atomic.Int64
}

// NewBreaker creates a breaker for the named operation
func NewBreaker(name string, policy Policy) *Breaker {
	policy = policy.withDefaults()

	b := &Breaker{name: name}
	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    policy.Window,
		Timeout:     policy.CoolDown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < policy.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= policy.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return !faults.Counts(err)
		},
	})
	return b
}

// Execute runs fn through the breaker. An open circuit returns a transport
// fault without invoking fn, and the activation is counted.
func (b *Breaker) Execute(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		b.activations.Add(1)
		telemetry.RecordCounter(ctx, "circuit_breaker_activations",
			"Calls rejected by an open circuit breaker", 1)
		return nil, faults.Transport(b.name, err)
	}
	return result, err
}

// Activations returns how many calls were rejected by an open circuit
func (b *Breaker) Activations() int64 {
	return b.activations.Load()
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Name returns the guarded operation name
func (b *Breaker) Name() string {
	return b.name
}
