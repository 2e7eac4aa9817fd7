package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"

	"github.com/airline/reservation-system/shared/faults"
)

func testPolicy() Policy {
	return Policy{
		FailureThreshold: 0.5,
		MinRequests:      3,
		Window:           time.Minute,
		CoolDown:         time.Minute,
	}
}

func TestBreaker_OpensOnTransportFailures(t *testing.T) {
	breaker := NewBreaker("test-op", testPolicy())
	ctx := context.Background()

	calls := 0
	failing := func() (interface{}, error) {
		calls++
		return nil, faults.Transport("downstream", assert.AnError)
	}

	for i := 0; i < 3; i++ {
		_, err := breaker.Execute(ctx, failing)
		assert.Error(t, err)
		assert.True(t, faults.IsTransport(err))
	}
	assert.Equal(t, gobreaker.StateOpen, breaker.State())
	assert.Equal(t, 3, calls)

	// The open circuit rejects without invoking the operation
	_, err := breaker.Execute(ctx, failing)
	assert.Error(t, err)
	assert.True(t, faults.IsTransport(err))
	assert.Equal(t, 3, calls)
	assert.Equal(t, int64(1), breaker.Activations())
}

func TestBreaker_BusinessDeclinesDoNotTrip(t *testing.T) {
	breaker := NewBreaker("test-op", testPolicy())
	ctx := context.Background()

	declining := func() (interface{}, error) {
		return nil, faults.Decline("payment declined")
	}

	for i := 0; i < 10; i++ {
		_, err := breaker.Execute(ctx, declining)
		assert.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, breaker.State())
	assert.Equal(t, int64(0), breaker.Activations())
}

func TestBreaker_ValidationErrorsDoNotTrip(t *testing.T) {
	breaker := NewBreaker("test-op", testPolicy())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := breaker.Execute(ctx, func() (interface{}, error) {
			return nil, faults.Validation("flight ID is required")
		})
		assert.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, breaker.State())
}

func TestBreaker_MixedOutcomesBelowThresholdStayClosed(t *testing.T) {
	breaker := NewBreaker("test-op", testPolicy())
	ctx := context.Background()

	outcomes := []error{
		nil,
		faults.Transport("downstream", assert.AnError),
		nil,
		nil,
		faults.Transport("downstream", assert.AnError),
		nil,
	}
	for _, outcome := range outcomes {
		breaker.Execute(ctx, func() (interface{}, error) {
			return "ok", outcome
		})
	}
	assert.Equal(t, gobreaker.StateClosed, breaker.State())
}

func TestBreaker_PassesResultThrough(t *testing.T) {
	breaker := NewBreaker("test-op", testPolicy())

	result, err := breaker.Execute(context.Background(), func() (interface{}, error) {
		return "payload", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "payload", result)
}

func TestBreaker_ResultSurvivesCountedError(t *testing.T) {
	breaker := NewBreaker("test-op", testPolicy())

	// A failing saga still returns its FAILED read model alongside the error
	result, err := breaker.Execute(context.Background(), func() (interface{}, error) {
		return "failed-result", faults.Transport("downstream", assert.AnError)
	})
	assert.Error(t, err)
	assert.Equal(t, "failed-result", result)
}
