package application

import (
	"context"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/resilience"
)

const fallbackMessage = "service temporarily unavailable"

// BookReservation is the public booking entry point: the saga wrapped in a
// circuit breaker. Transport and system faults feed the breaker; when the
// circuit is open callers get a well-formed FAILED result immediately
// instead of an error.
type BookReservation struct {
	create  *CreateReservation
	breaker *resilience.Breaker
}

// NewBookReservation creates a new BookReservation use case
func NewBookReservation(create *CreateReservation, breaker *resilience.Breaker) *BookReservation {
	return &BookReservation{
		create:  create,
		breaker: breaker,
	}
}

// Execute runs the booking saga through the breaker. Every outcome except a
// caller mistake (validation fault, unknown flight) comes back as a typed
// result; infrastructure failures are folded into a FAILED result after the
// breaker has counted them.
func (uc *BookReservation) Execute(ctx context.Context, cmd *CreateReservationCommand) (*ReservationResult, error) {
	result, err := uc.breaker.Execute(ctx, func() (interface{}, error) {
		return uc.create.Execute(ctx, cmd)
	})

	if res, ok := result.(*ReservationResult); ok && res != nil {
		// The saga already folded the failure into the result; the error,
		// if any, only existed for the breaker's bookkeeping.
		return res, nil
	}

	if err != nil {
		if faults.IsTransport(err) || faults.IsSystem(err) {
			return &ReservationResult{
				FlightID: cmd.FlightID,
				Status:   string(domain.ReservationStatusFailed),
				Message:  fallbackMessage,
			}, nil
		}
		return nil, err
	}

	return nil, faults.System("booking returned no result", nil)
}
