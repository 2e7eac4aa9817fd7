package application

import (
	"context"
	"log"

	"go.opentelemetry.io/otel/attribute"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/telemetry"
)

// Compensator undoes completed saga steps in reverse order. Compensation is
// best effort: a failed compensating call is logged and recorded on the
// aggregate's event log, then the remaining steps still run. It never
// returns an error to the caller.
type Compensator struct {
	flightGateway  domain.FlightGateway
	paymentGateway domain.PaymentGateway
	ticketGateway  domain.TicketGateway
}

// NewCompensator creates a new Compensator
func NewCompensator(
	flightGateway domain.FlightGateway,
	paymentGateway domain.PaymentGateway,
	ticketGateway domain.TicketGateway,
) *Compensator {
	return &Compensator{
		flightGateway:  flightGateway,
		paymentGateway: paymentGateway,
		ticketGateway:  ticketGateway,
	}
}

// Run compensates the completed steps in reverse completion order: cancel the
// ticket, cancel the payment, release the seats. Each action's outcome is
// recorded on the reservation for auditing.
func (c *Compensator) Run(
	ctx context.Context,
	reservation *domain.Reservation,
	info domain.CompensationInfo,
	completed []sagaStep,
) {
	for i := len(completed) - 1; i >= 0; i-- {
		switch completed[i] {
		case stepTicketIssued:
			c.record(ctx, reservation, "cancel_ticket",
				c.ticketGateway.Cancel(ctx, info.TicketID))
		case stepPaymentCompleted:
			c.record(ctx, reservation, "cancel_payment",
				c.paymentGateway.Cancel(ctx, info.PaymentID))
		case stepSeatsReserved:
			c.record(ctx, reservation, "release_seats",
				c.flightGateway.ReleaseSeats(ctx, info.FlightID, info.SeatsToRelease))
		}
	}
}

func (c *Compensator) record(ctx context.Context, reservation *domain.Reservation, action string, err error) {
	outcome := "success"
	detail := ""
	if err != nil {
		outcome = "failure"
		detail = err.Error()
		log.Printf("compensation %s failed for reservation %s: %v", action, reservation.ID, err)
	}

	reservation.RecordCompensation(action, err == nil, detail)
	telemetry.RecordCounter(ctx, "compensations_total", "Compensating actions executed", 1,
		attribute.String("action", action),
		attribute.String("outcome", outcome))
}
