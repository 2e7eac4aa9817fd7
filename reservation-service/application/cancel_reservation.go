package application

import (
	"context"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/shared/telemetry"
)

// CancelReservation cancels a confirmed reservation by unwinding all three
// steps (ticket, payment, seats) and moving the aggregate to CANCELLED. The
// unwind is best effort, same as saga compensation.
type CancelReservation struct {
	reservationRepository domain.ReservationRepository
	eventPublisher        events.Publisher
	compensator           *Compensator
}

// NewCancelReservation creates a new CancelReservation use case
func NewCancelReservation(
	reservationRepository domain.ReservationRepository,
	flightGateway domain.FlightGateway,
	paymentGateway domain.PaymentGateway,
	ticketGateway domain.TicketGateway,
	eventPublisher events.Publisher,
) *CancelReservation {
	return &CancelReservation{
		reservationRepository: reservationRepository,
		eventPublisher:        eventPublisher,
		compensator:           NewCompensator(flightGateway, paymentGateway, ticketGateway),
	}
}

// Execute cancels the reservation. Only CONFIRMED reservations can be
// cancelled; a second cancel fails with an already-processed fault and runs
// no compensating calls.
func (uc *CancelReservation) Execute(ctx context.Context, id models.ID) (*ReservationResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "CancelReservation.Execute")
	defer span.End()

	reservation, err := uc.reservationRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, faults.NotFound("reservation", id.String())
	}

	// The status guard runs before any side effects so an illegal cancel
	// touches nothing downstream.
	if err := reservation.Cancel(); err != nil {
		return nil, err
	}

	completed := []sagaStep{stepSeatsReserved, stepPaymentCompleted, stepTicketIssued}
	uc.compensator.Run(ctx, reservation, reservation.CompensationInfo(seatsPerReservation), completed)

	if err := uc.reservationRepository.Save(ctx, reservation); err != nil {
		return nil, err
	}

	if err := uc.eventPublisher.Publish(ctx, reservation.Events()...); err != nil {
		telemetry.RecordCounter(ctx, "reservation_event_publish_failures", "Events dropped after cancellation", 1)
	}
	reservation.ClearEvents()

	return toResult(reservation), nil
}
