package application

import (
	"context"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/shared/telemetry"
)

// RequestReservation is the asynchronous booking entry point. It persists a
// PENDING reservation and emits a reservation.requested event; the relay
// workers take it from there. The caller gets the pending read model back
// immediately, before any downstream service has acted.
type RequestReservation struct {
	reservationRepository domain.ReservationRepository
	eventPublisher        events.Publisher
}

// NewRequestReservation creates a new RequestReservation use case
func NewRequestReservation(
	reservationRepository domain.ReservationRepository,
	eventPublisher events.Publisher,
) *RequestReservation {
	return &RequestReservation{
		reservationRepository: reservationRepository,
		eventPublisher:        eventPublisher,
	}
}

// Execute validates the request, stores the pending reservation and publishes
// the reservation.requested event that starts the relay chain.
func (uc *RequestReservation) Execute(ctx context.Context, cmd *CreateReservationCommand) (*ReservationResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "RequestReservation.Execute")
	defer span.End()

	if cmd.FlightID == "" {
		return nil, faults.Validation("flight ID is required")
	}
	if cmd.PaymentMethod != "" && !validPaymentMethods[cmd.PaymentMethod] {
		return nil, faults.Validation("unsupported payment method: %s", cmd.PaymentMethod)
	}

	passenger, err := domain.NewPassengerInfo(
		cmd.Passenger.Name,
		cmd.Passenger.Email,
		cmd.Passenger.Phone,
		cmd.Passenger.PassportNumber,
	)
	if err != nil {
		return nil, err
	}

	reservation, err := domain.CreateReservation(models.ID(cmd.FlightID), passenger)
	if err != nil {
		return nil, err
	}

	if err := uc.reservationRepository.Save(ctx, reservation); err != nil {
		return nil, err
	}

	payload := events.Payload{
		"reservationId": reservation.ID.String(),
		"flightId":      cmd.FlightID,
		"passengerName": passenger.Name,
		"seatsCount":    seatsPerReservation,
	}
	if cmd.PaymentMethod != "" {
		payload["paymentMethod"] = cmd.PaymentMethod
	}
	if cmd.SeatPreference != "" {
		payload["seatPreference"] = cmd.SeatPreference
	}

	event := events.NewEvent(reservation.ID, events.ReservationRequestedEvent, payload).
		WithCorrelationID(reservation.ID)
	if err := uc.eventPublisher.Publish(ctx, event); err != nil {
		return nil, err
	}
	reservation.ClearEvents()

	telemetry.RecordCounter(ctx, "reservation_requests_total", "Async reservation requests accepted", 1)

	return toResult(reservation), nil
}
