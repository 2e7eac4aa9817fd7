package handlers

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/shared/telemetry"
)

// ReservationEventHandlers is the final relay stage: it consumes
// ticket.issued and completes the pending reservation. Earlier stages that
// fail simply stop the chain; nothing here unwinds their side effects.
type ReservationEventHandlers struct {
	reservationRepository domain.ReservationRepository
	eventPublisher        events.Publisher
}

// NewReservationEventHandlers creates new reservation event handlers
func NewReservationEventHandlers(
	reservationRepository domain.ReservationRepository,
	eventPublisher events.Publisher,
) *ReservationEventHandlers {
	return &ReservationEventHandlers{
		reservationRepository: reservationRepository,
		eventPublisher:        eventPublisher,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *ReservationEventHandlers) HandlerID() string {
	return "reservation-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *ReservationEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.TicketIssuedEvent:
		return h.HandleTicketIssued(ctx, event)
	default:
		return nil
	}
}

// HandleTicketIssued walks the pending reservation through its remaining
// transitions and publishes reservation.completed.
func (h *ReservationEventHandlers) HandleTicketIssued(ctx context.Context, event *events.Event) error {
	payload, err := events.DecodePayload(event)
	if err != nil {
		return err
	}

	reservationID, err := payload.RequiredString("reservationId")
	if err != nil {
		return err
	}
	if _, err := payload.RequiredString("flightId"); err != nil {
		return err
	}
	paymentID, err := payload.RequiredString("paymentId")
	if err != nil {
		return err
	}
	ticketID, err := payload.RequiredString("ticketId")
	if err != nil {
		return err
	}
	seatNumber, err := payload.RequiredString("seatNumber")
	if err != nil {
		return err
	}

	reservation, err := h.reservationRepository.FindByID(ctx, models.ID(reservationID))
	if err != nil {
		return errors.Wrapf(err, "failed to load reservation %s", reservationID)
	}
	if reservation == nil {
		return faults.NotFound("reservation", reservationID)
	}

	var amount models.Money
	if value, ok := payload.OptionalFloat("amount"); ok {
		currency := payload.OptionalString("currency")
		if currency == "" {
			currency = "KRW"
		}
		amount, err = models.NewMoneyFromFloat(value, currency)
		if err != nil {
			return faults.Validation("invalid amount: %v", err)
		}
	}

	if err := reservation.MarkSeatReserved(1); err != nil {
		return errors.Wrapf(err, "reservation %s cannot record the seat step", reservationID)
	}
	if err := reservation.MarkPaymentCompleted(models.ID(paymentID), amount); err != nil {
		return errors.Wrapf(err, "reservation %s cannot record the payment step", reservationID)
	}
	if err := reservation.Confirm(models.ID(ticketID), seatNumber); err != nil {
		return errors.Wrapf(err, "reservation %s cannot be confirmed", reservationID)
	}

	if err := h.reservationRepository.Save(ctx, reservation); err != nil {
		return errors.Wrapf(err, "failed to save reservation %s", reservationID)
	}

	for _, e := range reservation.Events() {
		e.WithCorrelationID(event.CorrelationID)
	}
	if err := h.eventPublisher.Publish(ctx, reservation.Events()...); err != nil {
		return errors.Wrap(err, "failed to publish reservation completion events")
	}
	reservation.ClearEvents()

	telemetry.RecordCounter(ctx, "reservations_completed_async", "Reservations completed through the relay chain", 1)
	log.Printf("reservation relay: completed reservation %s with ticket %s seat %s", reservationID, ticketID, seatNumber)
	return nil
}
