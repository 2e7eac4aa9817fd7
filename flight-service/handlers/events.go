package handlers

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/flight-service/application"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/models"
)

// FlightEventHandlers is the first relay stage: it consumes
// reservation.requested, reserves the seats locally and emits seat.reserved
// for the payment stage. Failures propagate to the transport's redelivery,
// there is no rollback of upstream stages here.
type FlightEventHandlers struct {
	reserveSeats   *application.ReserveSeats
	getFlight      *application.GetFlight
	eventPublisher events.Publisher
}

// NewFlightEventHandlers creates new flight event handlers
func NewFlightEventHandlers(
	reserveSeats *application.ReserveSeats,
	getFlight *application.GetFlight,
	eventPublisher events.Publisher,
) *FlightEventHandlers {
	return &FlightEventHandlers{
		reserveSeats:   reserveSeats,
		getFlight:      getFlight,
		eventPublisher: eventPublisher,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *FlightEventHandlers) HandlerID() string {
	return "flight-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *FlightEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.ReservationRequestedEvent:
		return h.HandleReservationRequested(ctx, event)
	default:
		return nil
	}
}

// HandleReservationRequested reserves seats for a requested reservation and
// publishes seat.reserved downstream
func (h *FlightEventHandlers) HandleReservationRequested(ctx context.Context, event *events.Event) error {
	payload, err := events.DecodePayload(event)
	if err != nil {
		return err
	}

	reservationID, err := payload.RequiredString("reservationId")
	if err != nil {
		return err
	}
	flightID, err := payload.RequiredString("flightId")
	if err != nil {
		return err
	}
	passengerName, err := payload.RequiredString("passengerName")
	if err != nil {
		return err
	}

	seats := 1
	if n, err := payload.RequiredInt("seatsCount"); err == nil && n > 0 {
		seats = n
	}

	if err := h.reserveSeats.Execute(ctx, &application.ReserveSeatsCommand{
		FlightID: flightID,
		Seats:    seats,
	}); err != nil {
		return errors.Wrapf(err, "failed to reserve seats for reservation %s", reservationID)
	}

	next := events.Payload{
		"reservationId": reservationID,
		"flightId":      flightID,
		"seatsCount":    seats,
		"passengerName": passengerName,
	}

	// The flight owns the price, so carry it downstream and spare the
	// payment stage a lookup.
	if flight, err := h.getFlight.Execute(ctx, &application.GetFlightQuery{FlightID: flightID}); err == nil {
		next["amount"] = flight.Price
		next["currency"] = flight.Currency
	}
	if method := payload.OptionalString("paymentMethod"); method != "" {
		next["paymentMethod"] = method
	}
	if pref := payload.OptionalString("seatPreference"); pref != "" {
		next["seatPreference"] = pref
	}

	out := events.NewEvent(models.ID(reservationID), events.SeatReservedEvent, next).
		WithCorrelationID(event.CorrelationID)

	if err := h.eventPublisher.Publish(ctx, out); err != nil {
		return errors.Wrap(err, "failed to publish seat.reserved")
	}

	log.Printf("flight relay: reserved %d seat(s) on %s for reservation %s", seats, flightID, reservationID)
	return nil
}
