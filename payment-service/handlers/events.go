package handlers

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/payment-service/application"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// PriceLookup resolves the charge amount for a flight when the upstream
// event did not carry it.
type PriceLookup interface {
	PriceOf(ctx context.Context, flightID string) (float64, string, error)
}

// PaymentEventHandlers is the second relay stage: it consumes seat.reserved,
// charges the payment and emits payment.approved. A declined or failed charge
// aborts this message; the reserved seats upstream stay reserved because the
// relay chain has no cross-topic rollback.
type PaymentEventHandlers struct {
	processPayment *application.ProcessPayment
	priceLookup    PriceLookup
	eventPublisher events.Publisher
}

// NewPaymentEventHandlers creates new payment event handlers
func NewPaymentEventHandlers(
	processPayment *application.ProcessPayment,
	priceLookup PriceLookup,
	eventPublisher events.Publisher,
) *PaymentEventHandlers {
	return &PaymentEventHandlers{
		processPayment: processPayment,
		priceLookup:    priceLookup,
		eventPublisher: eventPublisher,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *PaymentEventHandlers) HandlerID() string {
	return "payment-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *PaymentEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.SeatReservedEvent:
		return h.HandleSeatReserved(ctx, event)
	default:
		return nil
	}
}

// HandleSeatReserved charges the reservation and publishes payment.approved
func (h *PaymentEventHandlers) HandleSeatReserved(ctx context.Context, event *events.Event) error {
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
	seats, err := payload.RequiredInt("seatsCount")
	if err != nil {
		return err
	}

	amount, ok := payload.OptionalFloat("amount")
	currency := payload.OptionalString("currency")
	if !ok {
		amount, currency, err = h.priceLookup.PriceOf(ctx, flightID)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve price for flight %s", flightID)
		}
	}

	method := payload.OptionalString("paymentMethod")
	if method == "" {
		method = "CARD"
	}

	result, err := h.processPayment.Execute(ctx, &application.ProcessPaymentCommand{
		ReservationID: reservationID,
		Amount:        amount,
		Currency:      currency,
		Method:        method,
		CustomerName:  payload.OptionalString("passengerName"),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to process payment for reservation %s", reservationID)
	}

	if !result.Approved {
		// Propagate so the transport's redelivery semantics apply. Seats
		// reserved upstream are not released here.
		return faults.Decline("%s", result.Message)
	}

	next := events.Payload{
		"reservationId": reservationID,
		"flightId":      flightID,
		"paymentId":     result.PaymentID,
		"seats":         seats,
		"amount":        amount,
	}
	if currency != "" {
		next["currency"] = currency
	}
	if name := payload.OptionalString("passengerName"); name != "" {
		next["passengerName"] = name
	}
	if pref := payload.OptionalString("seatPreference"); pref != "" {
		next["seatPreference"] = pref
	}

	out := events.NewEvent(models.ID(reservationID), events.PaymentApprovedEvent, next).
		WithCorrelationID(event.CorrelationID)

	if err := h.eventPublisher.Publish(ctx, out); err != nil {
		return errors.Wrap(err, "failed to publish payment.approved")
	}

	log.Printf("payment relay: approved payment %s for reservation %s", result.PaymentID, reservationID)
	return nil
}
