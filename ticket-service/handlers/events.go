package handlers

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/ticket-service/application"
)

// TicketEventHandlers is the third relay stage: it consumes payment.approved,
// issues the ticket and emits ticket.issued for the reservation stage.
type TicketEventHandlers struct {
	issueTicket    *application.IssueTicket
	eventPublisher events.Publisher
}

// NewTicketEventHandlers creates new ticket event handlers
func NewTicketEventHandlers(issueTicket *application.IssueTicket, eventPublisher events.Publisher) *TicketEventHandlers {
	return &TicketEventHandlers{
		issueTicket:    issueTicket,
		eventPublisher: eventPublisher,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *TicketEventHandlers) HandlerID() string {
	return "ticket-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *TicketEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.PaymentApprovedEvent:
		return h.HandlePaymentApproved(ctx, event)
	default:
		return nil
	}
}

// HandlePaymentApproved issues the ticket and publishes ticket.issued
func (h *TicketEventHandlers) HandlePaymentApproved(ctx context.Context, event *events.Event) error {
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
	paymentID, err := payload.RequiredString("paymentId")
	if err != nil {
		return err
	}
	if _, err := payload.RequiredInt("seats"); err != nil {
		return err
	}
	amount, err := payload.RequiredFloat("amount")
	if err != nil {
		return err
	}

	passengerName := payload.OptionalString("passengerName")
	if passengerName == "" {
		passengerName = "UNKNOWN"
	}

	result, err := h.issueTicket.Execute(ctx, &application.IssueTicketCommand{
		ReservationID:  reservationID,
		PaymentID:      paymentID,
		FlightID:       flightID,
		PassengerName:  passengerName,
		SeatPreference: payload.OptionalString("seatPreference"),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to issue ticket for reservation %s", reservationID)
	}

	next := events.Payload{
		"reservationId": reservationID,
		"flightId":      flightID,
		"paymentId":     paymentID,
		"ticketId":      result.TicketID,
		"seatNumber":    result.SeatNumber,
		"amount":        amount,
	}
	if currency := payload.OptionalString("currency"); currency != "" {
		next["currency"] = currency
	}

	out := events.NewEvent(models.ID(reservationID), events.TicketIssuedEvent, next).
		WithCorrelationID(event.CorrelationID)

	if err := h.eventPublisher.Publish(ctx, out); err != nil {
		return errors.Wrap(err, "failed to publish ticket.issued")
	}

	log.Printf("ticket relay: issued ticket %s seat %s for reservation %s", result.TicketID, result.SeatNumber, reservationID)
	return nil
}
