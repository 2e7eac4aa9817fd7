package domain

import (
	"context"
	"time"

	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// TicketStatus represents the status of a ticket
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "PENDING"
	TicketStatusIssued    TicketStatus = "ISSUED"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

// Ticket aggregate root. Transitions are PENDING to ISSUED to CANCELLED; a
// seat change is allowed while ISSUED and does not move the status.
type Ticket struct {
	ID            models.ID
	ReservationID models.ID
	PaymentID     models.ID
	FlightID      models.ID
	PassengerName string
	Seat          SeatNumber
	Status        TicketStatus
	IssuedAt      *time.Time
	Message       string
	Timestamps    models.Timestamps
	Version       models.Version

	events []*events.Event
}

// CreateTicket factory method
func CreateTicket(reservationID, paymentID, flightID models.ID, passengerName string, seat SeatNumber) (*Ticket, error) {
	if reservationID.IsZero() {
		return nil, faults.Validation("reservation ID is required")
	}
	if flightID.IsZero() {
		return nil, faults.Validation("flight ID is required")
	}
	if passengerName == "" {
		return nil, faults.Validation("passenger name is required")
	}
	if seat == "" {
		return nil, faults.Validation("seat number is required")
	}

	return &Ticket{
		ID:            models.GeneratePrefixedID("TKT"),
		ReservationID: reservationID,
		PaymentID:     paymentID,
		FlightID:      flightID,
		PassengerName: passengerName,
		Seat:          seat,
		Status:        TicketStatusPending,
		Timestamps:    models.NewTimestamps(),
		Version:       models.NewVersion(),
	}, nil
}

// Issue marks the ticket as issued
func (t *Ticket) Issue() error {
	if t.Status != TicketStatusPending {
		return faults.AlreadyProcessed("ticket", t.ID.String(), string(t.Status))
	}

	now := time.Now()
	t.Status = TicketStatusIssued
	t.IssuedAt = &now
	t.Message = "ticket issued"
	t.Timestamps = t.Timestamps.Update()
	t.Version = t.Version.Update()

	event := events.NewEvent(t.ID, events.TicketGeneratedEvent, TicketIssuedData{
		TicketID:      t.ID,
		ReservationID: t.ReservationID,
		PaymentID:     t.PaymentID,
		FlightID:      t.FlightID,
		SeatNumber:    t.Seat.String(),
		IssuedAt:      now,
	})

	t.recordEvent(event)
	return nil
}

// Cancel compensates an issued ticket
func (t *Ticket) Cancel() error {
	if t.Status != TicketStatusIssued {
		return faults.AlreadyProcessed("ticket", t.ID.String(), string(t.Status))
	}

	t.Status = TicketStatusCancelled
	t.Message = "ticket cancelled"
	t.Timestamps = t.Timestamps.Update()
	t.Version = t.Version.Update()

	event := events.NewEvent(t.ID, events.TicketCancelledEvent, TicketCancelledData{
		TicketID:      t.ID,
		ReservationID: t.ReservationID,
		CancelledAt:   time.Now(),
	})

	t.recordEvent(event)
	return nil
}

// ChangeSeat reassigns the seat of an issued ticket. The status does not
// change; the move is recorded as its own event.
func (t *Ticket) ChangeSeat(newSeat SeatNumber) error {
	if t.Status != TicketStatusIssued {
		return faults.AlreadyProcessed("ticket", t.ID.String(), string(t.Status))
	}

	oldSeat := t.Seat
	t.Seat = newSeat
	t.Timestamps = t.Timestamps.Update()
	t.Version = t.Version.Update()

	event := events.NewEvent(t.ID, events.TicketSeatChangedEvent, TicketSeatChangedData{
		TicketID:      t.ID,
		ReservationID: t.ReservationID,
		OldSeatNumber: oldSeat.String(),
		NewSeatNumber: newSeat.String(),
	})

	t.recordEvent(event)
	return nil
}

// Events returns domain events
func (t *Ticket) Events() []*events.Event {
	return t.events
}

// ClearEvents clears domain events
func (t *Ticket) ClearEvents() {
	t.events = make([]*events.Event, 0)
}

func (t *Ticket) recordEvent(event *events.Event) {
	t.events = append(t.events, event)
}

// Event Data Structures
type TicketIssuedData struct {
	TicketID      models.ID `json:"ticket_id"`
	ReservationID models.ID `json:"reservation_id"`
	PaymentID     models.ID `json:"payment_id"`
	FlightID      models.ID `json:"flight_id"`
	SeatNumber    string    `json:"seat_number"`
	IssuedAt      time.Time `json:"issued_at"`
}

type TicketCancelledData struct {
	TicketID      models.ID `json:"ticket_id"`
	ReservationID models.ID `json:"reservation_id"`
	CancelledAt   time.Time `json:"cancelled_at"`
}

type TicketSeatChangedData struct {
	TicketID      models.ID `json:"ticket_id"`
	ReservationID models.ID `json:"reservation_id"`
	OldSeatNumber string    `json:"old_seat_number"`
	NewSeatNumber string    `json:"new_seat_number"`
}

// TicketRepository interface
type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	FindByID(ctx context.Context, id models.ID) (*Ticket, error)
	FindByReservationID(ctx context.Context, reservationID models.ID) ([]*Ticket, error)
	FindByStatus(ctx context.Context, status TicketStatus) ([]*Ticket, error)
	Count(ctx context.Context) (int, error)
}
