package domain

import (
	"context"
	"time"

	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationStatusPending          ReservationStatus = "PENDING"
	ReservationStatusSeatReserved     ReservationStatus = "SEAT_RESERVED"
	ReservationStatusPaymentCompleted ReservationStatus = "PAYMENT_COMPLETED"
	ReservationStatusConfirmed        ReservationStatus = "CONFIRMED"
	ReservationStatusFailed           ReservationStatus = "FAILED"
	ReservationStatusCancelled        ReservationStatus = "CANCELLED"
)

// Reservation aggregate root. The legal transitions are
// PENDING > SEAT_RESERVED > PAYMENT_COMPLETED > CONFIRMED, any non-terminal
// state to FAILED, and CONFIRMED to CANCELLED. Business fields freeze once a
// terminal state is reached.
type Reservation struct {
	ID          models.ID
	FlightID    models.ID
	Passenger   PassengerInfo
	PaymentID   models.ID
	TicketID    models.ID
	SeatNumber  string
	TotalAmount models.Money
	Status      ReservationStatus
	Message     string
	Timestamps  models.Timestamps
	Version     models.Version

	events []*events.Event
}

// CreateReservation factory method
func CreateReservation(flightID models.ID, passenger PassengerInfo) (*Reservation, error) {
	if flightID.IsZero() {
		return nil, faults.Validation("flight ID is required")
	}

	reservation := &Reservation{
		ID:         models.GeneratePrefixedID("RES"),
		FlightID:   flightID,
		Passenger:  passenger,
		Status:     ReservationStatusPending,
		Message:    "reservation initiated",
		Timestamps: models.NewTimestamps(),
		Version:    models.NewVersion(),
	}

	event := events.NewEvent(reservation.ID, events.ReservationCreatedEvent, ReservationInitiatedData{
		ReservationID: reservation.ID,
		FlightID:      flightID,
		PassengerName: passenger.Name,
	})

	reservation.recordEvent(event)
	return reservation, nil
}

// MarkSeatReserved records the seat reservation step
func (r *Reservation) MarkSeatReserved(seats int) error {
	if r.Status != ReservationStatusPending {
		return faults.AlreadyProcessed("reservation", r.ID.String(), string(r.Status))
	}

	r.Status = ReservationStatusSeatReserved
	r.Timestamps = r.Timestamps.Update()
	r.Version = r.Version.Update()

	event := events.NewEvent(r.ID, events.ReservationSeatReservedEvent, SeatsReservedData{
		ReservationID: r.ID,
		FlightID:      r.FlightID,
		SeatsCount:    seats,
	})

	r.recordEvent(event)
	return nil
}

// MarkPaymentCompleted records the payment step
func (r *Reservation) MarkPaymentCompleted(paymentID models.ID, amount models.Money) error {
	if r.Status != ReservationStatusSeatReserved {
		return faults.AlreadyProcessed("reservation", r.ID.String(), string(r.Status))
	}
	if paymentID.IsZero() {
		return faults.Validation("payment ID is required")
	}

	r.Status = ReservationStatusPaymentCompleted
	r.PaymentID = paymentID
	r.TotalAmount = amount
	r.Timestamps = r.Timestamps.Update()
	r.Version = r.Version.Update()

	event := events.NewEvent(r.ID, events.ReservationPaymentCompletedEvent, PaymentProcessedData{
		ReservationID: r.ID,
		PaymentID:     paymentID,
		Amount:        amount,
	})

	r.recordEvent(event)
	return nil
}

// Confirm records the ticket step and completes the reservation
func (r *Reservation) Confirm(ticketID models.ID, seatNumber string) error {
	if r.Status != ReservationStatusPaymentCompleted {
		return faults.AlreadyProcessed("reservation", r.ID.String(), string(r.Status))
	}
	if ticketID.IsZero() {
		return faults.Validation("ticket ID is required")
	}

	r.Status = ReservationStatusConfirmed
	r.TicketID = ticketID
	r.SeatNumber = seatNumber
	r.Message = "reservation completed"
	r.Timestamps = r.Timestamps.Update()
	r.Version = r.Version.Update()

	event := events.NewEvent(r.ID, events.ReservationCompletedEvent, ReservationCompletedData{
		ReservationID: r.ID,
		FlightID:      r.FlightID,
		PaymentID:     r.PaymentID,
		TicketID:      ticketID,
		SeatNumber:    seatNumber,
		TotalAmount:   r.TotalAmount,
	})

	r.recordEvent(event)
	return nil
}

// Fail moves the reservation to FAILED with the triggering failure's message.
// Terminal states stay put.
func (r *Reservation) Fail(stage, reason string) error {
	if r.IsTerminal() {
		return faults.AlreadyProcessed("reservation", r.ID.String(), string(r.Status))
	}

	r.Status = ReservationStatusFailed
	r.Message = reason
	r.Timestamps = r.Timestamps.Update()
	r.Version = r.Version.Update()

	event := events.NewEvent(r.ID, events.ReservationFailedEvent, ReservationFailedData{
		ReservationID: r.ID,
		FlightID:      r.FlightID,
		Stage:         stage,
		Reason:        reason,
	})

	r.recordEvent(event)
	return nil
}

// Cancel transitions a confirmed reservation to CANCELLED. Cancelling twice
// yields a distinct already-cancelled fault; cancelling any other status is a
// validation fault naming the current status.
func (r *Reservation) Cancel() error {
	if r.Status == ReservationStatusCancelled {
		return faults.AlreadyProcessed("reservation", r.ID.String(), string(ReservationStatusCancelled))
	}
	if r.Status != ReservationStatusConfirmed {
		return faults.Validation("only confirmed reservations can be cancelled, current status: %s", r.Status)
	}

	r.Status = ReservationStatusCancelled
	r.Message = "reservation cancelled"
	r.Timestamps = r.Timestamps.Update()
	r.Version = r.Version.Update()

	event := events.NewEvent(r.ID, events.ReservationCancelledEvent, ReservationCancelledData{
		ReservationID: r.ID,
		FlightID:      r.FlightID,
		CancelledAt:   time.Now(),
	})

	r.recordEvent(event)
	return nil
}

// RecordCompensation appends an audit event for a compensating action. The
// status is untouched; compensation outcomes never drive transitions.
func (r *Reservation) RecordCompensation(action string, succeeded bool, detail string) {
	event := events.NewEvent(r.ID, events.CompensationExecutedEvent, CompensationExecutedData{
		ReservationID: r.ID,
		Action:        action,
		Succeeded:     succeeded,
		Detail:        detail,
	}).WithMetadata("compensation", action)

	r.recordEvent(event)
}

// IsTerminal reports whether the reservation reached a final state
func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case ReservationStatusConfirmed, ReservationStatusFailed, ReservationStatusCancelled:
		return true
	default:
		return false
	}
}

// CompensationInfo snapshots the ids needed to undo completed steps
func (r *Reservation) CompensationInfo(seats int) CompensationInfo {
	return CompensationInfo{
		FlightID:       r.FlightID,
		PaymentID:      r.PaymentID,
		TicketID:       r.TicketID,
		SeatsToRelease: seats,
	}
}

// Events returns domain events
func (r *Reservation) Events() []*events.Event {
	return r.events
}

// ClearEvents clears domain events
func (r *Reservation) ClearEvents() {
	r.events = make([]*events.Event, 0)
}

func (r *Reservation) recordEvent(event *events.Event) {
	r.events = append(r.events, event)
}

// Event Data Structures
type ReservationInitiatedData struct {
	ReservationID models.ID `json:"reservation_id"`
	FlightID      models.ID `json:"flight_id"`
	PassengerName string    `json:"passenger_name"`
}

type SeatsReservedData struct {
	ReservationID models.ID `json:"reservation_id"`
	FlightID      models.ID `json:"flight_id"`
	SeatsCount    int       `json:"seats_count"`
}

type PaymentProcessedData struct {
	ReservationID models.ID    `json:"reservation_id"`
	PaymentID     models.ID    `json:"payment_id"`
	Amount        models.Money `json:"amount"`
}

type ReservationCompletedData struct {
	ReservationID models.ID    `json:"reservation_id"`
	FlightID      models.ID    `json:"flight_id"`
	PaymentID     models.ID    `json:"payment_id"`
	TicketID      models.ID    `json:"ticket_id"`
	SeatNumber    string       `json:"seat_number"`
	TotalAmount   models.Money `json:"total_amount"`
}

type ReservationFailedData struct {
	ReservationID models.ID `json:"reservation_id"`
	FlightID      models.ID `json:"flight_id"`
	Stage         string    `json:"stage"`
	Reason        string    `json:"reason"`
}

type ReservationCancelledData struct {
	ReservationID models.ID `json:"reservation_id"`
	FlightID      models.ID `json:"flight_id"`
	CancelledAt   time.Time `json:"cancelled_at"`
}

type CompensationExecutedData struct {
	ReservationID models.ID `json:"reservation_id"`
	Action        string    `json:"action"`
	Succeeded     bool      `json:"succeeded"`
	Detail        string    `json:"detail,omitempty"`
}

// ReservationRepository interface
type ReservationRepository interface {
	Save(ctx context.Context, reservation *Reservation) error
	FindByID(ctx context.Context, id models.ID) (*Reservation, error)
	FindByStatus(ctx context.Context, status ReservationStatus) ([]*Reservation, error)
	FindAll(ctx context.Context) ([]*Reservation, error)
	Delete(ctx context.Context, id models.ID) error
	Exists(ctx context.Context, id models.ID) (bool, error)
}
