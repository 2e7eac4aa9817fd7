package domain

import (
	"context"
	"time"

	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSuccess   PaymentStatus = "SUCCESS"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// MaxChargeAmount is the largest single charge the gateway accepts, in
// currency major units.
const MaxChargeAmount = 100_000_000

// Payment aggregate root. Transitions are PENDING to SUCCESS or FAILED, and
// SUCCESS to CANCELLED as the single compensating move.
type Payment struct {
	ID            models.ID
	ReservationID models.ID
	Amount        models.Money
	Method        PaymentMethod
	CustomerName  string
	Status        PaymentStatus
	ProcessedAt   *time.Time
	Message       string
	Timestamps    models.Timestamps
	Version       models.Version

	events []*events.Event
}

// CreatePayment factory method
func CreatePayment(reservationID models.ID, amount models.Money, method PaymentMethod, customerName string) (*Payment, error) {
	if reservationID.IsZero() {
		return nil, faults.Validation("reservation ID is required")
	}
	if !amount.IsPositive() {
		return nil, faults.Validation("payment amount must be positive")
	}
	if amount.Float64() > MaxChargeAmount {
		return nil, faults.Validation("payment amount exceeds the maximum single charge of %d", MaxChargeAmount)
	}

	return &Payment{
		ID:            models.GeneratePrefixedID("PAY"),
		ReservationID: reservationID,
		Amount:        amount,
		Method:        method,
		CustomerName:  customerName,
		Status:        PaymentStatusPending,
		Timestamps:    models.NewTimestamps(),
		Version:       models.NewVersion(),
	}, nil
}

// Approve marks the payment as successful
func (p *Payment) Approve() error {
	if p.Status != PaymentStatusPending {
		return faults.AlreadyProcessed("payment", p.ID.String(), string(p.Status))
	}

	now := time.Now()
	p.Status = PaymentStatusSuccess
	p.ProcessedAt = &now
	p.Message = "payment approved"
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.PaymentProcessedEvent, PaymentApprovedData{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        p.Method,
		ProcessedAt:   now,
	})

	p.recordEvent(event)
	return nil
}

// Reject marks the payment as declined by the gateway
func (p *Payment) Reject(reason string) error {
	if p.Status != PaymentStatusPending {
		return faults.AlreadyProcessed("payment", p.ID.String(), string(p.Status))
	}

	now := time.Now()
	p.Status = PaymentStatusFailed
	p.ProcessedAt = &now
	p.Message = reason
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.PaymentDeclinedEvent, PaymentDeclinedData{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Reason:        reason,
		ProcessedAt:   now,
	})

	p.recordEvent(event)
	return nil
}

// Cancel compensates a successful payment
func (p *Payment) Cancel() error {
	if p.Status != PaymentStatusSuccess {
		return faults.AlreadyProcessed("payment", p.ID.String(), string(p.Status))
	}

	p.Status = PaymentStatusCancelled
	p.Message = "payment cancelled"
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.PaymentCancelledEvent, PaymentCancelledData{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		CancelledAt:   time.Now(),
	})

	p.recordEvent(event)
	return nil
}

// Events returns domain events
func (p *Payment) Events() []*events.Event {
	return p.events
}

// ClearEvents clears domain events
func (p *Payment) ClearEvents() {
	p.events = make([]*events.Event, 0)
}

func (p *Payment) recordEvent(event *events.Event) {
	p.events = append(p.events, event)
}

// Event Data Structures
type PaymentApprovedData struct {
	PaymentID     models.ID     `json:"payment_id"`
	ReservationID models.ID     `json:"reservation_id"`
	Amount        models.Money  `json:"amount"`
	Method        PaymentMethod `json:"method"`
	ProcessedAt   time.Time     `json:"processed_at"`
}

type PaymentDeclinedData struct {
	PaymentID     models.ID    `json:"payment_id"`
	ReservationID models.ID    `json:"reservation_id"`
	Amount        models.Money `json:"amount"`
	Reason        string       `json:"reason"`
	ProcessedAt   time.Time    `json:"processed_at"`
}

type PaymentCancelledData struct {
	PaymentID     models.ID `json:"payment_id"`
	ReservationID models.ID `json:"reservation_id"`
	CancelledAt   time.Time `json:"cancelled_at"`
}

// PaymentRepository interface
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id models.ID) (*Payment, error)
	FindByReservationID(ctx context.Context, reservationID models.ID) ([]*Payment, error)
	FindByStatus(ctx context.Context, status PaymentStatus) ([]*Payment, error)
}
