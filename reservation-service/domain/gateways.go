package domain

import (
	"context"

	"github.com/airline/reservation-system/shared/models"
)

// The orchestrator only ever talks to the other services through these
// narrow gateways. Any of the calls may fail with a transport fault, which
// the orchestrator treats uniformly regardless of which gateway raised it.

// FlightInfo is the orchestrator's read model of a flight
type FlightInfo struct {
	ID             models.ID
	Airline        string
	Departure      string
	Arrival        string
	Price          models.Money
	AvailableSeats int
}

// AvailabilityResult carries the availability answer plus a reason when negative
type AvailabilityResult struct {
	Available bool
	Reason    string
}

// ChargeRequest asks the payment service to charge a reservation
type ChargeRequest struct {
	ReservationID models.ID
	Amount        models.Money
	Method        string
	CustomerName  string
}

// ChargeResult is the outcome of a charge. A decline is a normal result with
// Approved false, not an error.
type ChargeResult struct {
	PaymentID models.ID
	Approved  bool
	Message   string
}

// IssueRequest asks the ticket service to issue a ticket
type IssueRequest struct {
	ReservationID  models.ID
	PaymentID      models.ID
	FlightID       models.ID
	PassengerName  string
	SeatPreference string
}

// IssueResult is the outcome of a ticket issuance
type IssueResult struct {
	TicketID   models.ID
	SeatNumber string
}

// FlightGateway exposes the flight service operations the saga needs
type FlightGateway interface {
	GetFlight(ctx context.Context, flightID models.ID) (*FlightInfo, error)
	CheckAvailability(ctx context.Context, flightID models.ID, seats int) (*AvailabilityResult, error)
	ReserveSeats(ctx context.Context, flightID models.ID, seats int) error
	// ReleaseSeats is idempotent: repeated releases for the same
	// reservation must not error.
	ReleaseSeats(ctx context.Context, flightID models.ID, seats int) error
}

// PaymentGateway exposes the payment service operations the saga needs
type PaymentGateway interface {
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
	Cancel(ctx context.Context, paymentID models.ID) error
}

// TicketGateway exposes the ticket service operations the saga needs
type TicketGateway interface {
	Issue(ctx context.Context, req *IssueRequest) (*IssueResult, error)
	Cancel(ctx context.Context, ticketID models.ID) error
}
