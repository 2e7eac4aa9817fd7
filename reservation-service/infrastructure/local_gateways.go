package infrastructure

import (
	"context"

	flightapp "github.com/airline/reservation-system/flight-service/application"
	paymentapp "github.com/airline/reservation-system/payment-service/application"
	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	ticketapp "github.com/airline/reservation-system/ticket-service/application"
)

// In-process gateway adapters. Each one wraps the downstream service's
// application layer directly, so the saga exercises the same use cases that
// the service's own HTTP and event handlers do.

// LocalFlightGateway adapts the flight service use cases
type LocalFlightGateway struct {
	getFlight         *flightapp.GetFlight
	checkAvailability *flightapp.CheckAvailability
	reserveSeats      *flightapp.ReserveSeats
	releaseSeats      *flightapp.ReleaseSeats
}

// NewLocalFlightGateway creates a new LocalFlightGateway
func NewLocalFlightGateway(
	getFlight *flightapp.GetFlight,
	checkAvailability *flightapp.CheckAvailability,
	reserveSeats *flightapp.ReserveSeats,
	releaseSeats *flightapp.ReleaseSeats,
) *LocalFlightGateway {
	return &LocalFlightGateway{
		getFlight:         getFlight,
		checkAvailability: checkAvailability,
		reserveSeats:      reserveSeats,
		releaseSeats:      releaseSeats,
	}
}

func (g *LocalFlightGateway) GetFlight(ctx context.Context, flightID models.ID) (*domain.FlightInfo, error) {
	flight, err := g.getFlight.Execute(ctx, &flightapp.GetFlightQuery{FlightID: flightID.String()})
	if err != nil {
		return nil, err
	}

	price, err := models.NewMoneyFromFloat(flight.Price, flight.Currency)
	if err != nil {
		return nil, faults.System("flight returned an invalid price", err)
	}

	return &domain.FlightInfo{
		ID:             models.ID(flight.FlightID),
		Airline:        flight.Airline,
		Departure:      flight.Departure,
		Arrival:        flight.Arrival,
		Price:          price,
		AvailableSeats: flight.AvailableSeats,
	}, nil
}

func (g *LocalFlightGateway) CheckAvailability(ctx context.Context, flightID models.ID, seats int) (*domain.AvailabilityResult, error) {
	resp, err := g.checkAvailability.Execute(ctx, &flightapp.CheckAvailabilityQuery{
		FlightID: flightID.String(),
		Seats:    seats,
	})
	if err != nil {
		return nil, err
	}
	return &domain.AvailabilityResult{Available: resp.Available, Reason: resp.Reason}, nil
}

func (g *LocalFlightGateway) ReserveSeats(ctx context.Context, flightID models.ID, seats int) error {
	return g.reserveSeats.Execute(ctx, &flightapp.ReserveSeatsCommand{
		FlightID: flightID.String(),
		Seats:    seats,
	})
}

func (g *LocalFlightGateway) ReleaseSeats(ctx context.Context, flightID models.ID, seats int) error {
	return g.releaseSeats.Execute(ctx, &flightapp.ReleaseSeatsCommand{
		FlightID: flightID.String(),
		Seats:    seats,
	})
}

// LocalPaymentGateway adapts the payment service use cases
type LocalPaymentGateway struct {
	processPayment *paymentapp.ProcessPayment
	cancelPayment  *paymentapp.CancelPayment
}

// NewLocalPaymentGateway creates a new LocalPaymentGateway
func NewLocalPaymentGateway(
	processPayment *paymentapp.ProcessPayment,
	cancelPayment *paymentapp.CancelPayment,
) *LocalPaymentGateway {
	return &LocalPaymentGateway{
		processPayment: processPayment,
		cancelPayment:  cancelPayment,
	}
}

func (g *LocalPaymentGateway) Charge(ctx context.Context, req *domain.ChargeRequest) (*domain.ChargeResult, error) {
	resp, err := g.processPayment.Execute(ctx, &paymentapp.ProcessPaymentCommand{
		ReservationID: req.ReservationID.String(),
		Amount:        req.Amount.Float64(),
		Currency:      req.Amount.Currency,
		Method:        req.Method,
		CustomerName:  req.CustomerName,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ChargeResult{
		PaymentID: models.ID(resp.PaymentID),
		Approved:  resp.Approved,
		Message:   resp.Message,
	}, nil
}

// Cancel is tolerant of retried compensations: an already cancelled payment
// counts as done.
func (g *LocalPaymentGateway) Cancel(ctx context.Context, paymentID models.ID) error {
	err := g.cancelPayment.Execute(ctx, &paymentapp.CancelPaymentCommand{PaymentID: paymentID.String()})
	if faults.IsAlreadyProcessed(err) {
		return nil
	}
	return err
}

// LocalTicketGateway adapts the ticket service use cases
type LocalTicketGateway struct {
	issueTicket  *ticketapp.IssueTicket
	cancelTicket *ticketapp.CancelTicket
}

// NewLocalTicketGateway creates a new LocalTicketGateway
func NewLocalTicketGateway(
	issueTicket *ticketapp.IssueTicket,
	cancelTicket *ticketapp.CancelTicket,
) *LocalTicketGateway {
	return &LocalTicketGateway{
		issueTicket:  issueTicket,
		cancelTicket: cancelTicket,
	}
}

func (g *LocalTicketGateway) Issue(ctx context.Context, req *domain.IssueRequest) (*domain.IssueResult, error) {
	resp, err := g.issueTicket.Execute(ctx, &ticketapp.IssueTicketCommand{
		ReservationID:  req.ReservationID.String(),
		PaymentID:      req.PaymentID.String(),
		FlightID:       req.FlightID.String(),
		PassengerName:  req.PassengerName,
		SeatPreference: req.SeatPreference,
	})
	if err != nil {
		return nil, err
	}

	return &domain.IssueResult{
		TicketID:   models.ID(resp.TicketID),
		SeatNumber: resp.SeatNumber,
	}, nil
}

// Cancel is tolerant of retried compensations: an already cancelled ticket
// counts as done.
func (g *LocalTicketGateway) Cancel(ctx context.Context, ticketID models.ID) error {
	err := g.cancelTicket.Execute(ctx, &ticketapp.CancelTicketCommand{TicketID: ticketID.String()})
	if faults.IsAlreadyProcessed(err) {
		return nil
	}
	return err
}
