package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/ticket-service/domain"
)

// IssueTicketCommand represents the command to issue a ticket
type IssueTicketCommand struct {
	ReservationID  string `json:"reservation_id"`
	PaymentID      string `json:"payment_id"`
	FlightID       string `json:"flight_id"`
	PassengerName  string `json:"passenger_name"`
	SeatPreference string `json:"seat_preference,omitempty"`
}

// IssueTicketResponse carries the issued ticket id and seat
type IssueTicketResponse struct {
	TicketID   string `json:"ticket_id"`
	SeatNumber string `json:"seat_number"`
}

// IssueTicket use case. The seat comes from the passenger's preference when
// it is a valid seat number, otherwise it is allocated from the issued count.
type IssueTicket struct {
	ticketRepository domain.TicketRepository
	eventPublisher   events.Publisher
}

// NewIssueTicket creates a new IssueTicket use case
func NewIssueTicket(ticketRepository domain.TicketRepository, eventPublisher events.Publisher) *IssueTicket {
	return &IssueTicket{
		ticketRepository: ticketRepository,
		eventPublisher:   eventPublisher,
	}
}

// Execute executes the issue ticket use case
func (uc *IssueTicket) Execute(ctx context.Context, cmd *IssueTicketCommand) (*IssueTicketResponse, error) {
	if cmd.ReservationID == "" {
		return nil, faults.Validation("reservation ID is required")
	}
	if cmd.FlightID == "" {
		return nil, faults.Validation("flight ID is required")
	}

	seat, err := uc.resolveSeat(ctx, cmd.SeatPreference)
	if err != nil {
		return nil, err
	}

	ticket, err := domain.CreateTicket(
		models.ID(cmd.ReservationID),
		models.ID(cmd.PaymentID),
		models.ID(cmd.FlightID),
		cmd.PassengerName,
		seat,
	)
	if err != nil {
		return nil, err
	}

	if err := ticket.Issue(); err != nil {
		return nil, err
	}

	if err := uc.ticketRepository.Save(ctx, ticket); err != nil {
		return nil, errors.Wrap(err, "failed to save ticket")
	}

	if err := uc.eventPublisher.Publish(ctx, ticket.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish events")
	}
	ticket.ClearEvents()

	return &IssueTicketResponse{
		TicketID:   ticket.ID.String(),
		SeatNumber: ticket.Seat.String(),
	}, nil
}

func (uc *IssueTicket) resolveSeat(ctx context.Context, preference string) (domain.SeatNumber, error) {
	if preference != "" {
		if seat, err := domain.NewSeatNumber(preference); err == nil {
			return seat, nil
		}
		// An unusable preference falls back to allocation rather than
		// failing the whole saga over a nicety.
	}

	issued, err := uc.ticketRepository.Count(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to count tickets")
	}
	return domain.AllocateSeat(issued), nil
}
