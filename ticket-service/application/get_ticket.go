package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/ticket-service/domain"
)

// GetTicketQuery represents the query to get a ticket
type GetTicketQuery struct {
	TicketID string `json:"ticket_id"`
}

// GetTicketResponse represents the ticket read model
type GetTicketResponse struct {
	TicketID      string     `json:"ticket_id"`
	ReservationID string     `json:"reservation_id"`
	PaymentID     string     `json:"payment_id,omitempty"`
	FlightID      string     `json:"flight_id"`
	PassengerName string     `json:"passenger_name"`
	SeatNumber    string     `json:"seat_number"`
	Status        string     `json:"status"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	Message       string     `json:"message"`
}

// GetTicket use case
type GetTicket struct {
	ticketRepository domain.TicketRepository
}

// NewGetTicket creates a new GetTicket use case
func NewGetTicket(ticketRepository domain.TicketRepository) *GetTicket {
	return &GetTicket{
		ticketRepository: ticketRepository,
	}
}

// Execute executes the get ticket use case
func (uc *GetTicket) Execute(ctx context.Context, query *GetTicketQuery) (*GetTicketResponse, error) {
	if query.TicketID == "" {
		return nil, faults.Validation("ticket ID is required")
	}

	ticket, err := uc.ticketRepository.FindByID(ctx, models.ID(query.TicketID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find ticket")
	}

	if ticket == nil {
		return nil, faults.NotFound("ticket", query.TicketID)
	}

	return &GetTicketResponse{
		TicketID:      ticket.ID.String(),
		ReservationID: ticket.ReservationID.String(),
		PaymentID:     ticket.PaymentID.String(),
		FlightID:      ticket.FlightID.String(),
		PassengerName: ticket.PassengerName,
		SeatNumber:    ticket.Seat.String(),
		Status:        string(ticket.Status),
		IssuedAt:      ticket.IssuedAt,
		Message:       ticket.Message,
	}, nil
}
