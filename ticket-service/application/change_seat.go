package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/ticket-service/domain"
)

// ChangeSeatCommand represents the command to reassign a seat
type ChangeSeatCommand struct {
	TicketID   string `json:"ticket_id"`
	SeatNumber string `json:"seat_number"`
}

// ChangeSeat use case
type ChangeSeat struct {
	ticketRepository domain.TicketRepository
	eventPublisher   events.Publisher
}

// NewChangeSeat creates a new ChangeSeat use case
func NewChangeSeat(ticketRepository domain.TicketRepository, eventPublisher events.Publisher) *ChangeSeat {
	return &ChangeSeat{
		ticketRepository: ticketRepository,
		eventPublisher:   eventPublisher,
	}
}

// Execute executes the change seat use case
func (uc *ChangeSeat) Execute(ctx context.Context, cmd *ChangeSeatCommand) error {
	if cmd.TicketID == "" {
		return faults.Validation("ticket ID is required")
	}

	seat, err := domain.NewSeatNumber(cmd.SeatNumber)
	if err != nil {
		return err
	}

	ticket, err := uc.ticketRepository.FindByID(ctx, models.ID(cmd.TicketID))
	if err != nil {
		return errors.Wrap(err, "failed to find ticket")
	}

	if ticket == nil {
		return faults.NotFound("ticket", cmd.TicketID)
	}

	if err := ticket.ChangeSeat(seat); err != nil {
		return err
	}

	if err := uc.ticketRepository.Save(ctx, ticket); err != nil {
		return errors.Wrap(err, "failed to save ticket")
	}

	if err := uc.eventPublisher.Publish(ctx, ticket.Events()...); err != nil {
		return errors.Wrap(err, "failed to publish events")
	}
	ticket.ClearEvents()

	return nil
}
