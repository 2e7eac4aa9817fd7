package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/ticket-service/domain"
)

// CancelTicketCommand represents the command to cancel an issued ticket
type CancelTicketCommand struct {
	TicketID string `json:"ticket_id"`
}

// CancelTicket use case
type CancelTicket struct {
	ticketRepository domain.TicketRepository
	eventPublisher   events.Publisher
}

// NewCancelTicket creates a new CancelTicket use case
func NewCancelTicket(ticketRepository domain.TicketRepository, eventPublisher events.Publisher) *CancelTicket {
	return &CancelTicket{
		ticketRepository: ticketRepository,
		eventPublisher:   eventPublisher,
	}
}

// Execute executes the cancel ticket use case
func (uc *CancelTicket) Execute(ctx context.Context, cmd *CancelTicketCommand) error {
	if cmd.TicketID == "" {
		return faults.Validation("ticket ID is required")
	}

	ticket, err := uc.ticketRepository.FindByID(ctx, models.ID(cmd.TicketID))
	if err != nil {
		return errors.Wrap(err, "failed to find ticket")
	}

	if ticket == nil {
		return faults.NotFound("ticket", cmd.TicketID)
	}

	if err := ticket.Cancel(); err != nil {
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
