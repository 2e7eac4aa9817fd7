package infrastructure

import (
	"context"
	"sync"

	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/ticket-service/domain"
)

// MemoryTicketRepository is an RWMutex-guarded in-memory store
type MemoryTicketRepository struct {
	mux     sync.RWMutex
	tickets map[models.ID]*domain.Ticket
}

// NewMemoryTicketRepository creates an empty in-memory ticket repository
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{
		tickets: make(map[models.ID]*domain.Ticket),
	}
}

// Save stores a copy of the ticket
func (r *MemoryTicketRepository) Save(ctx context.Context, ticket *domain.Ticket) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.tickets[ticket.ID] = copyTicket(ticket)
	return nil
}

// FindByID returns the ticket or nil when absent
func (r *MemoryTicketRepository) FindByID(ctx context.Context, id models.ID) (*domain.Ticket, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	return copyTicket(ticket), nil
}

// FindByReservationID returns the tickets issued for a reservation
func (r *MemoryTicketRepository) FindByReservationID(ctx context.Context, reservationID models.ID) ([]*domain.Ticket, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	var result []*domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.ReservationID == reservationID {
			result = append(result, copyTicket(ticket))
		}
	}
	return result, nil
}

// FindByStatus returns the tickets with the given status
func (r *MemoryTicketRepository) FindByStatus(ctx context.Context, status domain.TicketStatus) ([]*domain.Ticket, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	var result []*domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.Status == status {
			result = append(result, copyTicket(ticket))
		}
	}
	return result, nil
}

// Count returns the number of stored tickets
func (r *MemoryTicketRepository) Count(ctx context.Context) (int, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.tickets), nil
}

func copyTicket(ticket *domain.Ticket) *domain.Ticket {
	clone := *ticket
	if ticket.IssuedAt != nil {
		t := *ticket.IssuedAt
		clone.IssuedAt = &t
	}
	clone.ClearEvents()
	return &clone
}
