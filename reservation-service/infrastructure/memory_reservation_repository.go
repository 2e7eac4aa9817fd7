package infrastructure

import (
	"context"
	"sync"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/models"
)

// MemoryReservationRepository is an RWMutex-guarded in-memory store. Stored
// aggregates are copied on the way in and out so callers never share state.
type MemoryReservationRepository struct {
	mux          sync.RWMutex
	reservations map[models.ID]*domain.Reservation
}

// NewMemoryReservationRepository creates an empty in-memory reservation repository
func NewMemoryReservationRepository() *MemoryReservationRepository {
	return &MemoryReservationRepository{
		reservations: make(map[models.ID]*domain.Reservation),
	}
}

// Save stores a copy of the reservation
func (r *MemoryReservationRepository) Save(ctx context.Context, reservation *domain.Reservation) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.reservations[reservation.ID] = copyReservation(reservation)
	return nil
}

// FindByID returns the reservation or nil when absent
func (r *MemoryReservationRepository) FindByID(ctx context.Context, id models.ID) (*domain.Reservation, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	reservation, ok := r.reservations[id]
	if !ok {
		return nil, nil
	}
	return copyReservation(reservation), nil
}

// FindByStatus returns reservations in the given status
func (r *MemoryReservationRepository) FindByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	var result []*domain.Reservation
	for _, reservation := range r.reservations {
		if reservation.Status == status {
			result = append(result, copyReservation(reservation))
		}
	}
	return result, nil
}

// FindAll returns every stored reservation
func (r *MemoryReservationRepository) FindAll(ctx context.Context) ([]*domain.Reservation, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	result := make([]*domain.Reservation, 0, len(r.reservations))
	for _, reservation := range r.reservations {
		result = append(result, copyReservation(reservation))
	}
	return result, nil
}

// Delete removes the reservation if present
func (r *MemoryReservationRepository) Delete(ctx context.Context, id models.ID) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	delete(r.reservations, id)
	return nil
}

// Exists reports whether the reservation is stored
func (r *MemoryReservationRepository) Exists(ctx context.Context, id models.ID) (bool, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	_, ok := r.reservations[id]
	return ok, nil
}

// copyReservation clones the aggregate without its pending event log
func copyReservation(reservation *domain.Reservation) *domain.Reservation {
	clone := *reservation
	clone.ClearEvents()
	return &clone
}
