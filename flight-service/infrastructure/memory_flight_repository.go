package infrastructure

import (
	"context"
	"sync"

	"github.com/airline/reservation-system/flight-service/domain"
	"github.com/airline/reservation-system/shared/models"
)

// MemoryFlightRepository is an RWMutex-guarded in-memory store. Stored
// aggregates are copied on the way in and out so callers never share state.
type MemoryFlightRepository struct {
	mux     sync.RWMutex
	flights map[models.ID]*domain.Flight
}

// NewMemoryFlightRepository creates an empty in-memory flight repository
func NewMemoryFlightRepository() *MemoryFlightRepository {
	return &MemoryFlightRepository{
		flights: make(map[models.ID]*domain.Flight),
	}
}

// Save stores a copy of the flight
func (r *MemoryFlightRepository) Save(ctx context.Context, flight *domain.Flight) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.flights[flight.ID] = copyFlight(flight)
	return nil
}

// FindByID returns the flight or nil when absent
func (r *MemoryFlightRepository) FindByID(ctx context.Context, id models.ID) (*domain.Flight, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	flight, ok := r.flights[id]
	if !ok {
		return nil, nil
	}
	return copyFlight(flight), nil
}

// FindByRoute returns flights matching the departure/arrival pair
func (r *MemoryFlightRepository) FindByRoute(ctx context.Context, departure, arrival string) ([]*domain.Flight, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	var result []*domain.Flight
	for _, flight := range r.flights {
		if flight.Departure == departure && flight.Arrival == arrival {
			result = append(result, copyFlight(flight))
		}
	}
	return result, nil
}

// FindAll returns every stored flight
func (r *MemoryFlightRepository) FindAll(ctx context.Context) ([]*domain.Flight, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	result := make([]*domain.Flight, 0, len(r.flights))
	for _, flight := range r.flights {
		result = append(result, copyFlight(flight))
	}
	return result, nil
}

// Exists reports whether the flight is stored
func (r *MemoryFlightRepository) Exists(ctx context.Context, id models.ID) (bool, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	_, ok := r.flights[id]
	return ok, nil
}

// copyFlight clones the aggregate without its pending event log
func copyFlight(flight *domain.Flight) *domain.Flight {
	clone := *flight
	clone.ClearEvents()
	return &clone
}
