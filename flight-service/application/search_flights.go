package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/flight-service/domain"
	"github.com/airline/reservation-system/shared/faults"
)

// SearchFlightsQuery represents a route search
type SearchFlightsQuery struct {
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

// SearchFlights use case
type SearchFlights struct {
	flightRepository domain.FlightRepository
}

// NewSearchFlights creates a new SearchFlights use case
func NewSearchFlights(flightRepository domain.FlightRepository) *SearchFlights {
	return &SearchFlights{
		flightRepository: flightRepository,
	}
}

// Execute returns the flights serving the requested route
func (uc *SearchFlights) Execute(ctx context.Context, query *SearchFlightsQuery) ([]*FlightResponse, error) {
	if query.Departure == "" || query.Arrival == "" {
		return nil, faults.Validation("departure and arrival are required")
	}

	flights, err := uc.flightRepository.FindByRoute(ctx, query.Departure, query.Arrival)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search flights")
	}

	responses := make([]*FlightResponse, len(flights))
	for i, flight := range flights {
		responses[i] = toFlightResponse(flight)
	}

	return responses, nil
}
