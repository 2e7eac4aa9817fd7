package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/flight-service/domain"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// GetFlightQuery represents the query to get a flight
type GetFlightQuery struct {
	FlightID string `json:"flight_id"`
}

// FlightResponse represents a flight read model
type FlightResponse struct {
	FlightID       string    `json:"flight_id"`
	Airline        string    `json:"airline"`
	Departure      string    `json:"departure"`
	Arrival        string    `json:"arrival"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
}

// GetFlight use case
type GetFlight struct {
	flightRepository domain.FlightRepository
}

// NewGetFlight creates a new GetFlight use case
func NewGetFlight(flightRepository domain.FlightRepository) *GetFlight {
	return &GetFlight{
		flightRepository: flightRepository,
	}
}

// Execute executes the get flight use case
func (uc *GetFlight) Execute(ctx context.Context, query *GetFlightQuery) (*FlightResponse, error) {
	if query.FlightID == "" {
		return nil, faults.Validation("flight ID is required")
	}

	flight, err := uc.flightRepository.FindByID(ctx, models.ID(query.FlightID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find flight")
	}

	if flight == nil {
		return nil, faults.NotFound("flight", query.FlightID)
	}

	return toFlightResponse(flight), nil
}

func toFlightResponse(flight *domain.Flight) *FlightResponse {
	return &FlightResponse{
		FlightID:       flight.ID.String(),
		Airline:        flight.Airline,
		Departure:      flight.Departure,
		Arrival:        flight.Arrival,
		DepartureTime:  flight.DepartureTime,
		ArrivalTime:    flight.ArrivalTime,
		Price:          flight.Price.Float64(),
		Currency:       flight.Price.Currency,
		TotalSeats:     flight.Seats.Total,
		AvailableSeats: flight.Seats.Available,
	}
}
