package application

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/flight-service/domain"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// CheckAvailabilityQuery asks whether a flight can seat the requested count
type CheckAvailabilityQuery struct {
	FlightID string `json:"flight_id"`
	Seats    int    `json:"seats"`
}

// CheckAvailabilityResponse carries the answer plus a reason when negative
type CheckAvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// CheckAvailability use case
type CheckAvailability struct {
	flightRepository domain.FlightRepository
}

// NewCheckAvailability creates a new CheckAvailability use case
func NewCheckAvailability(flightRepository domain.FlightRepository) *CheckAvailability {
	return &CheckAvailability{
		flightRepository: flightRepository,
	}
}

// Execute executes the availability check
func (uc *CheckAvailability) Execute(ctx context.Context, query *CheckAvailabilityQuery) (*CheckAvailabilityResponse, error) {
	if query.FlightID == "" {
		return nil, faults.Validation("flight ID is required")
	}
	if query.Seats <= 0 {
		return nil, faults.Validation("seat count must be positive")
	}

	flight, err := uc.flightRepository.FindByID(ctx, models.ID(query.FlightID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find flight")
	}

	if flight == nil {
		return nil, faults.NotFound("flight", query.FlightID)
	}

	if !flight.HasAvailability(query.Seats) {
		return &CheckAvailabilityResponse{
			Available: false,
			Reason: fmt.Sprintf("flight %s has %d seats available, %d requested",
				flight.ID, flight.Seats.Available, query.Seats),
		}, nil
	}

	return &CheckAvailabilityResponse{Available: true}, nil
}
