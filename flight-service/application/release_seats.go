package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/flight-service/domain"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// ReleaseSeatsCommand represents the command to release seats on a flight
type ReleaseSeatsCommand struct {
	FlightID string `json:"flight_id"`
	Seats    int    `json:"seats"`
}

// ReleaseSeats use case. Releasing is idempotent from the caller's point of
// view: the inventory caps at the flight total, so compensation retries do
// not over-credit seats.
type ReleaseSeats struct {
	flightRepository domain.FlightRepository
	eventPublisher   events.Publisher
}

// NewReleaseSeats creates a new ReleaseSeats use case
func NewReleaseSeats(flightRepository domain.FlightRepository, eventPublisher events.Publisher) *ReleaseSeats {
	return &ReleaseSeats{
		flightRepository: flightRepository,
		eventPublisher:   eventPublisher,
	}
}

// Execute executes the release seats use case
func (uc *ReleaseSeats) Execute(ctx context.Context, cmd *ReleaseSeatsCommand) error {
	if cmd.FlightID == "" {
		return faults.Validation("flight ID is required")
	}

	flight, err := uc.flightRepository.FindByID(ctx, models.ID(cmd.FlightID))
	if err != nil {
		return errors.Wrap(err, "failed to find flight")
	}

	if flight == nil {
		return faults.NotFound("flight", cmd.FlightID)
	}

	if err := flight.ReleaseSeats(cmd.Seats); err != nil {
		return err
	}

	if err := uc.flightRepository.Save(ctx, flight); err != nil {
		return errors.Wrap(err, "failed to save flight")
	}

	if err := uc.eventPublisher.Publish(ctx, flight.Events()...); err != nil {
		return errors.Wrap(err, "failed to publish events")
	}
	flight.ClearEvents()

	return nil
}
