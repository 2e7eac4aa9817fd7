package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/flight-service/domain"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// ReserveSeatsCommand represents the command to reserve seats on a flight
type ReserveSeatsCommand struct {
	FlightID string `json:"flight_id"`
	Seats    int    `json:"seats"`
}

// ReserveSeats use case
type ReserveSeats struct {
	flightRepository domain.FlightRepository
	eventPublisher   events.Publisher
}

// NewReserveSeats creates a new ReserveSeats use case
func NewReserveSeats(flightRepository domain.FlightRepository, eventPublisher events.Publisher) *ReserveSeats {
	return &ReserveSeats{
		flightRepository: flightRepository,
		eventPublisher:   eventPublisher,
	}
}

// Execute executes the reserve seats use case
func (uc *ReserveSeats) Execute(ctx context.Context, cmd *ReserveSeatsCommand) error {
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

	if err := flight.ReserveSeats(cmd.Seats); err != nil {
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
