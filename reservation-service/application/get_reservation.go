package application

import (
	"context"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/shared/telemetry"
)

// GetReservation handles reservation lookups
type GetReservation struct {
	reservationRepository domain.ReservationRepository
}

// NewGetReservation creates a new GetReservation use case
func NewGetReservation(reservationRepository domain.ReservationRepository) *GetReservation {
	return &GetReservation{reservationRepository: reservationRepository}
}

// Execute returns the reservation read model for the given id
func (uc *GetReservation) Execute(ctx context.Context, id models.ID) (*ReservationResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "GetReservation.Execute")
	defer span.End()

	reservation, err := uc.reservationRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, faults.NotFound("reservation", id.String())
	}

	return toResult(reservation), nil
}

// ListReservations handles listing reservations, optionally by status
type ListReservations struct {
	reservationRepository domain.ReservationRepository
}

// NewListReservations creates a new ListReservations use case
func NewListReservations(reservationRepository domain.ReservationRepository) *ListReservations {
	return &ListReservations{reservationRepository: reservationRepository}
}

// Execute returns all reservations, filtered by status when one is given
func (uc *ListReservations) Execute(ctx context.Context, status string) ([]*ReservationResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ListReservations.Execute")
	defer span.End()

	var (
		reservations []*domain.Reservation
		err          error
	)
	if status != "" {
		reservations, err = uc.reservationRepository.FindByStatus(ctx, domain.ReservationStatus(status))
	} else {
		reservations, err = uc.reservationRepository.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	results := make([]*ReservationResult, 0, len(reservations))
	for _, reservation := range reservations {
		results = append(results, toResult(reservation))
	}
	return results, nil
}
