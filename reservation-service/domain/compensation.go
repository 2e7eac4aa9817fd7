package domain

import "github.com/airline/reservation-system/shared/models"

// CompensationInfo is the ephemeral snapshot the compensator works from. It
// is built from whatever aggregate state existed at the point of failure and
// consumed once, never persisted.
type CompensationInfo struct {
	FlightID       models.ID
	PaymentID      models.ID
	TicketID       models.ID
	SeatsToRelease int
}
