package domain

import (
	"context"
	"time"

	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// SeatInventory tracks the seat counts of a flight. Available never leaves
// the range [0, Total].
type SeatInventory struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

// Flight aggregate root
type Flight struct {
	ID            models.ID
	Airline       string
	Departure     string
	Arrival       string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Price         models.Money
	Seats         SeatInventory
	Timestamps    models.Timestamps
	Version       models.Version

	events []*events.Event
}

// NewFlight factory method. The id is the airline flight code ("KE001"),
// not a generated uuid, since flights are referenced by code everywhere.
func NewFlight(id, airline, departure, arrival string, departureTime, arrivalTime time.Time, price models.Money, totalSeats int) (*Flight, error) {
	if id == "" {
		return nil, faults.Validation("flight id is required")
	}
	if airline == "" {
		return nil, faults.Validation("airline is required")
	}
	if departure == "" || arrival == "" {
		return nil, faults.Validation("departure and arrival airports are required")
	}
	if !price.IsPositive() {
		return nil, faults.Validation("flight price must be positive")
	}
	if totalSeats <= 0 {
		return nil, faults.Validation("total seats must be positive")
	}

	return &Flight{
		ID:            models.ID(id),
		Airline:       airline,
		Departure:     departure,
		Arrival:       arrival,
		DepartureTime: departureTime,
		ArrivalTime:   arrivalTime,
		Price:         price,
		Seats: SeatInventory{
			Total:     totalSeats,
			Available: totalSeats,
		},
		Timestamps: models.NewTimestamps(),
		Version:    models.NewVersion(),
	}, nil
}

// HasAvailability reports whether count seats can be reserved
func (f *Flight) HasAvailability(count int) bool {
	return count > 0 && f.Seats.Available >= count
}

// ReserveSeats takes count seats out of the available pool. A shortage is an
// expected business outcome, not a system fault.
func (f *Flight) ReserveSeats(count int) error {
	if count <= 0 {
		return faults.Validation("seat count must be positive")
	}
	if f.Seats.Available < count {
		return faults.Decline("not enough seats available on flight %s: requested %d, available %d",
			f.ID, count, f.Seats.Available)
	}

	f.Seats.Available -= count
	f.Timestamps = f.Timestamps.Update()
	f.Version = f.Version.Update()

	event := events.NewEvent(f.ID, events.FlightSeatsReservedEvent, FlightSeatsReservedData{
		FlightID:       f.ID,
		SeatsReserved:  count,
		SeatsRemaining: f.Seats.Available,
	})

	f.recordEvent(event)
	return nil
}

// ReleaseSeats returns count seats to the available pool, capped at the
// flight's total. The cap makes repeated releases for the same reservation
// safe during compensation.
func (f *Flight) ReleaseSeats(count int) error {
	if count <= 0 {
		return faults.Validation("seat count must be positive")
	}

	f.Seats.Available += count
	if f.Seats.Available > f.Seats.Total {
		f.Seats.Available = f.Seats.Total
	}
	f.Timestamps = f.Timestamps.Update()
	f.Version = f.Version.Update()

	event := events.NewEvent(f.ID, events.FlightSeatsReleasedEvent, FlightSeatsReleasedData{
		FlightID:       f.ID,
		SeatsReleased:  count,
		SeatsRemaining: f.Seats.Available,
	})

	f.recordEvent(event)
	return nil
}

// Events returns domain events
func (f *Flight) Events() []*events.Event {
	return f.events
}

// ClearEvents clears domain events
func (f *Flight) ClearEvents() {
	f.events = make([]*events.Event, 0)
}

func (f *Flight) recordEvent(event *events.Event) {
	f.events = append(f.events, event)
}

// Event Data Structures
type FlightSeatsReservedData struct {
	FlightID       models.ID `json:"flight_id"`
	SeatsReserved  int       `json:"seats_reserved"`
	SeatsRemaining int       `json:"seats_remaining"`
}

type FlightSeatsReleasedData struct {
	FlightID       models.ID `json:"flight_id"`
	SeatsReleased  int       `json:"seats_released"`
	SeatsRemaining int       `json:"seats_remaining"`
}

// FlightRepository interface
type FlightRepository interface {
	Save(ctx context.Context, flight *Flight) error
	FindByID(ctx context.Context, id models.ID) (*Flight, error)
	FindByRoute(ctx context.Context, departure, arrival string) ([]*Flight, error)
	FindAll(ctx context.Context) ([]*Flight, error)
	Exists(ctx context.Context, id models.ID) (bool, error)
}
