package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

func testFlight(t *testing.T, seats int) *Flight {
	departure := time.Now().Add(24 * time.Hour)
	flight, err := NewFlight("KE001", "Korean Air", "ICN", "JFK",
		departure, departure.Add(14*time.Hour), models.NewMoney(50000000, "KRW"), seats)
	assert.NoError(t, err)
	return flight
}

func TestNewFlight_Validation(t *testing.T) {
	departure := time.Now().Add(24 * time.Hour)
	arrival := departure.Add(2 * time.Hour)
	price := models.NewMoney(1000000, "KRW")

	tests := []struct {
		name          string
		id            string
		airline       string
		from, to      string
		price         models.Money
		seats         int
		expectedError string
	}{
		{"valid", "KE001", "Korean Air", "ICN", "JFK", price, 180, ""},
		{"missing id", "", "Korean Air", "ICN", "JFK", price, 180, "flight id is required"},
		{"missing airline", "KE001", "", "ICN", "JFK", price, 180, "airline is required"},
		{"missing route", "KE001", "Korean Air", "", "JFK", price, 180, "airports are required"},
		{"zero price", "KE001", "Korean Air", "ICN", "JFK", models.Money{}, 180, "price must be positive"},
		{"zero seats", "KE001", "Korean Air", "ICN", "JFK", price, 0, "seats must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFlight(tt.id, tt.airline, tt.from, tt.to, departure, arrival, tt.price, tt.seats)
			if tt.expectedError == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			}
		})
	}
}

func TestFlight_ReserveSeats(t *testing.T) {
	flight := testFlight(t, 2)

	assert.NoError(t, flight.ReserveSeats(1))
	assert.Equal(t, 1, flight.Seats.Available)
	assert.NoError(t, flight.ReserveSeats(1))
	assert.Equal(t, 0, flight.Seats.Available)

	// A shortage is a decline, not a system fault
	err := flight.ReserveSeats(1)
	assert.True(t, faults.IsBusinessDecline(err))
	assert.Contains(t, err.Error(), "not enough seats")
	assert.Equal(t, 0, flight.Seats.Available)
}

func TestFlight_ReleaseSeatsCapsAtTotal(t *testing.T) {
	flight := testFlight(t, 3)
	assert.NoError(t, flight.ReserveSeats(1))

	assert.NoError(t, flight.ReleaseSeats(1))
	assert.Equal(t, 3, flight.Seats.Available)

	// A retried compensation release must not over-credit the inventory
	assert.NoError(t, flight.ReleaseSeats(1))
	assert.Equal(t, 3, flight.Seats.Available)
}

func TestFlight_HasAvailability(t *testing.T) {
	flight := testFlight(t, 1)

	assert.True(t, flight.HasAvailability(1))
	assert.False(t, flight.HasAvailability(2))
	assert.False(t, flight.HasAvailability(0))
}
