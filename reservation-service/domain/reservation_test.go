package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

func testPassenger(t *testing.T) PassengerInfo {
	passenger, err := NewPassengerInfo("Hong Gildong", "hong@example.com", "010-1234-5678", "")
	assert.NoError(t, err)
	return passenger
}

func TestCreateReservation(t *testing.T) {
	reservation, err := CreateReservation("KE001", testPassenger(t))

	assert.NoError(t, err)
	assert.Equal(t, ReservationStatusPending, reservation.Status)
	assert.Equal(t, "reservation initiated", reservation.Message)
	assert.Contains(t, reservation.ID.String(), "RES-")
	assert.Len(t, reservation.Events(), 1)
	assert.Equal(t, events.ReservationCreatedEvent, reservation.Events()[0].EventType)
}

func TestCreateReservation_RequiresFlight(t *testing.T) {
	_, err := CreateReservation("", testPassenger(t))
	assert.True(t, faults.IsValidation(err))
}

func TestReservation_HappyPathTransitions(t *testing.T) {
	reservation, _ := CreateReservation("KE001", testPassenger(t))

	assert.NoError(t, reservation.MarkSeatReserved(1))
	assert.Equal(t, ReservationStatusSeatReserved, reservation.Status)

	amount := models.NewMoney(50000000, "KRW")
	assert.NoError(t, reservation.MarkPaymentCompleted("PAY-12345678", amount))
	assert.Equal(t, ReservationStatusPaymentCompleted, reservation.Status)
	assert.Equal(t, amount, reservation.TotalAmount)

	assert.NoError(t, reservation.Confirm("TKT-12345678", "12A"))
	assert.Equal(t, ReservationStatusConfirmed, reservation.Status)
	assert.Equal(t, "12A", reservation.SeatNumber)
	assert.Equal(t, "reservation completed", reservation.Message)

	types := make([]string, 0, len(reservation.Events()))
	for _, event := range reservation.Events() {
		types = append(types, event.EventType)
	}
	assert.Equal(t, []string{
		events.ReservationCreatedEvent,
		events.ReservationSeatReservedEvent,
		events.ReservationPaymentCompletedEvent,
		events.ReservationCompletedEvent,
	}, types)
}

func TestReservation_OutOfOrderTransitionsAreRejected(t *testing.T) {
	reservation, _ := CreateReservation("KE001", testPassenger(t))

	err := reservation.MarkPaymentCompleted("PAY-12345678", models.NewMoney(100, "KRW"))
	assert.True(t, faults.IsAlreadyProcessed(err))

	err = reservation.Confirm("TKT-12345678", "12A")
	assert.True(t, faults.IsAlreadyProcessed(err))

	assert.NoError(t, reservation.MarkSeatReserved(1))
	err = reservation.MarkSeatReserved(1)
	assert.True(t, faults.IsAlreadyProcessed(err))
}

func TestReservation_Fail(t *testing.T) {
	reservation, _ := CreateReservation("KE001", testPassenger(t))
	assert.NoError(t, reservation.MarkSeatReserved(1))

	assert.NoError(t, reservation.Fail("payment", "payment declined: insufficient funds"))
	assert.Equal(t, ReservationStatusFailed, reservation.Status)
	assert.Equal(t, "payment declined: insufficient funds", reservation.Message)
	assert.True(t, reservation.IsTerminal())

	// Terminal states stay put
	err := reservation.Fail("payment", "again")
	assert.True(t, faults.IsAlreadyProcessed(err))
}

func TestReservation_Cancel(t *testing.T) {
	reservation, _ := CreateReservation("KE001", testPassenger(t))

	// Only CONFIRMED reservations cancel
	err := reservation.Cancel()
	assert.True(t, faults.IsValidation(err))
	assert.Contains(t, err.Error(), "PENDING")

	assert.NoError(t, reservation.MarkSeatReserved(1))
	assert.NoError(t, reservation.MarkPaymentCompleted("PAY-12345678", models.NewMoney(100, "KRW")))
	assert.NoError(t, reservation.Confirm("TKT-12345678", "12A"))

	assert.NoError(t, reservation.Cancel())
	assert.Equal(t, ReservationStatusCancelled, reservation.Status)

	// A second cancel is a distinct already-cancelled outcome
	err = reservation.Cancel()
	assert.True(t, faults.IsAlreadyProcessed(err))
}

func TestReservation_RecordCompensation(t *testing.T) {
	reservation, _ := CreateReservation("KE001", testPassenger(t))
	assert.NoError(t, reservation.MarkSeatReserved(1))
	reservation.ClearEvents()

	reservation.RecordCompensation("release_seats", true, "")
	reservation.RecordCompensation("cancel_payment", false, "connection refused")

	assert.Equal(t, ReservationStatusSeatReserved, reservation.Status)
	assert.Len(t, reservation.Events(), 2)
	for _, event := range reservation.Events() {
		assert.Equal(t, events.CompensationExecutedEvent, event.EventType)
	}
}

func TestNewPassengerInfo(t *testing.T) {
	tests := []struct {
		name          string
		passengerName string
		email         string
		phone         string
		expectedError string
	}{
		{"valid", "Hong Gildong", "hong@example.com", "010-1234-5678", ""},
		{"missing name", "", "hong@example.com", "010-1234-5678", "name is required"},
		{"missing email", "Hong Gildong", "", "010-1234-5678", "email is required"},
		{"malformed email", "Hong Gildong", "not-an-email", "010-1234-5678", "email"},
		{"missing phone", "Hong Gildong", "hong@example.com", "", "phone is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPassengerInfo(tt.passengerName, tt.email, tt.phone, "")
			if tt.expectedError == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			}
		})
	}
}
