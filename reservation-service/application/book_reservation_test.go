package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/reservation-service/mocks"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/shared/resilience"
)

func newBookingUnderTest(t *testing.T, minRequests uint32) (*BookReservation, *mocks.MockFlightGateway) {
	repo := mocks.NewMockReservationRepository(t)
	flights := mocks.NewMockFlightGateway(t)
	payments := mocks.NewMockPaymentGateway(t)
	tickets := mocks.NewMockTicketGateway(t)
	publisher := mocks.NewMockPublisher(t)

	create := NewCreateReservation(repo, flights, payments, tickets, publisher)
	breaker := resilience.NewBreaker("create-reservation", resilience.Policy{
		FailureThreshold: 0.5,
		MinRequests:      minRequests,
		Window:           time.Minute,
		CoolDown:         time.Minute,
	})
	return NewBookReservation(create, breaker), flights
}

func TestBookReservation_OpenBreakerReturnsFallback(t *testing.T) {
	booking, flights := newBookingUnderTest(t, 3)

	// Three straight transport failures open the breaker; the fourth call
	// must not reach the flight gateway at all.
	flights.On("GetFlight", mock.Anything, models.ID("KE001")).
		Return(nil, faults.Transport("flight.get", assert.AnError)).Times(3)

	for i := 0; i < 3; i++ {
		result, err := booking.Execute(context.Background(), validBookingCommand())
		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, string(domain.ReservationStatusFailed), result.Status)
		assert.Equal(t, "service temporarily unavailable", result.Message)
	}

	result, err := booking.Execute(context.Background(), validBookingCommand())
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, string(domain.ReservationStatusFailed), result.Status)
	assert.Equal(t, "service temporarily unavailable", result.Message)
	assert.Equal(t, "KE001", result.FlightID)
}

func TestBookReservation_ValidationErrorsBypassFallback(t *testing.T) {
	booking, _ := newBookingUnderTest(t, 3)

	cmd := validBookingCommand()
	cmd.PaymentMethod = "BITCOIN"

	result, err := booking.Execute(context.Background(), cmd)
	assert.Error(t, err)
	assert.True(t, faults.IsValidation(err))
	assert.Nil(t, result)
}

func TestBookReservation_NotFoundBypassesFallback(t *testing.T) {
	booking, flights := newBookingUnderTest(t, 3)

	flights.On("GetFlight", mock.Anything, models.ID("KE001")).
		Return(nil, faults.NotFound("flight", "KE001")).Once()

	result, err := booking.Execute(context.Background(), validBookingCommand())
	assert.Error(t, err)
	assert.True(t, faults.IsNotFound(err))
	assert.Nil(t, result)
}
