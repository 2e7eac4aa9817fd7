package application

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/reservation-service/mocks"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

func validBookingCommand() *CreateReservationCommand {
	return &CreateReservationCommand{
		FlightID: "KE001",
		Passenger: PassengerData{
			Name:  "Hong Gildong",
			Email: "hong@example.com",
			Phone: "010-1234-5678",
		},
		PaymentMethod: "CARD",
	}
}

func ke001Info() *domain.FlightInfo {
	return &domain.FlightInfo{
		ID:             "KE001",
		Airline:        "Korean Air",
		Departure:      "ICN",
		Arrival:        "JFK",
		Price:          models.NewMoney(50000000, "KRW"),
		AvailableSeats: 180,
	}
}

func TestCreateReservation_Execute(t *testing.T) {
	seatPattern := regexp.MustCompile(`^\d{1,3}[A-F]$`)

	tests := []struct {
		name           string
		command        *CreateReservationCommand
		setupMocks     func(*mocks.MockReservationRepository, *mocks.MockFlightGateway, *mocks.MockPaymentGateway, *mocks.MockTicketGateway, *mocks.MockPublisher)
		expectedError  string
		expectedStatus string
		check          func(*testing.T, *ReservationResult)
	}{
		{
			name:    "successful booking confirms the reservation",
			command: validBookingCommand(),
			setupMocks: func(repo *mocks.MockReservationRepository, flights *mocks.MockFlightGateway, payments *mocks.MockPaymentGateway, tickets *mocks.MockTicketGateway, publisher *mocks.MockPublisher) {
				flights.On("GetFlight", mock.Anything, models.ID("KE001")).Return(ke001Info(), nil).Once()
				flights.On("CheckAvailability", mock.Anything, models.ID("KE001"), 1).
					Return(&domain.AvailabilityResult{Available: true}, nil).Once()
				flights.On("ReserveSeats", mock.Anything, models.ID("KE001"), 1).Return(nil).Once()
				payments.On("Charge", mock.Anything, mock.AnythingOfType("*domain.ChargeRequest")).
					Return(&domain.ChargeResult{PaymentID: "PAY-12345678", Approved: true, Message: "payment approved"}, nil).Once()
				tickets.On("Issue", mock.Anything, mock.AnythingOfType("*domain.IssueRequest")).
					Return(&domain.IssueResult{TicketID: "TKT-12345678", SeatNumber: "12A"}, nil).Once()
				repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()
				publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedStatus: string(domain.ReservationStatusConfirmed),
			check: func(t *testing.T, result *ReservationResult) {
				assert.Equal(t, "PAY-12345678", result.PaymentID)
				assert.Equal(t, "TKT-12345678", result.TicketID)
				assert.Regexp(t, seatPattern, result.SeatNumber)
				assert.Equal(t, 500000.0, result.TotalAmount)
				assert.Equal(t, "KRW", result.Currency)
				assert.Equal(t, "reservation completed", result.Message)
			},
		},
		{
			name:    "declined payment releases the seat and fails the reservation",
			command: validBookingCommand(),
			setupMocks: func(repo *mocks.MockReservationRepository, flights *mocks.MockFlightGateway, payments *mocks.MockPaymentGateway, tickets *mocks.MockTicketGateway, publisher *mocks.MockPublisher) {
				flights.On("GetFlight", mock.Anything, models.ID("KE001")).Return(ke001Info(), nil).Once()
				flights.On("CheckAvailability", mock.Anything, models.ID("KE001"), 1).
					Return(&domain.AvailabilityResult{Available: true}, nil).Once()
				flights.On("ReserveSeats", mock.Anything, models.ID("KE001"), 1).Return(nil).Once()
				payments.On("Charge", mock.Anything, mock.AnythingOfType("*domain.ChargeRequest")).
					Return(&domain.ChargeResult{Approved: false, Message: "payment declined: insufficient funds"}, nil).Once()
				flights.On("ReleaseSeats", mock.Anything, models.ID("KE001"), 1).Return(nil).Once()
				repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()
				publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedStatus: string(domain.ReservationStatusFailed),
			check: func(t *testing.T, result *ReservationResult) {
				assert.Empty(t, result.PaymentID)
				assert.Empty(t, result.TicketID)
				assert.Equal(t, "payment declined: insufficient funds", result.Message)
			},
		},
		{
			name:    "payment transport error surfaces after compensation",
			command: validBookingCommand(),
			setupMocks: func(repo *mocks.MockReservationRepository, flights *mocks.MockFlightGateway, payments *mocks.MockPaymentGateway, tickets *mocks.MockTicketGateway, publisher *mocks.MockPublisher) {
				flights.On("GetFlight", mock.Anything, models.ID("KE001")).Return(ke001Info(), nil).Once()
				flights.On("CheckAvailability", mock.Anything, models.ID("KE001"), 1).
					Return(&domain.AvailabilityResult{Available: true}, nil).Once()
				flights.On("ReserveSeats", mock.Anything, models.ID("KE001"), 1).Return(nil).Once()
				payments.On("Charge", mock.Anything, mock.AnythingOfType("*domain.ChargeRequest")).
					Return(nil, faults.Transport("payment.charge", assert.AnError)).Once()
				flights.On("ReleaseSeats", mock.Anything, models.ID("KE001"), 1).Return(nil).Once()
				repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()
				publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedError:  "payment.charge",
			expectedStatus: string(domain.ReservationStatusFailed),
		},
		{
			name:    "ticket failure cancels the payment and releases the seat",
			command: validBookingCommand(),
			setupMocks: func(repo *mocks.MockReservationRepository, flights *mocks.MockFlightGateway, payments *mocks.MockPaymentGateway, tickets *mocks.MockTicketGateway, publisher *mocks.MockPublisher) {
				flights.On("GetFlight", mock.Anything, models.ID("KE001")).Return(ke001Info(), nil).Once()
				flights.On("CheckAvailability", mock.Anything, models.ID("KE001"), 1).
					Return(&domain.AvailabilityResult{Available: true}, nil).Once()
				flights.On("ReserveSeats", mock.Anything, models.ID("KE001"), 1).Return(nil).Once()
				payments.On("Charge", mock.Anything, mock.AnythingOfType("*domain.ChargeRequest")).
					Return(&domain.ChargeResult{PaymentID: "PAY-12345678", Approved: true, Message: "payment approved"}, nil).Once()
				tickets.On("Issue", mock.Anything, mock.AnythingOfType("*domain.IssueRequest")).
					Return(nil, faults.Transport("ticket.issue", assert.AnError)).Once()
				payments.On("Cancel", mock.Anything, models.ID("PAY-12345678")).Return(nil).Once()
				flights.On("ReleaseSeats", mock.Anything, models.ID("KE001"), 1).Return(nil).Once()
				repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()
				publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedError:  "ticket.issue",
			expectedStatus: string(domain.ReservationStatusFailed),
			check: func(t *testing.T, result *ReservationResult) {
				assert.Equal(t, "PAY-12345678", result.PaymentID)
				assert.Empty(t, result.TicketID)
			},
		},
		{
			name:    "unavailable flight fails without touching downstream services",
			command: validBookingCommand(),
			setupMocks: func(repo *mocks.MockReservationRepository, flights *mocks.MockFlightGateway, payments *mocks.MockPaymentGateway, tickets *mocks.MockTicketGateway, publisher *mocks.MockPublisher) {
				flights.On("GetFlight", mock.Anything, models.ID("KE001")).Return(ke001Info(), nil).Once()
				flights.On("CheckAvailability", mock.Anything, models.ID("KE001"), 1).
					Return(&domain.AvailabilityResult{Available: false, Reason: "flight KE001 has 0 seats available, 1 requested"}, nil).Once()
				repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()
				publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedStatus: string(domain.ReservationStatusFailed),
			check: func(t *testing.T, result *ReservationResult) {
				assert.Contains(t, result.Message, "0 seats available")
			},
		},
		{
			name:    "unknown flight returns a not found error",
			command: validBookingCommand(),
			setupMocks: func(repo *mocks.MockReservationRepository, flights *mocks.MockFlightGateway, payments *mocks.MockPaymentGateway, tickets *mocks.MockTicketGateway, publisher *mocks.MockPublisher) {
				flights.On("GetFlight", mock.Anything, models.ID("KE001")).
					Return(nil, faults.NotFound("flight", "KE001")).Once()
			},
			expectedError: "flight not found: KE001",
		},
		{
			name: "unsupported payment method is rejected upfront",
			command: &CreateReservationCommand{
				FlightID: "KE001",
				Passenger: PassengerData{
					Name:  "Hong Gildong",
					Email: "hong@example.com",
					Phone: "010-1234-5678",
				},
				PaymentMethod: "BITCOIN",
			},
			setupMocks: func(repo *mocks.MockReservationRepository, flights *mocks.MockFlightGateway, payments *mocks.MockPaymentGateway, tickets *mocks.MockTicketGateway, publisher *mocks.MockPublisher) {
				// No expectations, validation fails first
			},
			expectedError: "unsupported payment method",
		},
		{
			name: "invalid passenger email is rejected upfront",
			command: &CreateReservationCommand{
				FlightID: "KE001",
				Passenger: PassengerData{
					Name:  "Hong Gildong",
					Email: "not-an-email",
					Phone: "010-1234-5678",
				},
				PaymentMethod: "CARD",
			},
			setupMocks: func(repo *mocks.MockReservationRepository, flights *mocks.MockFlightGateway, payments *mocks.MockPaymentGateway, tickets *mocks.MockTicketGateway, publisher *mocks.MockPublisher) {
				// No expectations, validation fails first
			},
			expectedError: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockReservationRepository(t)
			flights := mocks.NewMockFlightGateway(t)
			payments := mocks.NewMockPaymentGateway(t)
			tickets := mocks.NewMockTicketGateway(t)
			publisher := mocks.NewMockPublisher(t)

			tt.setupMocks(repo, flights, payments, tickets, publisher)

			useCase := NewCreateReservation(repo, flights, payments, tickets, publisher)
			result, err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" && tt.expectedStatus == "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
				return
			}

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NotNil(t, result)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.NotEmpty(t, result.ReservationID)
			if tt.check != nil {
				tt.check(t, result)
			}
		})
	}
}

func TestCreateReservation_CompensationFailureDoesNotMaskOutcome(t *testing.T) {
	repo := mocks.NewMockReservationRepository(t)
	flights := mocks.NewMockFlightGateway(t)
	payments := mocks.NewMockPaymentGateway(t)
	tickets := mocks.NewMockTicketGateway(t)
	publisher := mocks.NewMockPublisher(t)

	flights.On("GetFlight", mock.Anything, models.ID("KE001")).Return(ke001Info(), nil).Once()
	flights.On("CheckAvailability", mock.Anything, models.ID("KE001"), 1).
		Return(&domain.AvailabilityResult{Available: true}, nil).Once()
	flights.On("ReserveSeats", mock.Anything, models.ID("KE001"), 1).Return(nil).Once()
	payments.On("Charge", mock.Anything, mock.AnythingOfType("*domain.ChargeRequest")).
		Return(&domain.ChargeResult{Approved: false, Message: "payment declined: limit exceeded"}, nil).Once()
	// The compensating release fails, but the saga outcome stays the same
	flights.On("ReleaseSeats", mock.Anything, models.ID("KE001"), 1).
		Return(faults.Transport("flight.release", assert.AnError)).Once()
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewCreateReservation(repo, flights, payments, tickets, publisher)
	result, err := useCase.Execute(context.Background(), validBookingCommand())

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, string(domain.ReservationStatusFailed), result.Status)
	assert.Equal(t, "payment declined: limit exceeded", result.Message)
}
