// Package mocks provides hand-written testify mocks for the reservation
// service's collaborator interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/models"
)

// MockFlightGateway mocks domain.FlightGateway
type MockFlightGateway struct {
	mock.Mock
}

func NewMockFlightGateway(t *testing.T) *MockFlightGateway {
	m := &MockFlightGateway{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFlightGateway) GetFlight(ctx context.Context, flightID models.ID) (*domain.FlightInfo, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightInfo), args.Error(1)
}

func (m *MockFlightGateway) CheckAvailability(ctx context.Context, flightID models.ID, seats int) (*domain.AvailabilityResult, error) {
	args := m.Called(ctx, flightID, seats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityResult), args.Error(1)
}

func (m *MockFlightGateway) ReserveSeats(ctx context.Context, flightID models.ID, seats int) error {
	args := m.Called(ctx, flightID, seats)
	return args.Error(0)
}

func (m *MockFlightGateway) ReleaseSeats(ctx context.Context, flightID models.ID, seats int) error {
	args := m.Called(ctx, flightID, seats)
	return args.Error(0)
}

// MockPaymentGateway mocks domain.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func NewMockPaymentGateway(t *testing.T) *MockPaymentGateway {
	m := &MockPaymentGateway{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPaymentGateway) Charge(ctx context.Context, req *domain.ChargeRequest) (*domain.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChargeResult), args.Error(1)
}

func (m *MockPaymentGateway) Cancel(ctx context.Context, paymentID models.ID) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

// MockTicketGateway mocks domain.TicketGateway
type MockTicketGateway struct {
	mock.Mock
}

func NewMockTicketGateway(t *testing.T) *MockTicketGateway {
	m := &MockTicketGateway{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTicketGateway) Issue(ctx context.Context, req *domain.IssueRequest) (*domain.IssueResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssueResult), args.Error(1)
}

func (m *MockTicketGateway) Cancel(ctx context.Context, ticketID models.ID) error {
	args := m.Called(ctx, ticketID)
	return args.Error(0)
}

// MockReservationRepository mocks domain.ReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

func NewMockReservationRepository(t *testing.T) *MockReservationRepository {
	m := &MockReservationRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReservationRepository) Save(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id models.ID) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindAll(ctx context.Context) ([]*domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Delete(ctx context.Context, id models.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepository) Exists(ctx context.Context, id models.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockPublisher mocks events.Publisher
type MockPublisher struct {
	mock.Mock
}

func NewMockPublisher(t *testing.T) *MockPublisher {
	m := &MockPublisher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Publish records the whole event batch as a single argument so expectations
// do not depend on how many events a use case emits.
func (m *MockPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}
