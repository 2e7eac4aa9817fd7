package infrastructure

import (
	"context"
	"sync"

	"github.com/airline/reservation-system/payment-service/domain"
	"github.com/airline/reservation-system/shared/models"
)

// MemoryPaymentRepository is an RWMutex-guarded in-memory store
type MemoryPaymentRepository struct {
	mux      sync.RWMutex
	payments map[models.ID]*domain.Payment
}

// NewMemoryPaymentRepository creates an empty in-memory payment repository
func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{
		payments: make(map[models.ID]*domain.Payment),
	}
}

// Save stores a copy of the payment
func (r *MemoryPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.payments[payment.ID] = copyPayment(payment)
	return nil
}

// FindByID returns the payment or nil when absent
func (r *MemoryPaymentRepository) FindByID(ctx context.Context, id models.ID) (*domain.Payment, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	return copyPayment(payment), nil
}

// FindByReservationID returns the payments charged for a reservation
func (r *MemoryPaymentRepository) FindByReservationID(ctx context.Context, reservationID models.ID) ([]*domain.Payment, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	var result []*domain.Payment
	for _, payment := range r.payments {
		if payment.ReservationID == reservationID {
			result = append(result, copyPayment(payment))
		}
	}
	return result, nil
}

// FindByStatus returns the payments with the given status
func (r *MemoryPaymentRepository) FindByStatus(ctx context.Context, status domain.PaymentStatus) ([]*domain.Payment, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	var result []*domain.Payment
	for _, payment := range r.payments {
		if payment.Status == status {
			result = append(result, copyPayment(payment))
		}
	}
	return result, nil
}

func copyPayment(payment *domain.Payment) *domain.Payment {
	clone := *payment
	if payment.ProcessedAt != nil {
		t := *payment.ProcessedAt
		clone.ProcessedAt = &t
	}
	clone.ClearEvents()
	return &clone
}
