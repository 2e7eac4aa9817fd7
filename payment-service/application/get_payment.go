package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/payment-service/domain"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// GetPaymentQuery represents the query to get a payment
type GetPaymentQuery struct {
	PaymentID string `json:"payment_id"`
}

// GetPaymentResponse represents the payment read model
type GetPaymentResponse struct {
	PaymentID     string     `json:"payment_id"`
	ReservationID string     `json:"reservation_id"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Method        string     `json:"method"`
	CustomerName  string     `json:"customer_name"`
	Status        string     `json:"status"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	Message       string     `json:"message"`
}

// GetPayment use case
type GetPayment struct {
	paymentRepository domain.PaymentRepository
}

// NewGetPayment creates a new GetPayment use case
func NewGetPayment(paymentRepository domain.PaymentRepository) *GetPayment {
	return &GetPayment{
		paymentRepository: paymentRepository,
	}
}

// Execute executes the get payment use case
func (uc *GetPayment) Execute(ctx context.Context, query *GetPaymentQuery) (*GetPaymentResponse, error) {
	if query.PaymentID == "" {
		return nil, faults.Validation("payment ID is required")
	}

	payment, err := uc.paymentRepository.FindByID(ctx, models.ID(query.PaymentID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}

	if payment == nil {
		return nil, faults.NotFound("payment", query.PaymentID)
	}

	return &GetPaymentResponse{
		PaymentID:     payment.ID.String(),
		ReservationID: payment.ReservationID.String(),
		Amount:        payment.Amount.Float64(),
		Currency:      payment.Amount.Currency,
		Method:        payment.Method.String(),
		CustomerName:  payment.CustomerName,
		Status:        string(payment.Status),
		ProcessedAt:   payment.ProcessedAt,
		Message:       payment.Message,
	}, nil
}
