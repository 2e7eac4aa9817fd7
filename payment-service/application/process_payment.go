package application

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/airline/reservation-system/payment-service/domain"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/shared/telemetry"
)

// ProcessPaymentCommand represents the command to charge a reservation
type ProcessPaymentCommand struct {
	ReservationID string  `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Method        string  `json:"method"`
	CustomerName  string  `json:"customer_name"`
}

// ProcessPaymentResponse carries the charge outcome. A declined charge is a
// normal response with Approved false, not an error.
type ProcessPaymentResponse struct {
	PaymentID string `json:"payment_id"`
	Approved  bool   `json:"approved"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// ProcessPayment use case
type ProcessPayment struct {
	paymentRepository domain.PaymentRepository
	approvalPolicy    *domain.ApprovalPolicy
	eventPublisher    events.Publisher
}

// NewProcessPayment creates a new ProcessPayment use case
func NewProcessPayment(
	paymentRepository domain.PaymentRepository,
	approvalPolicy *domain.ApprovalPolicy,
	eventPublisher events.Publisher,
) *ProcessPayment {
	return &ProcessPayment{
		paymentRepository: paymentRepository,
		approvalPolicy:    approvalPolicy,
		eventPublisher:    eventPublisher,
	}
}

// Execute executes the process payment use case
func (uc *ProcessPayment) Execute(ctx context.Context, cmd *ProcessPaymentCommand) (*ProcessPaymentResponse, error) {
	if cmd.ReservationID == "" {
		return nil, faults.Validation("reservation ID is required")
	}

	currency := cmd.Currency
	if currency == "" {
		currency = "KRW"
	}

	amount, err := models.NewMoneyFromFloat(cmd.Amount, currency)
	if err != nil {
		return nil, faults.Validation("invalid payment amount: %v", err)
	}

	method, err := domain.NewPaymentMethod(cmd.Method)
	if err != nil {
		return nil, err
	}

	payment, err := domain.CreatePayment(models.ID(cmd.ReservationID), amount, method, cmd.CustomerName)
	if err != nil {
		return nil, err
	}

	approved, reason := uc.approvalPolicy.Decide(amount, method)
	if approved {
		if err := payment.Approve(); err != nil {
			return nil, err
		}
	} else {
		if err := payment.Reject(reason); err != nil {
			return nil, err
		}
	}

	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to save payment")
	}

	if err := uc.eventPublisher.Publish(ctx, payment.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish events")
	}
	payment.ClearEvents()

	outcome := "approved"
	if !approved {
		outcome = "declined"
	}
	telemetry.RecordCounter(ctx, "payments_processed_total", "Processed payment charges", 1,
		attribute.String("outcome", outcome))

	return &ProcessPaymentResponse{
		PaymentID: payment.ID.String(),
		Approved:  approved,
		Status:    string(payment.Status),
		Message:   payment.Message,
	}, nil
}
