package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/payment-service/domain"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// CancelPaymentCommand represents the command to cancel a successful payment
type CancelPaymentCommand struct {
	PaymentID string `json:"payment_id"`
}

// CancelPayment use case
type CancelPayment struct {
	paymentRepository domain.PaymentRepository
	eventPublisher    events.Publisher
}

// NewCancelPayment creates a new CancelPayment use case
func NewCancelPayment(paymentRepository domain.PaymentRepository, eventPublisher events.Publisher) *CancelPayment {
	return &CancelPayment{
		paymentRepository: paymentRepository,
		eventPublisher:    eventPublisher,
	}
}

// Execute executes the cancel payment use case
func (uc *CancelPayment) Execute(ctx context.Context, cmd *CancelPaymentCommand) error {
	if cmd.PaymentID == "" {
		return faults.Validation("payment ID is required")
	}

	payment, err := uc.paymentRepository.FindByID(ctx, models.ID(cmd.PaymentID))
	if err != nil {
		return errors.Wrap(err, "failed to find payment")
	}

	if payment == nil {
		return faults.NotFound("payment", cmd.PaymentID)
	}

	if err := payment.Cancel(); err != nil {
		return err
	}

	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		return errors.Wrap(err, "failed to save payment")
	}

	if err := uc.eventPublisher.Publish(ctx, payment.Events()...); err != nil {
		return errors.Wrap(err, "failed to publish events")
	}
	payment.ClearEvents()

	return nil
}
