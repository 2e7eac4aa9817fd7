package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

func TestCreatePayment(t *testing.T) {
	tests := []struct {
		name          string
		reservationID models.ID
		amount        models.Money
		expectedError string
	}{
		{"valid", "RES-12345678", models.NewMoney(50000000, "KRW"), ""},
		{"missing reservation", "", models.NewMoney(50000000, "KRW"), "reservation ID is required"},
		{"zero amount", "RES-12345678", models.Money{}, "amount must be positive"},
		{"amount at the cap", "RES-12345678", models.NewMoney(MaxChargeAmount*100, "KRW"), ""},
		{"amount over the cap", "RES-12345678", models.NewMoney(MaxChargeAmount*100+1, "KRW"), "maximum single charge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := CreatePayment(tt.reservationID, tt.amount, PaymentMethodCard, "Hong Gildong")
			if tt.expectedError == "" {
				assert.NoError(t, err)
				assert.Equal(t, PaymentStatusPending, payment.Status)
				assert.Contains(t, payment.ID.String(), "PAY-")
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			}
		})
	}
}

func TestPayment_Approve(t *testing.T) {
	payment, _ := CreatePayment("RES-12345678", models.NewMoney(100, "KRW"), PaymentMethodCard, "Hong Gildong")

	assert.NoError(t, payment.Approve())
	assert.Equal(t, PaymentStatusSuccess, payment.Status)
	assert.NotNil(t, payment.ProcessedAt)

	err := payment.Approve()
	assert.True(t, faults.IsAlreadyProcessed(err))
}

func TestPayment_Reject(t *testing.T) {
	payment, _ := CreatePayment("RES-12345678", models.NewMoney(100, "KRW"), PaymentMethodCard, "Hong Gildong")

	assert.NoError(t, payment.Reject("payment declined by gateway"))
	assert.Equal(t, PaymentStatusFailed, payment.Status)
	assert.Equal(t, "payment declined by gateway", payment.Message)

	err := payment.Approve()
	assert.True(t, faults.IsAlreadyProcessed(err))
}

func TestPayment_Cancel(t *testing.T) {
	payment, _ := CreatePayment("RES-12345678", models.NewMoney(100, "KRW"), PaymentMethodCard, "Hong Gildong")

	// Only successful payments can be compensated
	err := payment.Cancel()
	assert.True(t, faults.IsAlreadyProcessed(err))

	assert.NoError(t, payment.Approve())
	assert.NoError(t, payment.Cancel())
	assert.Equal(t, PaymentStatusCancelled, payment.Status)

	err = payment.Cancel()
	assert.True(t, faults.IsAlreadyProcessed(err))
}
