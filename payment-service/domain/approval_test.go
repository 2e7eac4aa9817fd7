package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/airline/reservation-system/shared/models"
)

func money(major int64) models.Money {
	return models.NewMoney(major*100, "KRW")
}

func TestApprovalPolicy_Decide(t *testing.T) {
	tests := []struct {
		name     string
		amount   models.Money
		method   PaymentMethod
		roll     float64
		approved bool
	}{
		{"small card charge approves under the rate", money(100_000), PaymentMethodCard, 0.94, true},
		{"small card charge declines over the rate", money(100_000), PaymentMethodCard, 0.96, false},
		{"mid tier drops to 90 percent", money(500_000), PaymentMethodCard, 0.89, true},
		{"mid tier declines at 90 percent", money(500_000), PaymentMethodCard, 0.91, false},
		{"large tier drops to 70 percent", money(1_000_000), PaymentMethodCard, 0.69, true},
		{"large tier declines at 70 percent", money(1_000_000), PaymentMethodCard, 0.71, false},
		{"bank transfer shaves the rate", money(100_000), PaymentMethodBankTransfer, 0.93, false},
		{"digital wallet keeps most of the rate", money(100_000), PaymentMethodDigitalWallet, 0.92, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewApprovalPolicyWithRoll(func() float64 { return tt.roll })

			approved, reason := policy.Decide(tt.amount, tt.method)

			assert.Equal(t, tt.approved, approved)
			if approved {
				assert.Empty(t, reason)
			} else {
				assert.Contains(t, reason, "payment declined")
			}
		})
	}
}

func TestNewPaymentMethod(t *testing.T) {
	tests := []struct {
		input    string
		expected PaymentMethod
		wantErr  bool
	}{
		{"CARD", PaymentMethodCard, false},
		{"card", PaymentMethodCard, false},
		{"BANK_TRANSFER", PaymentMethodBankTransfer, false},
		{"DIGITAL_WALLET", PaymentMethodDigitalWallet, false},
		{"CASH", PaymentMethodCash, false},
		{"BITCOIN", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		method, err := NewPaymentMethod(tt.input)
		if tt.wantErr {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, method)
		}
	}
}
