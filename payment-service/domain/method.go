package domain

import (
	"strings"

	"github.com/airline/reservation-system/shared/faults"
)

// PaymentMethod is the closed set of accepted payment methods
type PaymentMethod string

const (
	PaymentMethodCard          PaymentMethod = "CARD"
	PaymentMethodBankTransfer  PaymentMethod = "BANK_TRANSFER"
	PaymentMethodDigitalWallet PaymentMethod = "DIGITAL_WALLET"
	PaymentMethodCash          PaymentMethod = "CASH"
)

// NewPaymentMethod parses a payment method, case-insensitively
func NewPaymentMethod(method string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(method))) {
	case PaymentMethodCard:
		return PaymentMethodCard, nil
	case PaymentMethodBankTransfer:
		return PaymentMethodBankTransfer, nil
	case PaymentMethodDigitalWallet:
		return PaymentMethodDigitalWallet, nil
	case PaymentMethodCash:
		return PaymentMethodCash, nil
	default:
		return "", faults.Validation("unsupported payment method: %s", method)
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}

// SuccessMultiplier scales the base approval rate per method. Bank transfers
// bounce more often than cards, wallets sit in between, cash never fails at
// the gateway.
func (m PaymentMethod) SuccessMultiplier() float64 {
	switch m {
	case PaymentMethodBankTransfer:
		return 0.95
	case PaymentMethodDigitalWallet:
		return 0.98
	default:
		return 1.0
	}
}
