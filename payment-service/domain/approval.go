package domain

import (
	"fmt"
	"math/rand"

	"github.com/airline/reservation-system/shared/models"
)

// ApprovalPolicy simulates the gateway's approval decision. Approval odds
// drop as the charge grows and vary slightly per method. The roll source is
// injectable so tests can force either outcome.
type ApprovalPolicy struct {
	roll func() float64
}

// NewApprovalPolicy creates a policy backed by the given rand source
func NewApprovalPolicy(r *rand.Rand) *ApprovalPolicy {
	return &ApprovalPolicy{roll: r.Float64}
}

// NewApprovalPolicyWithRoll creates a policy with a custom roll function
// returning values in [0, 1).
func NewApprovalPolicyWithRoll(roll func() float64) *ApprovalPolicy {
	return &ApprovalPolicy{roll: roll}
}

// Decide returns whether the charge is approved, with a reason on decline
func (p *ApprovalPolicy) Decide(amount models.Money, method PaymentMethod) (bool, string) {
	rate := baseSuccessRate(amount.Float64()) * method.SuccessMultiplier()
	if p.roll() < rate {
		return true, ""
	}
	return false, fmt.Sprintf("payment declined by gateway for %s charge of %.2f %s",
		method, amount.Float64(), amount.Currency)
}

// baseSuccessRate tiers the approval rate by charge size in major units
func baseSuccessRate(amount float64) float64 {
	switch {
	case amount >= 1_000_000:
		return 0.70
	case amount >= 500_000:
		return 0.90
	default:
		return 0.95
	}
}
