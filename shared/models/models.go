package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ID represents a unique identifier
type ID string

// GenerateUUID creates a new UUID-backed ID
func GenerateUUID() ID {
	return ID(uuid.New().String())
}

// GeneratePrefixedID creates a short prefixed identifier such as "RES-a1b2c3d4".
// Reservation, payment and ticket ids are customer-facing, so they carry a
// readable prefix instead of a bare UUID.
func GeneratePrefixedID(prefix string) ID {
	return ID(fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8]))
}

// NewID creates an ID from string
func NewID(id string) (ID, error) {
	if id == "" {
		return "", errors.New("id cannot be empty")
	}
	return ID(id), nil
}

// String returns string representation
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the ID is unset
func (id ID) IsZero() bool {
	return id == ""
}

// Timestamps represents creation and update times
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTimestamps creates new timestamps
func NewTimestamps() Timestamps {
	now := time.Now()
	return Timestamps{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update updates the UpdatedAt timestamp
func (t Timestamps) Update() Timestamps {
	t.UpdatedAt = time.Now()
	return t
}

// Version represents entity version for optimistic locking
type Version struct {
	Value int
}

// NewVersion creates new version
func NewVersion() Version {
	return Version{Value: 1}
}

// Update increments version
func (v Version) Update() Version {
	v.Value++
	return v
}

// Money represents a monetary amount in minor units (1/100 of the currency
// unit), which keeps arithmetic exact.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// NewMoney creates a money value from minor units
func NewMoney(amount int64, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// NewMoneyFromFloat converts a decimal amount into Money. Amounts must be
// positive and carry at most two fractional digits.
func NewMoneyFromFloat(value float64, currency string) (Money, error) {
	if value <= 0 {
		return Money{}, errors.New("amount must be greater than 0")
	}

	scaled := value * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		return Money{}, errors.New("amount cannot have more than 2 decimal places")
	}

	return Money{
		Amount:   int64(math.Round(scaled)),
		Currency: currency,
	}, nil
}

// Float64 returns the amount as a decimal value
func (m Money) Float64() float64 {
	return float64(m.Amount) / 100
}

// IsZero checks if money is zero
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// IsPositive checks if money is positive
func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// GreaterThan compares two money values of the same currency
func (m Money) GreaterThan(other Money) bool {
	return m.Amount > other.Amount
}

// Add adds two money values (must have same currency)
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, errors.New("currency mismatch")
	}
	return Money{
		Amount:   m.Amount + other.Amount,
		Currency: m.Currency,
	}, nil
}
