package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMoneyFromFloat(t *testing.T) {
	tests := []struct {
		name           string
		value          float64
		expectedAmount int64
		expectedError  string
	}{
		{"whole amount", 500000, 50000000, ""},
		{"two decimal places", 100.25, 10025, ""},
		{"smallest unit", 0.01, 1, ""},
		{"zero", 0, 0, "must be greater than 0"},
		{"negative", -10, 0, "must be greater than 0"},
		{"three decimal places", 100.123, 0, "more than 2 decimal places"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			money, err := NewMoneyFromFloat(tt.value, "KRW")
			if tt.expectedError == "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAmount, money.Amount)
				assert.Equal(t, "KRW", money.Currency)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			}
		})
	}
}

func TestMoney_Float64(t *testing.T) {
	assert.Equal(t, 500000.0, NewMoney(50000000, "KRW").Float64())
	assert.Equal(t, 0.01, NewMoney(1, "KRW").Float64())
}

func TestMoney_Add(t *testing.T) {
	sum, err := NewMoney(100, "KRW").Add(NewMoney(250, "KRW"))
	assert.NoError(t, err)
	assert.Equal(t, NewMoney(350, "KRW"), sum)

	_, err = NewMoney(100, "KRW").Add(NewMoney(100, "USD"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "currency mismatch")
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, Money{}.IsZero())
	assert.False(t, Money{}.IsPositive())
	assert.True(t, NewMoney(1, "KRW").IsPositive())
	assert.True(t, NewMoney(2, "KRW").GreaterThan(NewMoney(1, "KRW")))
}

func TestGeneratePrefixedID(t *testing.T) {
	id := GeneratePrefixedID("RES")

	assert.Regexp(t, `^RES-[0-9a-f]{8}$`, id.String())
	assert.NotEqual(t, id, GeneratePrefixedID("RES"))
}

func TestNewID(t *testing.T) {
	id, err := NewID("KE001")
	assert.NoError(t, err)
	assert.Equal(t, ID("KE001"), id)
	assert.False(t, id.IsZero())

	_, err = NewID("")
	assert.Error(t, err)
}

func TestVersion_Update(t *testing.T) {
	v := NewVersion()
	assert.Equal(t, 1, v.Value)

	// Update returns a copy; the receiver is unchanged
	next := v.Update()
	assert.Equal(t, 2, next.Value)
	assert.Equal(t, 1, v.Value)
}
