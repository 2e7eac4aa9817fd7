package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSeatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected SeatNumber
		wantErr  bool
	}{
		{"standard seat", "12A", "12A", false},
		{"single digit row", "7F", "7F", false},
		{"three digit row", "123C", "123C", false},
		{"lowercase is normalized", "12a", "12A", false},
		{"whitespace is trimmed", " 12A ", "12A", false},
		{"letter before row", "G7", "", true},
		{"letter out of range", "7G", "", true},
		{"four digit row", "1234A", "", true},
		{"missing letter", "12", "", true},
		{"missing row", "A", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seat, err := NewSeatNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid seat number")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, seat)
			}
		})
	}
}

func TestSeatNumber_Position(t *testing.T) {
	window, _ := NewSeatNumber("1A")
	assert.True(t, window.IsWindow())
	assert.False(t, window.IsAisle())

	aisle, _ := NewSeatNumber("1C")
	assert.True(t, aisle.IsAisle())
	assert.False(t, aisle.IsWindow())

	middle, _ := NewSeatNumber("1B")
	assert.False(t, middle.IsWindow())
	assert.False(t, middle.IsAisle())
}

func TestAllocateSeat(t *testing.T) {
	tests := []struct {
		issuedCount int
		expected    SeatNumber
	}{
		{0, "1A"},
		{1, "1B"},
		{5, "1F"},
		{6, "2A"},
		{7, "2B"},
		{11, "2F"},
		{12, "3A"},
		{59, "10F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AllocateSeat(tt.issuedCount))
	}
}
