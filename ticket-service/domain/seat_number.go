package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/airline/reservation-system/shared/faults"
)

// seatNumberPattern is a 1-3 digit row followed by a single letter A-F.
var seatNumberPattern = regexp.MustCompile(`^\d{1,3}[A-F]$`)

// SeatNumber is a validated seat assignment such as "12A"
type SeatNumber string

// NewSeatNumber validates and normalizes a seat number
func NewSeatNumber(value string) (SeatNumber, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if !seatNumberPattern.MatchString(normalized) {
		return "", faults.Validation("invalid seat number format: %s", value)
	}
	return SeatNumber(normalized), nil
}

func (s SeatNumber) String() string {
	return string(s)
}

// Letter returns the seat letter (A-F)
func (s SeatNumber) Letter() byte {
	return s[len(s)-1]
}

// IsWindow reports whether the seat is at a window (A or F)
func (s SeatNumber) IsWindow() bool {
	return s.Letter() == 'A' || s.Letter() == 'F'
}

// IsAisle reports whether the seat is on the aisle (C or D)
func (s SeatNumber) IsAisle() bool {
	return s.Letter() == 'C' || s.Letter() == 'D'
}

// AllocateSeat deterministically assigns the next seat from the number of
// tickets already issued: six seats per row, letters A through F.
func AllocateSeat(issuedCount int) SeatNumber {
	row := issuedCount/6 + 1
	letter := rune('A' + issuedCount%6)
	return SeatNumber(fmt.Sprintf("%d%c", row, letter))
}
