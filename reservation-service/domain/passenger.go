package domain

import (
	"regexp"
	"strings"

	"github.com/airline/reservation-system/shared/faults"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// PassengerInfo carries the passenger's identity for a reservation
type PassengerInfo struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PassportNumber string `json:"passport_number,omitempty"`
}

// NewPassengerInfo validates required passenger fields
func NewPassengerInfo(name, email, phone, passportNumber string) (PassengerInfo, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return PassengerInfo{}, faults.Validation("passenger name is required")
	}
	if email == "" {
		return PassengerInfo{}, faults.Validation("passenger email is required")
	}
	if !emailPattern.MatchString(email) {
		return PassengerInfo{}, faults.Validation("invalid passenger email: %s", email)
	}
	if phone == "" {
		return PassengerInfo{}, faults.Validation("passenger phone is required")
	}

	return PassengerInfo{
		Name:           name,
		Email:          email,
		Phone:          phone,
		PassportNumber: strings.TrimSpace(passportNumber),
	}, nil
}
