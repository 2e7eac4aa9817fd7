package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

func TestCreateTicket(t *testing.T) {
	tests := []struct {
		name          string
		reservationID models.ID
		flightID      models.ID
		passenger     string
		seat          SeatNumber
		expectedError string
	}{
		{"valid", "RES-12345678", "KE001", "Hong Gildong", "12A", ""},
		{"missing reservation", "", "KE001", "Hong Gildong", "12A", "reservation ID is required"},
		{"missing flight", "RES-12345678", "", "Hong Gildong", "12A", "flight ID is required"},
		{"missing passenger", "RES-12345678", "KE001", "", "12A", "passenger name is required"},
		{"missing seat", "RES-12345678", "KE001", "Hong Gildong", "", "seat number is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket, err := CreateTicket(tt.reservationID, "PAY-12345678", tt.flightID, tt.passenger, tt.seat)
			if tt.expectedError == "" {
				assert.NoError(t, err)
				assert.Equal(t, TicketStatusPending, ticket.Status)
				assert.Contains(t, ticket.ID.String(), "TKT-")
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			}
		})
	}
}

func TestTicket_Issue(t *testing.T) {
	ticket, _ := CreateTicket("RES-12345678", "PAY-12345678", "KE001", "Hong Gildong", "12A")

	assert.NoError(t, ticket.Issue())
	assert.Equal(t, TicketStatusIssued, ticket.Status)
	assert.NotNil(t, ticket.IssuedAt)

	err := ticket.Issue()
	assert.True(t, faults.IsAlreadyProcessed(err))
}

func TestTicket_Cancel(t *testing.T) {
	ticket, _ := CreateTicket("RES-12345678", "PAY-12345678", "KE001", "Hong Gildong", "12A")

	// Only issued tickets can be compensated
	err := ticket.Cancel()
	assert.True(t, faults.IsAlreadyProcessed(err))

	assert.NoError(t, ticket.Issue())
	assert.NoError(t, ticket.Cancel())
	assert.Equal(t, TicketStatusCancelled, ticket.Status)

	err = ticket.ChangeSeat("14C")
	assert.True(t, faults.IsAlreadyProcessed(err))
}

func TestTicket_ChangeSeat(t *testing.T) {
	ticket, _ := CreateTicket("RES-12345678", "PAY-12345678", "KE001", "Hong Gildong", "12A")

	// A seat change is only valid while the ticket is issued
	err := ticket.ChangeSeat("14C")
	assert.True(t, faults.IsAlreadyProcessed(err))

	assert.NoError(t, ticket.Issue())
	assert.NoError(t, ticket.ChangeSeat("14C"))
	assert.Equal(t, SeatNumber("14C"), ticket.Seat)
	assert.Equal(t, TicketStatusIssued, ticket.Status)

	topics := make([]string, 0, len(ticket.Events()))
	for _, event := range ticket.Events() {
		topics = append(topics, event.EventType)
	}
	assert.Contains(t, topics, "ticket.seat.changed")
}
