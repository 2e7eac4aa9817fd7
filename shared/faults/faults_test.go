package faults

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"nil", nil, KindUnknown},
		{"validation", Validation("email is invalid"), KindValidation},
		{"not found", NotFound("flight", "KE001"), KindNotFound},
		{"decline", Decline("insufficient funds"), KindBusinessDecline},
		{"transport", Transport("payment.charge", errors.New("dial timeout")), KindTransport},
		{"already processed", AlreadyProcessed("payment", "PAY-1", "SUCCESS"), KindAlreadyProcessed},
		{"system", System("save failed", errors.New("disk full")), KindSystem},
		{"plain error", errors.New("boom"), KindSystem},
		{"wrapped fault", errors.Wrap(NotFound("flight", "KE001"), "lookup"), KindNotFound},
		{"doubly wrapped fault", errors.Wrap(errors.Wrap(Decline("sold out"), "availability"), "booking"), KindBusinessDecline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestCounts(t *testing.T) {
	// Only infrastructure failures feed the breaker
	assert.True(t, Counts(Transport("ticket.issue", errors.New("connection refused"))))
	assert.True(t, Counts(System("save failed", nil)))
	assert.True(t, Counts(errors.New("unclassified")))

	assert.False(t, Counts(nil))
	assert.False(t, Counts(Validation("bad input")))
	assert.False(t, Counts(NotFound("flight", "KE001")))
	assert.False(t, Counts(Decline("insufficient funds")))
	assert.False(t, Counts(AlreadyProcessed("ticket", "TKT-1", "CANCELLED")))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "flight not found: KE001", NotFound("flight", "KE001").Error())
	assert.Equal(t, "payment PAY-1 is already processed with status: SUCCESS",
		AlreadyProcessed("payment", "PAY-1", "SUCCESS").Error())
	assert.Equal(t, "payment.charge: transport failure: dial timeout",
		Transport("payment.charge", errors.New("dial timeout")).Error())
	assert.Equal(t, "save failed: disk full",
		System("save failed", errors.New("disk full")).Error())
	assert.Equal(t, "save failed", System("save failed", nil).Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("dial timeout")

	assert.True(t, errors.Is(Transport("payment.charge", cause), cause))
	assert.True(t, errors.Is(System("charge failed", cause), cause))
}
