package events

import (
	"github.com/airline/reservation-system/shared/faults"
)

// Payload is the flat key/value body carried by relay events. Handlers pull
// typed fields out of it and fail fast when a required key is absent, so a
// malformed event never propagates half-parsed data down the chain.
type Payload map[string]interface{}

// DecodePayload extracts the event data as a Payload.
func DecodePayload(e *Event) (Payload, error) {
	var p Payload
	if err := e.UnmarshalPayload(&p); err != nil {
		return nil, faults.Validation("event %s: %v", e.EventType, ErrInvalidPayload)
	}
	return p, nil
}

// RequiredString returns the string value under key or a validation fault.
func (p Payload) RequiredString(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", faults.Validation("missing field: %s", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", faults.Validation("missing field: %s", key)
	}
	return s, nil
}

// RequiredInt returns the integer value under key or a validation fault.
// JSON numbers decode as float64, so the value is converted.
func (p Payload) RequiredInt(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, faults.Validation("missing field: %s", key)
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, faults.Validation("missing field: %s", key)
	}
}

// RequiredFloat returns the numeric value under key or a validation fault.
func (p Payload) RequiredFloat(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, faults.Validation("missing field: %s", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, faults.Validation("missing field: %s", key)
	}
}

// OptionalFloat returns the numeric value under key and whether it was set.
func (p Payload) OptionalFloat(key string) (float64, bool) {
	switch n := p[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// OptionalString returns the string value under key, or "" when absent.
func (p Payload) OptionalString(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}
