// Package faults defines the closed set of error kinds the reservation
// workflow distinguishes. Every error crossing a service boundary is one of
// these types, so handling sites can type-switch exhaustively instead of
// string-matching messages.
package faults

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the closed set of fault categories.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindBusinessDecline
	KindTransport
	KindAlreadyProcessed
	KindSystem
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBusinessDecline:
		return "business_decline"
	case KindTransport:
		return "transport"
	case KindAlreadyProcessed:
		return "already_processed"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Fault is the sealed interface implemented by every fault type in this
// package. The unexported method keeps the set closed.
type Fault interface {
	error
	Kind() Kind
	fault()
}

// ValidationError reports malformed or missing input. It is raised before any
// side effect, so it never requires compensation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
func (e *ValidationError) Kind() Kind    { return KindValidation }
func (e *ValidationError) fault()        {}

// Validation creates a ValidationError from a format string
func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
func (e *NotFoundError) Kind() Kind { return KindNotFound }
func (e *NotFoundError) fault()     {}

// NotFound creates a NotFoundError
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// BusinessDeclineError reports an expected negative business outcome, such as
// a declined payment or a sold-out flight. It is not a fault of the system and
// must not feed circuit-breaker failure counting.
type BusinessDeclineError struct {
	Msg string
}

func (e *BusinessDeclineError) Error() string { return e.Msg }
func (e *BusinessDeclineError) Kind() Kind    { return KindBusinessDecline }
func (e *BusinessDeclineError) fault()        {}

// Decline creates a BusinessDeclineError from a format string
func Decline(format string, args ...interface{}) *BusinessDeclineError {
	return &BusinessDeclineError{Msg: fmt.Sprintf(format, args...)}
}

// TransportError reports an adapter call that failed to complete: timeout,
// unreachable endpoint, rejected connection. The orchestrator treats these
// uniformly regardless of which adapter raised them, and the resilience
// policy counts them toward opening the breaker.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}
func (e *TransportError) Kind() Kind    { return KindTransport }
func (e *TransportError) Unwrap() error { return e.Err }
func (e *TransportError) fault()        {}

// Transport wraps err as a TransportError for the named operation
func Transport(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// AlreadyProcessedError reports a state-changing operation that is illegal for
// the aggregate's current status. The aggregate is left untouched.
type AlreadyProcessedError struct {
	Resource string
	ID       string
	Status   string
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("%s %s is already processed with status: %s", e.Resource, e.ID, e.Status)
}
func (e *AlreadyProcessedError) Kind() Kind { return KindAlreadyProcessed }
func (e *AlreadyProcessedError) fault()     {}

// AlreadyProcessed creates an AlreadyProcessedError
func AlreadyProcessed(resource, id, status string) *AlreadyProcessedError {
	return &AlreadyProcessedError{Resource: resource, ID: id, Status: status}
}

// SystemError is the catch-all for unexpected failures. It always wraps the
// original cause for diagnostics.
type SystemError struct {
	Msg string
	Err error
}

func (e *SystemError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}
func (e *SystemError) Kind() Kind    { return KindSystem }
func (e *SystemError) Unwrap() error { return e.Err }
func (e *SystemError) fault()        {}

// System wraps err as a SystemError with a message
func System(msg string, err error) *SystemError {
	return &SystemError{Msg: msg, Err: err}
}

// KindOf classifies err, unwrapping as needed. Non-fault errors classify as
// KindSystem when non-nil and KindUnknown when nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var f Fault
	if errors.As(err, &f) {
		return f.Kind()
	}
	return KindSystem
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsBusinessDecline reports whether err is a BusinessDeclineError
func IsBusinessDecline(err error) bool { return KindOf(err) == KindBusinessDecline }

// IsTransport reports whether err is a TransportError
func IsTransport(err error) bool { return KindOf(err) == KindTransport }

// IsAlreadyProcessed reports whether err is an AlreadyProcessedError
func IsAlreadyProcessed(err error) bool { return KindOf(err) == KindAlreadyProcessed }

// IsSystem reports whether err is a SystemError
func IsSystem(err error) bool { return KindOf(err) == KindSystem }

// Counts reports whether err should feed the resilience policy's failure
// counting. Expected business outcomes and caller mistakes do not count;
// transport and system faults do.
func Counts(err error) bool {
	switch KindOf(err) {
	case KindTransport, KindSystem:
		return true
	default:
		return false
	}
}
