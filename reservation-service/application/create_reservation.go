package application

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/shared/telemetry"
)

// sagaStep marks a workflow step that completed and may need compensation.
// Completed steps are tracked as an explicit ordered list, never inferred
// from which aggregate fields happen to be set.
type sagaStep string

const (
	stepSeatsReserved    sagaStep = "seats_reserved"
	stepPaymentCompleted sagaStep = "payment_completed"
	stepTicketIssued     sagaStep = "ticket_issued"
)

const seatsPerReservation = 1

// PassengerData is the inbound passenger shape
type PassengerData struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PassportNumber string `json:"passport_number,omitempty"`
}

// CreateReservationCommand represents the booking request
type CreateReservationCommand struct {
	FlightID       string        `json:"flight_id"`
	Passenger      PassengerData `json:"passenger"`
	SeatPreference string        `json:"seat_preference,omitempty"`
	PaymentMethod  string        `json:"payment_method"`
}

// ReservationResult is the public read model of a reservation. Public entry
// points always return one of these, even on failure.
type ReservationResult struct {
	ReservationID string  `json:"reservation_id"`
	FlightID      string  `json:"flight_id"`
	Status        string  `json:"status"`
	PaymentID     string  `json:"payment_id,omitempty"`
	TicketID      string  `json:"ticket_id,omitempty"`
	SeatNumber    string  `json:"seat_number,omitempty"`
	TotalAmount   float64 `json:"total_amount"`
	Currency      string  `json:"currency,omitempty"`
	Message       string  `json:"message"`
}

var validPaymentMethods = map[string]bool{
	"CARD":           true,
	"BANK_TRANSFER":  true,
	"DIGITAL_WALLET": true,
	"CASH":           true,
}

// CreateReservation runs the synchronous booking saga: validate, check the
// flight, reserve a seat, charge the payment, issue the ticket, confirm.
// On a step failure every completed step is compensated in reverse order
// and the reservation ends FAILED with the triggering failure's message.
type CreateReservation struct {
	reservationRepository domain.ReservationRepository
	flightGateway         domain.FlightGateway
	paymentGateway        domain.PaymentGateway
	ticketGateway         domain.TicketGateway
	eventPublisher        events.Publisher
	compensator           *Compensator
}

// NewCreateReservation creates a new CreateReservation use case
func NewCreateReservation(
	reservationRepository domain.ReservationRepository,
	flightGateway domain.FlightGateway,
	paymentGateway domain.PaymentGateway,
	ticketGateway domain.TicketGateway,
	eventPublisher events.Publisher,
) *CreateReservation {
	return &CreateReservation{
		reservationRepository: reservationRepository,
		flightGateway:         flightGateway,
		paymentGateway:        paymentGateway,
		ticketGateway:         ticketGateway,
		eventPublisher:        eventPublisher,
		compensator:           NewCompensator(flightGateway, paymentGateway, ticketGateway),
	}
}

// Execute executes the create reservation saga. Validation and flight lookup
// failures return an error with no side effects; failures after the first
// reserving step return a FAILED result, with the error set only when the
// failure should count against the resilience policy.
func (uc *CreateReservation) Execute(ctx context.Context, cmd *CreateReservationCommand) (*ReservationResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateReservation.Execute")
	defer span.End()

	passenger, err := uc.validateCommand(cmd)
	if err != nil {
		return nil, err
	}

	reservation, err := domain.CreateReservation(models.ID(cmd.FlightID), passenger)
	if err != nil {
		return nil, err
	}

	// Flight step: nothing reserved yet, so failures here need no
	// compensation.
	flight, err := uc.flightGateway.GetFlight(ctx, reservation.FlightID)
	if err != nil {
		return nil, err
	}

	availability, err := uc.flightGateway.CheckAvailability(ctx, reservation.FlightID, seatsPerReservation)
	if err != nil {
		return nil, err
	}
	if !availability.Available {
		return uc.failSaga(ctx, reservation, nil, "flight", faults.Decline("%s", availability.Reason))
	}

	var completed []sagaStep

	// Reserve step
	if err := uc.flightGateway.ReserveSeats(ctx, reservation.FlightID, seatsPerReservation); err != nil {
		return uc.failSaga(ctx, reservation, completed, "seat_reservation", err)
	}
	completed = append(completed, stepSeatsReserved)
	if err := reservation.MarkSeatReserved(seatsPerReservation); err != nil {
		return uc.failSaga(ctx, reservation, completed, "seat_reservation", err)
	}

	// Payment step
	charge, err := uc.paymentGateway.Charge(ctx, &domain.ChargeRequest{
		ReservationID: reservation.ID,
		Amount:        flight.Price,
		Method:        cmd.PaymentMethod,
		CustomerName:  passenger.Name,
	})
	if err != nil {
		return uc.failSaga(ctx, reservation, completed, "payment", err)
	}
	if !charge.Approved {
		return uc.failSaga(ctx, reservation, completed, "payment", faults.Decline("%s", charge.Message))
	}
	completed = append(completed, stepPaymentCompleted)
	if err := reservation.MarkPaymentCompleted(charge.PaymentID, flight.Price); err != nil {
		return uc.failSaga(ctx, reservation, completed, "payment", err)
	}

	// Ticket step
	issue, err := uc.ticketGateway.Issue(ctx, &domain.IssueRequest{
		ReservationID:  reservation.ID,
		PaymentID:      reservation.PaymentID,
		FlightID:       reservation.FlightID,
		PassengerName:  passenger.Name,
		SeatPreference: cmd.SeatPreference,
	})
	if err != nil {
		return uc.failSaga(ctx, reservation, completed, "ticket", err)
	}
	completed = append(completed, stepTicketIssued)

	// Completion
	if err := reservation.Confirm(issue.TicketID, issue.SeatNumber); err != nil {
		return uc.failSaga(ctx, reservation, completed, "confirmation", err)
	}

	if err := uc.reservationRepository.Save(ctx, reservation); err != nil {
		return uc.failSaga(ctx, reservation, completed, "persistence", faults.System("failed to save reservation", err))
	}

	if err := uc.eventPublisher.Publish(ctx, reservation.Events()...); err != nil {
		// The reservation is confirmed and saved; a publish failure is
		// not worth unwinding the whole saga.
		telemetry.RecordCounter(ctx, "reservation_event_publish_failures", "Events dropped after confirmation", 1)
	}
	reservation.ClearEvents()

	telemetry.RecordCounter(ctx, "reservations_total", "Reservation saga outcomes", 1,
		attribute.String("outcome", "confirmed"))

	return toResult(reservation), nil
}

// failSaga compensates completed steps in reverse order, marks the
// reservation FAILED with the triggering failure and persists it. The
// returned error is non-nil only for transport and system faults so that
// the resilience policy counts them; business outcomes surface solely
// through the FAILED result.
func (uc *CreateReservation) failSaga(
	ctx context.Context,
	reservation *domain.Reservation,
	completed []sagaStep,
	stage string,
	cause error,
) (*ReservationResult, error) {
	if len(completed) > 0 {
		info := reservation.CompensationInfo(seatsPerReservation)
		uc.compensator.Run(ctx, reservation, info, completed)
	}

	if err := reservation.Fail(stage, cause.Error()); err != nil {
		return nil, errors.Wrap(err, "failed to mark reservation as failed")
	}

	if err := uc.reservationRepository.Save(ctx, reservation); err != nil {
		telemetry.RecordCounter(ctx, "reservation_save_failures", "Failed reservation persists", 1)
	}
	if err := uc.eventPublisher.Publish(ctx, reservation.Events()...); err != nil {
		telemetry.RecordCounter(ctx, "reservation_event_publish_failures", "Events dropped after failure", 1)
	}
	reservation.ClearEvents()

	telemetry.RecordCounter(ctx, "reservations_total", "Reservation saga outcomes", 1,
		attribute.String("outcome", "failed"),
		attribute.String("stage", stage))

	if faults.Counts(cause) {
		return toResult(reservation), cause
	}
	return toResult(reservation), nil
}

func (uc *CreateReservation) validateCommand(cmd *CreateReservationCommand) (domain.PassengerInfo, error) {
	if cmd.FlightID == "" {
		return domain.PassengerInfo{}, faults.Validation("flight ID is required")
	}
	if cmd.PaymentMethod == "" {
		return domain.PassengerInfo{}, faults.Validation("payment method is required")
	}
	if !validPaymentMethods[cmd.PaymentMethod] {
		return domain.PassengerInfo{}, faults.Validation("unsupported payment method: %s", cmd.PaymentMethod)
	}

	return domain.NewPassengerInfo(
		cmd.Passenger.Name,
		cmd.Passenger.Email,
		cmd.Passenger.Phone,
		cmd.Passenger.PassportNumber,
	)
}

func toResult(reservation *domain.Reservation) *ReservationResult {
	return &ReservationResult{
		ReservationID: reservation.ID.String(),
		FlightID:      reservation.FlightID.String(),
		Status:        string(reservation.Status),
		PaymentID:     reservation.PaymentID.String(),
		TicketID:      reservation.TicketID.String(),
		SeatNumber:    reservation.SeatNumber,
		TotalAmount:   reservation.TotalAmount.Float64(),
		Currency:      reservation.TotalAmount.Currency,
		Message:       reservation.Message,
	}
}
