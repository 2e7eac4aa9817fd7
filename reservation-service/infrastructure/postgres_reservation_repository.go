package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/models"
)

// PostgresReservationRepository implements ReservationRepository using PostgreSQL
type PostgresReservationRepository struct {
	db *sqlx.DB
}

// NewPostgresReservationRepository creates a new PostgresReservationRepository
func NewPostgresReservationRepository(db *sqlx.DB) *PostgresReservationRepository {
	return &PostgresReservationRepository{db: db}
}

// postgresReservation represents a reservation row
type postgresReservation struct {
	ID             string    `db:"id"`
	FlightID       string    `db:"flight_id"`
	PassengerName  string    `db:"passenger_name"`
	PassengerEmail string    `db:"passenger_email"`
	PassengerPhone string    `db:"passenger_phone"`
	PassportNumber *string   `db:"passport_number"`
	PaymentID      *string   `db:"payment_id"`
	TicketID       *string   `db:"ticket_id"`
	SeatNumber     *string   `db:"seat_number"`
	TotalAmount    int64     `db:"total_amount"`
	Currency       *string   `db:"currency"`
	Status         string    `db:"status"`
	Message        string    `db:"message"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	Version        int       `db:"version"`
}

const reservationColumns = `
	id, flight_id, passenger_name, passenger_email, passenger_phone,
	passport_number, payment_id, ticket_id, seat_number,
	total_amount, currency, status, message,
	created_at, updated_at, version`

// Save persists the reservation. The pending event log decides whether this
// is an insert or an update of an existing row.
func (r *PostgresReservationRepository) Save(ctx context.Context, reservation *domain.Reservation) error {
	for _, event := range reservation.Events() {
		if event.EventType == events.ReservationCreatedEvent {
			return r.insertReservation(ctx, reservation)
		}
	}
	return r.updateReservation(ctx, reservation)
}

func (r *PostgresReservationRepository) insertReservation(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		INSERT INTO reservations (
			id, flight_id, passenger_name, passenger_email, passenger_phone,
			passport_number, payment_id, ticket_id, seat_number,
			total_amount, currency, status, message,
			created_at, updated_at, version
		) VALUES (
			:id, :flight_id, :passenger_name, :passenger_email, :passenger_phone,
			:passport_number, :payment_id, :ticket_id, :seat_number,
			:total_amount, :currency, :status, :message,
			:created_at, :updated_at, :version
		)`

	_, err := r.db.NamedExecContext(ctx, query, r.toPostgres(reservation))
	if err != nil {
		return errors.Wrap(err, "failed to insert reservation")
	}

	return nil
}

func (r *PostgresReservationRepository) updateReservation(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		UPDATE reservations
		SET payment_id = :payment_id, ticket_id = :ticket_id,
			seat_number = :seat_number, total_amount = :total_amount,
			currency = :currency, status = :status, message = :message,
			updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	row := r.toPostgres(reservation)
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":           row.ID,
		"payment_id":   row.PaymentID,
		"ticket_id":    row.TicketID,
		"seat_number":  row.SeatNumber,
		"total_amount": row.TotalAmount,
		"currency":     row.Currency,
		"status":       row.Status,
		"message":      row.Message,
		"updated_at":   row.UpdatedAt,
		"version":      row.Version,
		"old_version":  row.Version - 1, // Optimistic locking
	})
	if err != nil {
		return errors.Wrap(err, "failed to update reservation")
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return errors.Errorf("reservation %s was modified concurrently", reservation.ID)
	}

	return nil
}

// FindByID finds a reservation by ID
func (r *PostgresReservationRepository) FindByID(ctx context.Context, id models.ID) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	var row postgresReservation
	err := r.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find reservation")
	}

	return r.toDomain(&row)
}

// FindByStatus finds reservations by status
func (r *PostgresReservationRepository) FindByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE status = $1 ORDER BY created_at DESC`

	return r.selectReservations(ctx, query, string(status))
}

// FindAll returns every stored reservation
func (r *PostgresReservationRepository) FindAll(ctx context.Context) ([]*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC`

	return r.selectReservations(ctx, query)
}

// Delete removes a reservation
func (r *PostgresReservationRepository) Delete(ctx context.Context, id models.ID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id.String())
	if err != nil {
		return errors.Wrap(err, "failed to delete reservation")
	}
	return nil
}

// Exists reports whether the reservation is stored
func (r *PostgresReservationRepository) Exists(ctx context.Context, id models.ID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM reservations WHERE id = $1`, id.String())
	if err != nil {
		return false, errors.Wrap(err, "failed to check reservation existence")
	}
	return count > 0, nil
}

func (r *PostgresReservationRepository) selectReservations(ctx context.Context, query string, args ...interface{}) ([]*domain.Reservation, error) {
	var rows []postgresReservation
	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reservations")
	}

	reservations := make([]*domain.Reservation, len(rows))
	for i, row := range rows {
		reservation, err := r.toDomain(&row)
		if err != nil {
			return nil, err
		}
		reservations[i] = reservation
	}

	return reservations, nil
}

// toPostgres converts the aggregate to its row shape
func (r *PostgresReservationRepository) toPostgres(reservation *domain.Reservation) *postgresReservation {
	return &postgresReservation{
		ID:             reservation.ID.String(),
		FlightID:       reservation.FlightID.String(),
		PassengerName:  reservation.Passenger.Name,
		PassengerEmail: reservation.Passenger.Email,
		PassengerPhone: reservation.Passenger.Phone,
		PassportNumber: nullableString(reservation.Passenger.PassportNumber),
		PaymentID:      nullableString(reservation.PaymentID.String()),
		TicketID:       nullableString(reservation.TicketID.String()),
		SeatNumber:     nullableString(reservation.SeatNumber),
		TotalAmount:    reservation.TotalAmount.Amount,
		Currency:       nullableString(reservation.TotalAmount.Currency),
		Status:         string(reservation.Status),
		Message:        reservation.Message,
		CreatedAt:      reservation.Timestamps.CreatedAt,
		UpdatedAt:      reservation.Timestamps.UpdatedAt,
		Version:        reservation.Version.Value,
	}
}

// toDomain converts a row back into the aggregate
func (r *PostgresReservationRepository) toDomain(row *postgresReservation) (*domain.Reservation, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid reservation ID")
	}

	flightID, err := models.NewID(row.FlightID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid flight ID")
	}

	passenger, err := domain.NewPassengerInfo(
		row.PassengerName,
		row.PassengerEmail,
		row.PassengerPhone,
		stringValue(row.PassportNumber),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid passenger info")
	}

	reservation := &domain.Reservation{
		ID:         id,
		FlightID:   flightID,
		Passenger:  passenger,
		PaymentID:  models.ID(stringValue(row.PaymentID)),
		TicketID:   models.ID(stringValue(row.TicketID)),
		SeatNumber: stringValue(row.SeatNumber),
		Status:     domain.ReservationStatus(row.Status),
		Message:    row.Message,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Version: models.Version{Value: row.Version},
	}
	if row.TotalAmount != 0 {
		reservation.TotalAmount = models.NewMoney(row.TotalAmount, stringValue(row.Currency))
	}

	return reservation, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
