package config

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	flightapp "github.com/airline/reservation-system/flight-service/application"
	flightdomain "github.com/airline/reservation-system/flight-service/domain"
	flighthandlers "github.com/airline/reservation-system/flight-service/handlers"
	flightinfra "github.com/airline/reservation-system/flight-service/infrastructure"
	paymentapp "github.com/airline/reservation-system/payment-service/application"
	paymentdomain "github.com/airline/reservation-system/payment-service/domain"
	paymenthandlers "github.com/airline/reservation-system/payment-service/handlers"
	paymentinfra "github.com/airline/reservation-system/payment-service/infrastructure"
	"github.com/airline/reservation-system/reservation-service/application"
	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/reservation-service/handlers"
	"github.com/airline/reservation-system/reservation-service/infrastructure"
	"github.com/airline/reservation-system/shared/events"
	sharedinfra "github.com/airline/reservation-system/shared/infrastructure"
	"github.com/airline/reservation-system/shared/models"
	"github.com/airline/reservation-system/shared/resilience"
	ticketapp "github.com/airline/reservation-system/ticket-service/application"
	tickethandlers "github.com/airline/reservation-system/ticket-service/handlers"
	ticketinfra "github.com/airline/reservation-system/ticket-service/infrastructure"
)

type Dependencies struct {
	// Database, nil when the memory store is configured
	DB *sqlx.DB

	// Repositories
	ReservationRepository domain.ReservationRepository
	FlightRepository      flightdomain.FlightRepository
	PaymentRepository     paymentdomain.PaymentRepository

	// Reservation use cases
	BookReservation    *application.BookReservation
	RequestReservation *application.RequestReservation
	GetReservation     *application.GetReservation
	ListReservations   *application.ListReservations
	CancelReservation  *application.CancelReservation

	// HTTP handlers
	ReservationHandlers *handlers.ReservationHandlers
	FlightHandlers      *flighthandlers.FlightHandlers
	PaymentHandlers     *paymenthandlers.PaymentHandlers
	TicketHandlers      *tickethandlers.TicketHandlers

	// Event handlers, one per relay stage
	FlightEventHandlers      *flighthandlers.FlightEventHandlers
	PaymentEventHandlers     *paymenthandlers.PaymentEventHandlers
	TicketEventHandlers      *tickethandlers.TicketEventHandlers
	ReservationEventHandlers *handlers.ReservationEventHandlers

	// Infrastructure
	Breaker         *resilience.Breaker
	EventPublisher  events.Publisher
	EventSubscriber events.Subscriber
	MemoryBus       *sharedinfra.MemoryEventBus

	closers []func() error
}

func BuildDependencies(config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	if err := deps.buildEventTransport(config); err != nil {
		return nil, err
	}

	if err := deps.buildReservationStore(config); err != nil {
		deps.Close()
		return nil, err
	}

	// Downstream services run in process against memory stores
	deps.FlightRepository = flightinfra.NewMemoryFlightRepository()
	deps.PaymentRepository = paymentinfra.NewMemoryPaymentRepository()
	ticketRepository := ticketinfra.NewMemoryTicketRepository()

	getFlight := flightapp.NewGetFlight(deps.FlightRepository)
	searchFlights := flightapp.NewSearchFlights(deps.FlightRepository)
	checkAvailability := flightapp.NewCheckAvailability(deps.FlightRepository)
	reserveSeats := flightapp.NewReserveSeats(deps.FlightRepository, deps.EventPublisher)
	releaseSeats := flightapp.NewReleaseSeats(deps.FlightRepository, deps.EventPublisher)

	approvalPolicy := paymentdomain.NewApprovalPolicy(rand.New(rand.NewSource(time.Now().UnixNano())))
	processPayment := paymentapp.NewProcessPayment(deps.PaymentRepository, approvalPolicy, deps.EventPublisher)
	cancelPayment := paymentapp.NewCancelPayment(deps.PaymentRepository, deps.EventPublisher)
	getPayment := paymentapp.NewGetPayment(deps.PaymentRepository)

	issueTicket := ticketapp.NewIssueTicket(ticketRepository, deps.EventPublisher)
	cancelTicket := ticketapp.NewCancelTicket(ticketRepository, deps.EventPublisher)
	changeSeat := ticketapp.NewChangeSeat(ticketRepository, deps.EventPublisher)
	getTicket := ticketapp.NewGetTicket(ticketRepository)

	flightGateway := infrastructure.NewLocalFlightGateway(getFlight, checkAvailability, reserveSeats, releaseSeats)
	paymentGateway := infrastructure.NewLocalPaymentGateway(processPayment, cancelPayment)
	ticketGateway := infrastructure.NewLocalTicketGateway(issueTicket, cancelTicket)

	deps.Breaker = resilience.NewBreaker("create-reservation", resilience.Policy{
		FailureThreshold: config.Breaker.FailureThreshold,
		MinRequests:      config.Breaker.MinRequests,
		Window:           config.Breaker.Window,
		CoolDown:         config.Breaker.CoolDown,
	})

	createReservation := application.NewCreateReservation(
		deps.ReservationRepository, flightGateway, paymentGateway, ticketGateway, deps.EventPublisher)
	deps.BookReservation = application.NewBookReservation(createReservation, deps.Breaker)
	deps.RequestReservation = application.NewRequestReservation(deps.ReservationRepository, deps.EventPublisher)
	deps.GetReservation = application.NewGetReservation(deps.ReservationRepository)
	deps.ListReservations = application.NewListReservations(deps.ReservationRepository)
	deps.CancelReservation = application.NewCancelReservation(
		deps.ReservationRepository, flightGateway, paymentGateway, ticketGateway, deps.EventPublisher)

	deps.ReservationHandlers = handlers.NewReservationHandlers(
		deps.BookReservation,
		deps.RequestReservation,
		deps.GetReservation,
		deps.ListReservations,
		deps.CancelReservation,
	)
	deps.FlightHandlers = flighthandlers.NewFlightHandlers(getFlight, searchFlights)
	deps.PaymentHandlers = paymenthandlers.NewPaymentHandlers(getPayment)
	deps.TicketHandlers = tickethandlers.NewTicketHandlers(getTicket, changeSeat)

	deps.FlightEventHandlers = flighthandlers.NewFlightEventHandlers(reserveSeats, getFlight, deps.EventPublisher)
	deps.PaymentEventHandlers = paymenthandlers.NewPaymentEventHandlers(
		processPayment, flightPriceLookup{getFlight: getFlight}, deps.EventPublisher)
	deps.TicketEventHandlers = tickethandlers.NewTicketEventHandlers(issueTicket, deps.EventPublisher)
	deps.ReservationEventHandlers = handlers.NewReservationEventHandlers(deps.ReservationRepository, deps.EventPublisher)

	return deps, nil
}

func (d *Dependencies) buildEventTransport(config *Config) error {
	switch config.Events.Transport {
	case "aws":
		publisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
		if err != nil {
			return fmt.Errorf("failed to create SNS publisher: %w", err)
		}
		d.EventPublisher = publisher
		d.closers = append(d.closers, publisher.Close)

		subscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL)
		if err != nil {
			return fmt.Errorf("failed to create SQS subscriber: %w", err)
		}
		d.EventSubscriber = subscriber
		d.closers = append(d.closers, subscriber.Close)
	default:
		bus := sharedinfra.NewMemoryEventBus()
		d.MemoryBus = bus
		d.EventPublisher = bus
		d.EventSubscriber = bus
		d.closers = append(d.closers, bus.Close)
	}
	return nil
}

func (d *Dependencies) buildReservationStore(config *Config) error {
	if config.Storage.Driver != "postgres" {
		d.ReservationRepository = infrastructure.NewMemoryReservationRepository()
		return nil
	}

	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	d.DB = db
	d.closers = append(d.closers, db.Close)
	d.ReservationRepository = infrastructure.NewPostgresReservationRepository(db)
	return nil
}

// SeedFlights loads the initial flight inventory
func (d *Dependencies) SeedFlights(ctx context.Context) error {
	departure := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	seeds := []struct {
		id, airline, from, to string
		duration              time.Duration
		price                 int64
		seats                 int
	}{
		{"KE001", "Korean Air", "ICN", "JFK", 14 * time.Hour, 50000000, 180},
		{"KE002", "Korean Air", "ICN", "LAX", 11 * time.Hour, 120000000, 180},
		{"OZ101", "Asiana Airlines", "ICN", "NRT", 2 * time.Hour, 35000000, 150},
		{"LJ201", "Jin Air", "GMP", "CJU", time.Hour, 8900000, 120},
	}

	for _, seed := range seeds {
		flight, err := flightdomain.NewFlight(
			seed.id, seed.airline, seed.from, seed.to,
			departure, departure.Add(seed.duration),
			models.NewMoney(seed.price, "KRW"), seed.seats,
		)
		if err != nil {
			return fmt.Errorf("invalid seed flight %s: %w", seed.id, err)
		}
		if err := d.FlightRepository.Save(ctx, flight); err != nil {
			return fmt.Errorf("failed to seed flight %s: %w", seed.id, err)
		}
	}
	return nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}
	return nil
}

// flightPriceLookup adapts GetFlight for the payment relay stage
type flightPriceLookup struct {
	getFlight *flightapp.GetFlight
}

func (l flightPriceLookup) PriceOf(ctx context.Context, flightID string) (float64, string, error) {
	flight, err := l.getFlight.Execute(ctx, &flightapp.GetFlightQuery{FlightID: flightID})
	if err != nil {
		return 0, "", err
	}
	return flight.Price, flight.Currency, nil
}
