package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/airline/reservation-system/reservation-service/config"
	"github.com/airline/reservation-system/reservation-service/handlers"
	"github.com/airline/reservation-system/shared/events"
	"github.com/airline/reservation-system/shared/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Starting %s in %s environment on port %s\n", cfg.ServiceName, cfg.Env, cfg.Port)

	ctx := context.Background()

	// Initialize telemetry
	tel, shutdownTelemetry, err := telemetry.InitTelemetry(ctx,
		telemetry.ReservationServiceConfig.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint))
	if err != nil {
		log.Printf("Telemetry disabled: %v", err)
	} else {
		defer shutdownTelemetry()
	}

	// Initialize dependencies
	deps, err := config.BuildDependencies(cfg)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Printf("Error closing dependencies: %v", err)
		}
	}()

	if err := deps.SeedFlights(ctx); err != nil {
		log.Fatalf("Failed to seed flights: %v", err)
	}

	// Wire the relay stages so async bookings complete in process
	if err := subscribeRelayStages(ctx, deps); err != nil {
		log.Fatalf("Failed to subscribe relay stages: %v", err)
	}

	// Setup HTTP router
	router := setupRouter(tel, deps)

	// Setup and start HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Printf("Shutting down %s...\n", cfg.ServiceName)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	fmt.Printf("%s stopped\n", cfg.ServiceName)
}

func subscribeRelayStages(ctx context.Context, deps *config.Dependencies) error {
	stages := []struct {
		eventType string
		handler   events.EventHandler
	}{
		{events.ReservationRequestedEvent, deps.FlightEventHandlers},
		{events.SeatReservedEvent, deps.PaymentEventHandlers},
		{events.PaymentApprovedEvent, deps.TicketEventHandlers},
		{events.TicketIssuedEvent, deps.ReservationEventHandlers},
	}

	for _, stage := range stages {
		if err := deps.EventSubscriber.Subscribe(ctx, stage.eventType, stage.handler); err != nil {
			return err
		}
	}
	return nil
}

func setupRouter(tel *telemetry.Telemetry, deps *config.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// Telemetry middleware (inject telemetry into context)
	if tel != nil {
		r.Use(telemetry.Middleware(tel))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", handlers.NewMetricsHandler())

	// Register routes
	deps.ReservationHandlers.RegisterRoutes(r)
	deps.FlightHandlers.RegisterRoutes(r)
	deps.PaymentHandlers.RegisterRoutes(r)
	deps.TicketHandlers.RegisterRoutes(r)

	return r
}
