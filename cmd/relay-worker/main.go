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

// The relay worker runs the four event stages without the HTTP API. It is
// meant for the aws transport, where each deployment consumes from the
// shared queue; with the memory transport it is only useful for smoke runs.
func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Starting relay-worker in %s environment\n", cfg.Env)

	ctx := context.Background()

	tel, shutdownTelemetry, err := telemetry.InitTelemetry(ctx,
		telemetry.RelayWorkerConfig.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint))
	if err != nil {
		log.Printf("Telemetry disabled: %v", err)
	} else {
		defer shutdownTelemetry()
		ctx = telemetry.WithTelemetry(ctx, tel)
	}

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
			log.Fatalf("Failed to subscribe %s stage: %v", stage.eventType, err)
		}
	}

	// Health and metrics only; the worker exposes no API
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	router.Handle("/metrics", handlers.NewMetricsHandler())

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down relay-worker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	fmt.Println("relay-worker stopped")
}
