package infrastructure

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/airline/reservation-system/shared/events"
)

type recordingHandler struct {
	mux    sync.Mutex
	topics []string
	err    error
}

func (h *recordingHandler) Handle(_ context.Context, event *events.Event) error {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.topics = append(h.topics, event.EventType)
	return h.err
}

func (h *recordingHandler) seen() []string {
	h.mux.Lock()
	defer h.mux.Unlock()
	out := make([]string, len(h.topics))
	copy(out, h.topics)
	return out
}

func TestMemoryEventBus_DeliversInPublishOrder(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	handler := &recordingHandler{}
	assert.NoError(t, bus.Subscribe(context.Background(), "reservation.#", handler))

	assert.NoError(t, bus.Publish(context.Background(),
		events.NewEvent("RES-1", events.ReservationCreatedEvent, nil),
		events.NewEvent("RES-1", events.ReservationSeatReservedEvent, nil),
		events.NewEvent("RES-1", events.ReservationCompletedEvent, nil),
	))
	bus.Wait()

	assert.Equal(t, []string{
		events.ReservationCreatedEvent,
		events.ReservationSeatReservedEvent,
		events.ReservationCompletedEvent,
	}, handler.seen())
}

func TestMemoryEventBus_TopicFiltering(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	payments := &recordingHandler{}
	everything := &recordingHandler{}
	assert.NoError(t, bus.Subscribe(context.Background(), "payment.*", payments))
	assert.NoError(t, bus.Subscribe(context.Background(), "#", everything))

	assert.NoError(t, bus.Publish(context.Background(),
		events.NewEvent("PAY-1", events.PaymentApprovedEvent, nil),
		events.NewEvent("TKT-1", events.TicketIssuedEvent, nil),
	))
	bus.Wait()

	assert.Equal(t, []string{events.PaymentApprovedEvent}, payments.seen())
	assert.Equal(t, []string{events.PaymentApprovedEvent, events.TicketIssuedEvent}, everything.seen())
}

func TestMemoryEventBus_HandlerErrorReachesOnError(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	var (
		mux      sync.Mutex
		failures []string
	)
	bus.OnError = func(event *events.Event, err error) {
		mux.Lock()
		defer mux.Unlock()
		failures = append(failures, event.EventType+": "+err.Error())
	}

	broken := &recordingHandler{err: errors.New("handler exploded")}
	healthy := &recordingHandler{}
	assert.NoError(t, bus.Subscribe(context.Background(), "seat.reserved", broken))
	assert.NoError(t, bus.Subscribe(context.Background(), "seat.reserved", healthy))

	assert.NoError(t, bus.Publish(context.Background(),
		events.NewEvent("KE001", events.SeatReservedEvent, nil)))
	bus.Wait()

	// A failing subscriber does not block the others
	assert.Equal(t, []string{events.SeatReservedEvent}, healthy.seen())

	mux.Lock()
	defer mux.Unlock()
	assert.Equal(t, []string{"seat.reserved: handler exploded"}, failures)
}

func TestMemoryEventBus_PublishAfterClose(t *testing.T) {
	bus := NewMemoryEventBus()
	assert.NoError(t, bus.Close())

	err := bus.Publish(context.Background(), events.NewEvent("RES-1", events.ReservationCreatedEvent, nil))
	assert.Error(t, err)
}
