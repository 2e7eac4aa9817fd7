package infrastructure

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/airline/reservation-system/shared/events"
)

var (
	_ events.Publisher  = (*MemoryEventBus)(nil)
	_ events.Subscriber = (*MemoryEventBus)(nil)
)

type memorySubscription struct {
	pattern events.Topic
	handler events.EventHandler
}

// MemoryEventBus is an in-process publisher and subscriber used for local
// runs and tests. A single dispatch goroutine delivers events in publish
// order, so every consumer observes the same ordering for a given
// reservation.
type MemoryEventBus struct {
	mux           sync.RWMutex
	subscriptions []memorySubscription
	queue         chan *events.Event
	done          chan struct{}
	wg            sync.WaitGroup
	closed        bool

	// OnError receives handler failures. Nil means failures are dropped,
	// matching at-most-once local delivery.
	OnError func(event *events.Event, err error)
}

// NewMemoryEventBus creates a started in-memory bus.
func NewMemoryEventBus() *MemoryEventBus {
	b := &MemoryEventBus{
		queue: make(chan *events.Event, 256),
		done:  make(chan struct{}),
	}
	go b.dispatch()
	return b
}

func (b *MemoryEventBus) dispatch() {
	for {
		select {
		case event := <-b.queue:
			if event == nil {
				continue
			}
			b.deliver(event)
			b.wg.Done()
		case <-b.done:
			return
		}
	}
}

func (b *MemoryEventBus) deliver(event *events.Event) {
	b.mux.RLock()
	subs := make([]memorySubscription, len(b.subscriptions))
	copy(subs, b.subscriptions)
	b.mux.RUnlock()

	for _, sub := range subs {
		if !event.Topic.Matches(sub.pattern) {
			continue
		}
		if err := sub.handler.Handle(context.Background(), event.Clone()); err != nil {
			if b.OnError != nil {
				b.OnError(event, err)
			}
		}
	}
}

// Publish enqueues events for asynchronous delivery
func (b *MemoryEventBus) Publish(ctx context.Context, evts ...*events.Event) error {
	b.mux.RLock()
	closed := b.closed
	b.mux.RUnlock()
	if closed {
		return errors.New("event bus is closed")
	}

	for _, event := range evts {
		b.wg.Add(1)
		select {
		case b.queue <- event:
		case <-ctx.Done():
			b.wg.Done()
			return ctx.Err()
		}
	}
	return nil
}

// Subscribe registers a handler for a topic pattern
func (b *MemoryEventBus) Subscribe(ctx context.Context, eventType string, handler events.EventHandler) error {
	pattern, err := events.NewTopic(eventType)
	if err != nil {
		return err
	}

	b.mux.Lock()
	defer b.mux.Unlock()
	b.subscriptions = append(b.subscriptions, memorySubscription{
		pattern: pattern,
		handler: handler,
	})
	return nil
}

// Wait blocks until every published event has been delivered. Intended for
// tests and graceful shutdown.
func (b *MemoryEventBus) Wait() {
	b.wg.Wait()
}

// Close stops the dispatcher after draining in-flight events
func (b *MemoryEventBus) Close() error {
	b.mux.Lock()
	if b.closed {
		b.mux.Unlock()
		return nil
	}
	b.closed = true
	b.mux.Unlock()

	b.wg.Wait()
	close(b.done)
	return nil
}
