package eventbus

import (
	"sync"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/event"
)

type HandlerFunc func(event.Event) error

// InMemoryBus fans billing notifications out to in-process consumers.
// It sits on the delivery side of the outbox: a Publish error keeps
// the event unpublished so the dispatcher retries it.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[event.Type][]HandlerFunc
	catchAll []HandlerFunc
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[event.Type][]HandlerFunc),
	}
}

func (b *InMemoryBus) Subscribe(eventType event.Type, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers a handler for every event type.
func (b *InMemoryBus) SubscribeAll(handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.catchAll = append(b.catchAll, handler)
}

func (b *InMemoryBus) Publish(evt event.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, handler := range b.handlers[evt.Type] {
		if err := handler(evt); err != nil {
			return err
		}
	}

	for _, handler := range b.catchAll {
		if err := handler(evt); err != nil {
			return err
		}
	}

	return nil
}
