package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// EventHandler reacts to a ticket event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans ticket events out to subscribers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// Bus delivers events synchronously in subscription order. Handler failures,
// panics included, never abort delivery to the remaining handlers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]EventHandler)}
}

// Subscribe appends handler to eventType's subscribers.
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish runs every subscriber and joins their errors.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	subscribers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for i, handler := range subscribers {
		if err := deliver(ctx, handler, event); err != nil {
			errs = append(errs, fmt.Errorf("%s handler %d: %w", event.Type, i, err))
		}
	}
	return errors.Join(errs...)
}

func deliver(ctx context.Context, handler EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handler(ctx, event)
}
