package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInOrderDespiteFailures(t *testing.T) {
	bus := NewBus()
	var calls []string

	bus.Subscribe(EventTicketUpdated, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("smtp down")
	})
	bus.Subscribe(EventTicketUpdated, func(context.Context, Event) error {
		calls = append(calls, "second")
		panic("nil payload")
	})
	bus.Subscribe(EventTicketUpdated, func(_ context.Context, event Event) error {
		calls = append(calls, "third")
		assert.EqualValues(t, 9, event.TicketID)
		return nil
	})
	bus.Subscribe(EventTicketDeleted, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: EventTicketUpdated, TicketID: 9})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.Contains(t, err.Error(), "panic: nil payload")
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestBusWithoutSubscribers(t *testing.T) {
	assert.NoError(t, NewBus().Publish(context.Background(), Event{Type: EventTicketCreated}))
}
