package eventbus_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/event"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infrastructure/eventbus"
)

func TestPublish_RoutesByTypeAndCatchAll(t *testing.T) {
	bus := eventbus.NewInMemoryBus()

	var typed, all []event.Type
	bus.Subscribe(event.PaymentProcessed, func(evt event.Event) error {
		typed = append(typed, evt.Type)
		return nil
	})
	bus.SubscribeAll(func(evt event.Event) error {
		all = append(all, evt.Type)
		return nil
	})

	require.NoError(t, bus.Publish(event.Event{Type: event.PaymentProcessed}))
	require.NoError(t, bus.Publish(event.Event{Type: event.NonExistentCustomer}))

	require.Equal(t, []event.Type{event.PaymentProcessed}, typed)
	require.Equal(t, []event.Type{event.PaymentProcessed, event.NonExistentCustomer}, all)
}

func TestPublish_HandlerErrorStopsDelivery(t *testing.T) {
	bus := eventbus.NewInMemoryBus()

	bus.Subscribe(event.PaymentProcessed, func(event.Event) error {
		return errors.New("handler down")
	})

	require.Error(t, bus.Publish(event.Event{Type: event.PaymentProcessed}))
}
