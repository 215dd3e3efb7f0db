package contracts

import (
	"context"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/event"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/money"
)

// PaymentProvider charges a customer's account the amount on the invoice.
// A network-class fault is reported as a billing.TransientError.
type PaymentProvider interface {
	Charge(ctx context.Context, inv invoice.Invoice) (bool, error)
}

type CurrencyConverter interface {
	Convert(amount money.Money, target money.Currency) (money.Money, error)
}

// EventHandler is the notification sink. Handle failures are logged by
// the caller and never fed back into the charge flow.
type EventHandler interface {
	Handle(event.Event) error
}
