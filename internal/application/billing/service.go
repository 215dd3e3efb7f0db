package billing

import (
	"context"
	"errors"

	"github.com/rcarvalho-pb/billing_engine-go/internal/application/contracts"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/customer"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/event"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/metrics"
)

type CustomerFetcher interface {
	FindByID(id int64) (customer.Customer, error)
}

type InvoiceUpdater interface {
	Update(inv invoice.Invoice) (invoice.Invoice, error)
}

// Service resolves the outcome of a single charge attempt. Every
// resolved invoice produces exactly one persistence write and one
// notification; a transient provider fault produces neither and is
// returned as a *TransientError for the retry layer.
type Service struct {
	Provider  contracts.PaymentProvider
	Converter contracts.CurrencyConverter
	Customers CustomerFetcher
	Invoices  InvoiceUpdater
	Events    contracts.EventHandler
	Logger    logging.Logger
	Metrics   *metrics.Metrics
}

func (s *Service) Charge(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	cust, err := s.Customers.FindByID(inv.CustomerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			s.emit(event.Event{
				Type:    event.NonExistentCustomer,
				Payload: event.NonExistentCustomerPayload{Invoice: inv},
			})
			return s.resolve(inv.WithStatus(invoice.StatusInconsistentData))
		}
		return invoice.Invoice{}, err
	}

	if cust.Currency != inv.Amount.Currency {
		converted, err := s.Converter.Convert(inv.Amount, cust.Currency)
		if err != nil {
			// A converter fault means the reference data cannot be
			// reconciled without manual intervention.
			s.emit(event.Event{
				Type:    event.UnableToConvertCurrency,
				Payload: event.UnableToConvertCurrencyPayload{Invoice: inv, Customer: cust},
			})
			return s.resolve(inv.WithStatus(invoice.StatusInconsistentData))
		}
		inv = inv.WithAmount(converted)
	}

	charged, err := s.Provider.Charge(ctx, inv)
	if err != nil {
		// Transient or not, the invoice is unresolved: no write, no event.
		return invoice.Invoice{}, err
	}

	result := inv.WithStatus(invoice.StatusPaymentFailed)
	if charged {
		result = inv.WithStatus(invoice.StatusPaid)
	}

	s.emit(event.Event{
		Type:    event.PaymentProcessed,
		Payload: event.PaymentProcessedPayload{Invoice: result},
	})

	return s.resolve(result)
}

func (s *Service) resolve(inv invoice.Invoice) (invoice.Invoice, error) {
	updated, err := s.Invoices.Update(inv)
	if err != nil {
		return invoice.Invoice{}, &UnableToUpdateError{Invoice: inv, Err: err}
	}

	s.Metrics.IncResolved(string(updated.Status))

	return updated, nil
}

func (s *Service) emit(evt event.Event) {
	if err := s.Events.Handle(evt); err != nil {
		s.Logger.Error("event handler failed", map[string]any{
			"event-type": string(evt.Type),
			"error":      err.Error(),
		})
	}
}
