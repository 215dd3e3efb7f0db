package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/billing_engine-go/internal/application/billing"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/customer"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/event"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/money"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/metrics"
)

const (
	existingCustomerID int64 = 222
	missingCustomerID  int64 = 404
)

type fakeCustomers struct {
	findByID func(int64) (customer.Customer, error)
}

func (f *fakeCustomers) FindByID(id int64) (customer.Customer, error) {
	return f.findByID(id)
}

type fakeInvoices struct {
	update func(invoice.Invoice) (invoice.Invoice, error)
}

func (f *fakeInvoices) Update(inv invoice.Invoice) (invoice.Invoice, error) {
	return f.update(inv)
}

type fakeProvider struct {
	charge func(invoice.Invoice) (bool, error)
}

func (f *fakeProvider) Charge(_ context.Context, inv invoice.Invoice) (bool, error) {
	return f.charge(inv)
}

type fakeConverter struct {
	convert func(money.Money, money.Currency) (money.Money, error)
}

func (f *fakeConverter) Convert(m money.Money, target money.Currency) (money.Money, error) {
	return f.convert(m, target)
}

type fakeEvents struct {
	handle func(event.Event) error
}

func (f *fakeEvents) Handle(evt event.Event) error {
	return f.handle(evt)
}

type harness struct {
	svc     *billing.Service
	updates []invoice.Invoice
	events  []event.Event

	providerCalls  int
	converterCalls int
}

func newHarness(chargeOutcome bool, chargeErr error) *harness {
	h := &harness{}

	h.svc = &billing.Service{
		Provider: &fakeProvider{charge: func(invoice.Invoice) (bool, error) {
			h.providerCalls++
			return chargeOutcome, chargeErr
		}},
		Converter: &fakeConverter{convert: func(m money.Money, target money.Currency) (money.Money, error) {
			h.converterCalls++
			return money.New(m.Value, target), nil
		}},
		Customers: &fakeCustomers{findByID: func(id int64) (customer.Customer, error) {
			if id == existingCustomerID {
				return customer.Customer{ID: existingCustomerID, Currency: money.EUR}, nil
			}
			return customer.Customer{}, customer.ErrNotFound
		}},
		Invoices: &fakeInvoices{update: func(inv invoice.Invoice) (invoice.Invoice, error) {
			h.updates = append(h.updates, inv)
			return inv, nil
		}},
		Events: &fakeEvents{handle: func(evt event.Event) error {
			h.events = append(h.events, evt)
			return nil
		}},
		Logger:  logging.Noop{},
		Metrics: metrics.New(prometheus.NewRegistry()),
	}

	return h
}

func eur(value string) money.Money {
	return money.New(decimal.RequireFromString(value), money.EUR)
}

func dkk(value string) money.Money {
	return money.New(decimal.RequireFromString(value), money.DKK)
}

func pendingInvoice(customerID int64, amount money.Money) invoice.Invoice {
	return invoice.Invoice{ID: 111, CustomerID: customerID, Amount: amount, Status: invoice.StatusPending}
}

func TestCharge_ProviderApproves_MarksInvoicePaid(t *testing.T) {
	h := newHarness(true, nil)
	inv := pendingInvoice(existingCustomerID, eur("140"))

	result, err := h.svc.Charge(context.Background(), inv)
	require.NoError(t, err)

	expected := inv.WithStatus(invoice.StatusPaid)
	require.Equal(t, expected, result)

	require.Len(t, h.updates, 1)
	require.Equal(t, expected, h.updates[0])

	require.Len(t, h.events, 1)
	require.Equal(t, event.PaymentProcessed, h.events[0].Type)
	require.Equal(t, event.PaymentProcessedPayload{Invoice: expected}, h.events[0].Payload)
}

func TestCharge_ProviderDeclines_MarksInvoicePaymentFailed(t *testing.T) {
	h := newHarness(false, nil)
	inv := pendingInvoice(existingCustomerID, eur("140"))

	result, err := h.svc.Charge(context.Background(), inv)
	require.NoError(t, err)

	expected := inv.WithStatus(invoice.StatusPaymentFailed)
	require.Equal(t, expected, result)
	require.Equal(t, []invoice.Invoice{expected}, h.updates)
	require.Len(t, h.events, 1)
	require.Equal(t, event.PaymentProcessed, h.events[0].Type)
}

func TestCharge_MissingCustomer_MarksInconsistentData(t *testing.T) {
	h := newHarness(true, nil)
	inv := pendingInvoice(missingCustomerID, eur("140"))

	result, err := h.svc.Charge(context.Background(), inv)
	require.NoError(t, err)

	expected := inv.WithStatus(invoice.StatusInconsistentData)
	require.Equal(t, expected, result)
	require.Equal(t, []invoice.Invoice{expected}, h.updates)

	require.Zero(t, h.providerCalls, "payment provider must not be contacted")
	require.Len(t, h.events, 1)
	require.Equal(t, event.NonExistentCustomer, h.events[0].Type)
	require.Equal(t, event.NonExistentCustomerPayload{Invoice: inv}, h.events[0].Payload)
}

func TestCharge_CurrencyMismatch_ConvertsBeforeCharging(t *testing.T) {
	h := newHarness(true, nil)

	var converterGot money.Money
	var converterTarget money.Currency
	h.svc.Converter = &fakeConverter{convert: func(m money.Money, target money.Currency) (money.Money, error) {
		converterGot = m
		converterTarget = target
		return eur("140"), nil
	}}

	var providerGot invoice.Invoice
	h.svc.Provider = &fakeProvider{charge: func(inv invoice.Invoice) (bool, error) {
		providerGot = inv
		return true, nil
	}}

	inv := pendingInvoice(existingCustomerID, dkk("1041.78"))

	result, err := h.svc.Charge(context.Background(), inv)
	require.NoError(t, err)

	require.True(t, converterGot.Equal(dkk("1041.78")), "converter must receive the original amount")
	require.Equal(t, money.EUR, converterTarget)
	require.True(t, providerGot.Amount.Equal(eur("140")), "provider must receive the converted amount")

	expected := invoice.Invoice{ID: 111, CustomerID: existingCustomerID, Amount: eur("140"), Status: invoice.StatusPaid}
	require.Equal(t, expected, result)
	require.Equal(t, []invoice.Invoice{expected}, h.updates)
}

func TestCharge_ConverterFailure_MarksInconsistentData(t *testing.T) {
	h := newHarness(true, nil)
	h.svc.Converter = &fakeConverter{convert: func(money.Money, money.Currency) (money.Money, error) {
		return money.Money{}, errors.New("rate unavailable")
	}}

	inv := pendingInvoice(existingCustomerID, dkk("1041.78"))

	result, err := h.svc.Charge(context.Background(), inv)
	require.NoError(t, err)

	require.Equal(t, invoice.StatusInconsistentData, result.Status)
	require.Zero(t, h.providerCalls, "payment provider must not be contacted")
	require.Len(t, h.events, 1)
	require.Equal(t, event.UnableToConvertCurrency, h.events[0].Type)
}

func TestCharge_TransientProviderFailure_LeavesInvoiceUnresolved(t *testing.T) {
	h := newHarness(false, &billing.TransientError{Err: errors.New("connection reset")})
	inv := pendingInvoice(existingCustomerID, eur("140"))

	_, err := h.svc.Charge(context.Background(), inv)
	require.Error(t, err)
	require.True(t, billing.IsTransient(err))

	require.Empty(t, h.updates, "an unresolved invoice must not be persisted")
	require.Empty(t, h.events, "an unresolved invoice must not emit a notification")
}

func TestCharge_UpdateFailure_ReturnsUnableToUpdate(t *testing.T) {
	h := newHarness(true, nil)
	h.svc.Invoices = &fakeInvoices{update: func(invoice.Invoice) (invoice.Invoice, error) {
		return invoice.Invoice{}, invoice.ErrNotFound
	}}

	inv := pendingInvoice(existingCustomerID, eur("140"))

	_, err := h.svc.Charge(context.Background(), inv)

	var updateErr *billing.UnableToUpdateError
	require.ErrorAs(t, err, &updateErr)
	require.Equal(t, inv.ID, updateErr.Invoice.ID)
	require.False(t, billing.IsTransient(err), "a persistence fault must not be retried")
}

func TestCharge_EventHandlerFailure_DoesNotAffectOutcome(t *testing.T) {
	h := newHarness(true, nil)
	h.svc.Events = &fakeEvents{handle: func(event.Event) error {
		return errors.New("sink unavailable")
	}}

	inv := pendingInvoice(existingCustomerID, eur("140"))

	result, err := h.svc.Charge(context.Background(), inv)
	require.NoError(t, err)
	require.Equal(t, invoice.StatusPaid, result.Status)
	require.Len(t, h.updates, 1)
}
