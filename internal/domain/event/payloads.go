package event

import (
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/customer"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
)

type PaymentProcessedPayload struct {
	Invoice invoice.Invoice
}

type NonExistentCustomerPayload struct {
	Invoice invoice.Invoice
}

type UnableToConvertCurrencyPayload struct {
	Invoice  invoice.Invoice
	Customer customer.Customer
}

// InconsistentDataPayload carries the customer when it is known;
// a nil Customer means the lookup itself came back empty.
type InconsistentDataPayload struct {
	Invoice  invoice.Invoice
	Customer *customer.Customer
}
