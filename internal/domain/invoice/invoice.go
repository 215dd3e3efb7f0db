package invoice

import (
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/money"
)

type Status string

const (
	StatusPending          Status = "PENDING"
	StatusPaid             Status = "PAID"
	StatusPaymentFailed    Status = "PAYMENT_FAILED"
	StatusInconsistentData Status = "INCONSISTENT_DATA"
)

// Invoice is an immutable value: transitions return a new Invoice
// instead of mutating in place.
type Invoice struct {
	ID         int64
	CustomerID int64
	Amount     money.Money
	Status     Status
}

func (i Invoice) WithStatus(status Status) Invoice {
	i.Status = status
	return i
}

func (i Invoice) WithAmount(amount money.Money) Invoice {
	i.Amount = amount
	return i
}
