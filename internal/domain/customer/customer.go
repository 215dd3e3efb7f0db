package customer

import (
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/money"
)

// Customer is read-only from the billing flow's perspective.
type Customer struct {
	ID       int64
	Currency money.Currency
}
