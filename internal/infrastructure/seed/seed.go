package seed

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/customer"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/money"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
)

const (
	customerCount       = 100
	invoicesPerCustomer = 10
)

// Run populates an empty database with demo customers and invoices:
// each customer gets one PENDING invoice and nine already-PAID ones,
// denominated in the customer's own currency.
func Run(customers customer.Repository, invoices invoice.Repository, logger logging.Logger) error {
	currencies := money.Currencies()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < customerCount; i++ {
		c, err := customers.Create(customer.Customer{
			Currency: currencies[rng.Intn(len(currencies))],
		})
		if err != nil {
			return fmt.Errorf("seed customer: %w", err)
		}

		for n := 0; n < invoicesPerCustomer; n++ {
			status := invoice.StatusPaid
			if n == 0 {
				status = invoice.StatusPending
			}

			amount := decimal.NewFromFloat(10 + rng.Float64()*490).Round(2)

			if _, err := invoices.Create(invoice.Invoice{
				CustomerID: c.ID,
				Amount:     money.New(amount, c.Currency),
				Status:     status,
			}); err != nil {
				return fmt.Errorf("seed invoice for customer %d: %w", c.ID, err)
			}
		}
	}

	logger.Info("seeded initial data", map[string]any{
		"customers": customerCount,
		"invoices":  customerCount * invoicesPerCustomer,
	})

	return nil
}
