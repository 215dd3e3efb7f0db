package providers

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/money"
)

// RateTableConverter converts through EUR using a fixed rate table:
// one unit of each currency expressed in EUR.
type RateTableConverter struct {
	rates map[money.Currency]decimal.Decimal
}

func NewRateTableConverter() *RateTableConverter {
	return &RateTableConverter{
		rates: map[money.Currency]decimal.Decimal{
			money.EUR: decimal.NewFromInt(1),
			money.USD: decimal.RequireFromString("0.92"),
			money.DKK: decimal.RequireFromString("0.134"),
			money.SEK: decimal.RequireFromString("0.088"),
			money.GBP: decimal.RequireFromString("1.17"),
		},
	}
}

func (c *RateTableConverter) Convert(amount money.Money, target money.Currency) (money.Money, error) {
	from, ok := c.rates[amount.Currency]
	if !ok {
		return money.Money{}, fmt.Errorf("no conversion rate for %s", amount.Currency)
	}
	to, ok := c.rates[target]
	if !ok {
		return money.Money{}, fmt.Errorf("no conversion rate for %s", target)
	}

	converted := amount.Value.Mul(from).Div(to).Round(2)
	return money.New(converted, target), nil
}
