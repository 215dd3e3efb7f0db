package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	DKK Currency = "DKK"
	SEK Currency = "SEK"
	GBP Currency = "GBP"
)

func Currencies() []Currency {
	return []Currency{EUR, USD, DKK, SEK, GBP}
}

func (c Currency) Valid() bool {
	switch c {
	case EUR, USD, DKK, SEK, GBP:
		return true
	}
	return false
}

// Money is an immutable amount in a single currency.
type Money struct {
	Value    decimal.Decimal
	Currency Currency
}

func New(value decimal.Decimal, currency Currency) Money {
	return Money{Value: value, Currency: currency}
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Value.Equal(other.Value)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Value.String(), m.Currency)
}
