package providers_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/money"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infrastructure/providers"
)

func TestConvert_DKKToEUR(t *testing.T) {
	converter := providers.NewRateTableConverter()

	got, err := converter.Convert(
		money.New(decimal.RequireFromString("1041.78"), money.DKK),
		money.EUR,
	)
	require.NoError(t, err)
	require.Equal(t, money.EUR, got.Currency)
	require.True(t, got.Value.Equal(decimal.RequireFromString("139.60")), "got %s", got.Value)
}

func TestConvert_SameCurrency_IsIdentity(t *testing.T) {
	converter := providers.NewRateTableConverter()

	amount := money.New(decimal.RequireFromString("250.50"), money.USD)
	got, err := converter.Convert(amount, money.USD)
	require.NoError(t, err)
	require.True(t, got.Equal(amount))
}

func TestConvert_UnknownCurrency(t *testing.T) {
	converter := providers.NewRateTableConverter()

	_, err := converter.Convert(money.New(decimal.NewFromInt(10), money.Currency("XXX")), money.EUR)
	require.Error(t, err)
}
