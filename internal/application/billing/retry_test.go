package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/billing_engine-go/internal/application/billing"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/metrics"
)

type fakeCharger struct {
	charge func(context.Context, invoice.Invoice) (invoice.Invoice, error)
}

func (f *fakeCharger) Charge(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	return f.charge(ctx, inv)
}

func newRetrier(charger billing.Charger, maxRetries int, delay time.Duration) *billing.Retrier {
	return &billing.Retrier{
		Charger:    charger,
		MaxRetries: maxRetries,
		Delay:      delay,
		Logger:     logging.Noop{},
		Metrics:    metrics.New(prometheus.NewRegistry()),
	}
}

func TestRetrier_AlwaysTransient_GivesUpAfterMaxRetries(t *testing.T) {
	const (
		maxRetries = 3
		delay      = 5 * time.Millisecond
	)

	attempts := 0
	charger := &fakeCharger{charge: func(context.Context, invoice.Invoice) (invoice.Invoice, error) {
		attempts++
		return invoice.Invoice{}, &billing.TransientError{Err: errors.New("network down")}
	}}

	started := time.Now()
	resolved, ok, err := newRetrier(charger, maxRetries, delay).Charge(context.Background(), invoice.Invoice{ID: 1})

	require.NoError(t, err, "an exhausted retry budget is absorbed, not surfaced")
	require.False(t, ok)
	require.Zero(t, resolved)
	require.Equal(t, maxRetries+1, attempts)
	require.GreaterOrEqual(t, time.Since(started), time.Duration(maxRetries)*delay)
}

func TestRetrier_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	charger := &fakeCharger{charge: func(_ context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
		attempts++
		if attempts < 3 {
			return invoice.Invoice{}, &billing.TransientError{Err: errors.New("timeout")}
		}
		return inv.WithStatus(invoice.StatusPaid), nil
	}}

	resolved, ok, err := newRetrier(charger, 3, time.Millisecond).Charge(context.Background(), invoice.Invoice{ID: 7})

	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, invoice.StatusPaid, resolved.Status)
	require.Equal(t, 3, attempts)
}

func TestRetrier_NonTransientFailure_NotRetried(t *testing.T) {
	attempts := 0
	fault := &billing.UnableToUpdateError{Invoice: invoice.Invoice{ID: 9}, Err: invoice.ErrNotFound}
	charger := &fakeCharger{charge: func(context.Context, invoice.Invoice) (invoice.Invoice, error) {
		attempts++
		return invoice.Invoice{}, fault
	}}

	_, ok, err := newRetrier(charger, 3, time.Millisecond).Charge(context.Background(), invoice.Invoice{ID: 9})

	require.ErrorAs(t, err, new(*billing.UnableToUpdateError))
	require.False(t, ok)
	require.Equal(t, 1, attempts)
}

func TestRetrier_ContextCanceled_StopsWaiting(t *testing.T) {
	charger := &fakeCharger{charge: func(context.Context, invoice.Invoice) (invoice.Invoice, error) {
		return invoice.Invoice{}, &billing.TransientError{Err: errors.New("network down")}
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := newRetrier(charger, 3, time.Minute).Charge(ctx, invoice.Invoice{ID: 2})

	require.ErrorIs(t, err, context.Canceled)
	require.False(t, ok)
}
