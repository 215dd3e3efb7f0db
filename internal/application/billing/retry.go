package billing

import (
	"context"
	"time"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/metrics"
)

type Charger interface {
	Charge(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error)
}

// Retrier wraps a Charger with bounded retry on transient provider
// failures. The delay is fixed, not exponential, and an exhausted
// budget is absorbed here: the invoice simply stays PENDING for the
// next scheduled run.
type Retrier struct {
	Charger    Charger
	MaxRetries int
	Delay      time.Duration
	Logger     logging.Logger
	Metrics    *metrics.Metrics
}

// Charge attempts to resolve inv, retrying up to MaxRetries times.
// The second return value reports whether the invoice was resolved.
// A non-transient failure is returned to the caller untouched.
func (r *Retrier) Charge(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, bool, error) {
	for retries := 0; ; retries++ {
		resolved, err := r.Charger.Charge(ctx, inv)
		if err == nil {
			return resolved, true, nil
		}
		if !IsTransient(err) {
			return invoice.Invoice{}, false, err
		}

		if retries == r.MaxRetries {
			r.Logger.Info("charge retries exhausted, leaving invoice pending", map[string]any{
				"invoice-id": inv.ID,
				"retries":    retries,
			})
			return invoice.Invoice{}, false, nil
		}

		r.Metrics.ChargeRetries.Inc()

		if err := sleep(ctx, r.Delay); err != nil {
			return invoice.Invoice{}, false, err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
