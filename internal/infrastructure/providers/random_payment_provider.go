package providers

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/rcarvalho-pb/billing_engine-go/internal/application/billing"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
)

var errNetworkUnavailable = errors.New("payment provider unreachable")

// RandomPaymentProvider stands in for the real acquirer: it randomly
// approves, declines, or fails with a network fault.
type RandomPaymentProvider struct {
	mu          sync.Mutex
	rng         *rand.Rand
	FailureRate float64
}

func NewRandomPaymentProvider(seed int64, failureRate float64) *RandomPaymentProvider {
	return &RandomPaymentProvider{
		rng:         rand.New(rand.NewSource(seed)),
		FailureRate: failureRate,
	}
}

func (p *RandomPaymentProvider) Charge(ctx context.Context, inv invoice.Invoice) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rng.Float64() < p.FailureRate {
		return false, &billing.TransientError{Err: errNetworkUnavailable}
	}

	return p.rng.Intn(2) == 0, nil
}
