package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/metrics"
)

const DefaultMaxWorkers = 10

var (
	ErrMissingDependencies = errors.New("batch: missing dependencies")
	ErrAlreadyRunning      = errors.New("batch: run already in progress")
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateCompleted:
		return "COMPLETED"
	}
	return "UNKNOWN"
}

type Charger interface {
	Charge(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, bool, error)
}

type PendingFetcher interface {
	FindByStatus(status invoice.Status) ([]invoice.Invoice, error)
}

// Job charges every PENDING invoice: one worker goroutine per chunk,
// invoices within a chunk strictly sequential, and Run blocks until
// every worker has finished. A single invoice's failure never aborts
// its chunk or the run.
type Job struct {
	invoices   PendingFetcher
	charger    Charger
	logger     logging.Logger
	metrics    *metrics.Metrics
	maxWorkers int

	state atomic.Int32
}

// NewJob fails fast on missing collaborators so a half-configured job
// instance cannot exist.
func NewJob(invoices PendingFetcher, charger Charger, logger logging.Logger, m *metrics.Metrics, maxWorkers int) (*Job, error) {
	if invoices == nil || charger == nil || logger == nil || m == nil {
		return nil, ErrMissingDependencies
	}
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}

	return &Job{
		invoices:   invoices,
		charger:    charger,
		logger:     logger,
		metrics:    m,
		maxWorkers: maxWorkers,
	}, nil
}

func (j *Job) State() State {
	return State(j.state.Load())
}

func (j *Job) Run(ctx context.Context) error {
	if !j.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) &&
		!j.state.CompareAndSwap(int32(StateCompleted), int32(StateRunning)) {
		return ErrAlreadyRunning
	}
	defer j.state.Store(int32(StateCompleted))

	pending, err := j.invoices.FindByStatus(invoice.StatusPending)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		j.logger.Info("no pending invoices, nothing to charge", nil)
		return nil
	}

	started := time.Now()
	chunks := Partition(pending, j.maxWorkers)

	j.logger.Info("batch billing run started", map[string]any{
		"pending": len(pending),
		"workers": len(chunks),
	})

	var wg sync.WaitGroup
	for _, chunk := range chunks {
		wg.Add(1)
		go func(chunk []invoice.Invoice) {
			defer wg.Done()
			j.processChunk(ctx, chunk)
		}(chunk)
	}
	wg.Wait()

	j.metrics.BatchRuns.Inc()
	j.metrics.BatchDuration.Observe(time.Since(started).Seconds())

	j.logger.Info("batch billing run completed", map[string]any{
		"pending": len(pending),
		"took":    time.Since(started).String(),
	})

	return nil
}

func (j *Job) processChunk(ctx context.Context, chunk []invoice.Invoice) {
	for _, inv := range chunk {
		if ctx.Err() != nil {
			return
		}

		resolved, ok, err := j.charger.Charge(ctx, inv)
		if err != nil {
			j.logger.Error("invoice charge failed", map[string]any{
				"invoice-id": inv.ID,
				"error":      err.Error(),
			})
			continue
		}
		if !ok {
			// Retry budget exhausted; the invoice stays PENDING for
			// the next run.
			continue
		}

		j.logger.Info("invoice resolved", map[string]any{
			"invoice-id": resolved.ID,
			"status":     string(resolved.Status),
		})
	}
}
