package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the billing instrumentation. Tests pass a throwaway
// registry; the server registers against the default one.
type Metrics struct {
	InvoicesResolved *prometheus.CounterVec
	ChargeRetries    prometheus.Counter
	BatchRuns        prometheus.Counter
	BatchDuration    prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		InvoicesResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_invoices_resolved_total",
			Help: "Invoices resolved per charge outcome.",
		}, []string{"outcome"}),
		ChargeRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "billing_charge_retries_total",
			Help: "Charge attempts retried after a transient provider failure.",
		}),
		BatchRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "billing_batch_runs_total",
			Help: "Completed batch billing runs.",
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "billing_batch_run_duration_seconds",
			Help:    "Wall-clock duration of a batch billing run.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
}

func (m *Metrics) IncResolved(outcome string) {
	m.InvoicesResolved.WithLabelValues(outcome).Inc()
}
