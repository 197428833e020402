package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	"github.com/gridwatch-lab/outage-events/internal/core/aggregation"
)

const namespace = "outaged"

// Store operation labels.
const (
	OpFindLatest = "find_latest"
	OpExtendEnd  = "extend_end"
	OpInsert     = "insert"
	OpQuery      = "query"
)

// Error reasons.
const (
	ReasonStoreUnavailable = "store_unavailable"
	ReasonInconsistent     = "inconsistent"
	ReasonLockTimeout      = "lock_timeout"
)

// Metrics contains Prometheus collectors for the ingestion pipeline.
// All methods are nil-safe so components can run without metrics.
type Metrics struct {
	SignalsTotal  *prometheus.CounterVec
	ErrorsTotal   *prometheus.CounterVec
	StoreDuration *prometheus.HistogramVec
	LockWait      prometheus.Histogram
}

// New creates and registers pipeline metrics with the given registerer.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		SignalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signals_total",
				Help:      "Outage signals processed, by outage type and decision outcome",
			},
			[]string{"outage_type", "outcome"},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signal_errors_total",
				Help:      "Signals that failed with an error, by reason",
			},
			[]string{"reason"},
		),
		StoreDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_op_duration_seconds",
				Help:      "Latency of event store operations",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"op"},
		),
		LockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "key_lock_wait_seconds",
			Help:      "Time spent waiting for the per-key lock",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 3},
		}),
	}

	registerer.MustRegister(
		m.SignalsTotal,
		m.ErrorsTotal,
		m.StoreDuration,
		m.LockWait,
	)

	// Pre-create series so dashboards show zeros rather than gaps.
	for _, t := range v1.OutageTypes {
		for _, o := range aggregation.Outcomes {
			m.SignalsTotal.WithLabelValues(string(t), string(o))
		}
	}

	return m
}

// ObserveOutcome counts one decided signal.
func (m *Metrics) ObserveOutcome(t v1.OutageType, o aggregation.Outcome) {
	if m == nil {
		return
	}
	m.SignalsTotal.WithLabelValues(string(t), string(o)).Inc()
}

// ObserveError counts one failed signal.
func (m *Metrics) ObserveError(reason string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(reason).Inc()
}

// ObserveStore records the latency of one store operation started at start.
func (m *Metrics) ObserveStore(op string, start time.Time) {
	if m == nil {
		return
	}
	m.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// ObserveLockWait records how long a signal waited for its key lock.
func (m *Metrics) ObserveLockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.LockWait.Observe(d.Seconds())
}
