// Package metrics exposes Prometheus instrumentation for the sync
// ingestion path: batches accepted/rejected, operations applied by kind,
// and sequence-allocation failures.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics tracks ingestion-path Prometheus metrics, all prefixed sync_.
type Metrics struct {
	BatchesTotal   *prometheus.CounterVec
	OperationsTotal *prometheus.CounterVec
	BatchSize      prometheus.Histogram
	SeqAllocFailuresTotal prometheus.Counter
}

// New creates sync metrics and registers them against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_batches_total",
				Help: "Total sync batches processed by outcome",
			},
			[]string{"outcome"}, // "accepted", "rejected_too_many_ops", "failed"
		),
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_operations_total",
				Help: "Total operations applied by kind",
			},
			[]string{"kind"},
		),
		BatchSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sync_batch_size",
				Help:    "Number of operations per accepted batch",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		SeqAllocFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sync_sequence_allocation_failures_total",
				Help: "Total sequence allocation failures (missing or zero-row user update)",
			},
		),
	}

	reg.MustRegister(m.BatchesTotal, m.OperationsTotal, m.BatchSize, m.SeqAllocFailuresTotal)
	return m
}

// RecordBatch records one batch's terminal outcome and, for accepted
// batches, its size.
func (m *Metrics) RecordBatch(outcome string, size int) {
	if m == nil {
		return
	}
	m.BatchesTotal.WithLabelValues(outcome).Inc()
	if outcome == "accepted" {
		m.BatchSize.Observe(float64(size))
	}
}

// RecordOperation records one successfully applied operation.
func (m *Metrics) RecordOperation(kind string) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(kind).Inc()
}

// RecordSeqAllocFailure records one sequence-allocation failure.
func (m *Metrics) RecordSeqAllocFailure() {
	if m == nil {
		return
	}
	m.SeqAllocFailuresTotal.Inc()
}
