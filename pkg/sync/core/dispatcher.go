package core

import (
	"context"
	"time"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/metrics"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/models"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/store"
)

// Dispatcher applies enriched operations one at a time against a Store. It
// holds no mutable state of its own: the store is the sole shared mutable
// resource. metrics is optional instrumentation; a nil *metrics.Metrics is
// a safe no-op receiver.
type Dispatcher struct {
	store   store.Store
	metrics *metrics.Metrics
}

// Option configures optional Dispatcher behavior.
type Option func(*Dispatcher)

// WithMetrics attaches Prometheus instrumentation to the dispatcher.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// NewDispatcher builds a Dispatcher over s.
func NewDispatcher(s store.Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{store: s}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Apply looks up the handler matching op.Type, reserves one sequence
// number for op.UserID, invokes the handler with it, and propagates any
// error. The lookup comes first, so an unknown discriminator fails with
// ErrUnknownOperationType without reserving a number.
func (d *Dispatcher) Apply(ctx context.Context, op models.EnrichedOperation) error {
	h, ok := handlers[op.Type]
	if !ok {
		return models.ErrUnknownOperationType
	}

	seqNo, err := d.store.Reserve(ctx, op.UserID, 1)
	if err != nil {
		if err == models.ErrSequenceAllocationFailed {
			d.metrics.RecordSeqAllocFailure()
		}
		return err
	}

	lastModified := time.UnixMilli(op.Timestamp)
	if err := h(ctx, d.store, op, lastModified, seqNo); err != nil {
		return err
	}
	d.metrics.RecordOperation(string(op.Type))
	return nil
}

// ApplyBatch applies every operation in ops sequentially, in order,
// stopping at the first error: an already-applied operation stays applied
// even if a later one in the same batch fails.
func (d *Dispatcher) ApplyBatch(ctx context.Context, ops []models.EnrichedOperation) (applied int, err error) {
	for _, op := range ops {
		if err := d.Apply(ctx, op); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
