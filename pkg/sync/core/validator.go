// Package core implements the batch validator and dispatcher that sit
// between the request handler and pkg/sync/store: the part of the
// ingestion pipeline that decides what a batch of operations means,
// leaving how each one is merged to the store.
package core

import "github.com/lfurzewaddock/spaced-backend/pkg/sync/models"

// MaxOps is the hard cap on operations accepted in a single batch. It
// exists for back-pressure against malicious or runaway clients, not
// correctness; the validator does no per-operation inspection.
const MaxOps = 10000

// ValidateBatch rejects a batch whose length exceeds MaxOps. It is the
// only pre-flight gate the core performs: no sequence numbers are
// reserved, and no operation is inspected, until this passes.
func ValidateBatch(ops []models.Operation) error {
	if len(ops) > MaxOps {
		return models.ErrTooManyOperations
	}
	return nil
}

// BatchValidator is ValidateBatch with a configurable cap, for operators
// who want a lower ceiling than the default. A non-positive maxOps, or one
// above MaxOps, falls back to MaxOps.
type BatchValidator struct {
	maxOps int
}

// NewBatchValidator builds a BatchValidator capped at maxOps.
func NewBatchValidator(maxOps int) *BatchValidator {
	if maxOps <= 0 || maxOps > MaxOps {
		maxOps = MaxOps
	}
	return &BatchValidator{maxOps: maxOps}
}

// Validate rejects a batch whose length exceeds the configured cap.
func (v *BatchValidator) Validate(ops []models.Operation) error {
	if len(ops) > v.maxOps {
		return models.ErrTooManyOperations
	}
	return nil
}
