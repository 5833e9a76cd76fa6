// Package models defines the wire-level operations, persisted entities, and
// domain errors of the flashcard sync ingestion core.
package models

import "errors"

// Errors returned by the ingestion core. Callers should use errors.Is
// against these sentinels rather than matching on message text.
var (
	// ErrTooManyOperations is returned by ValidateBatch when a batch exceeds
	// MaxOps. Do not reword its message; clients match on it verbatim.
	ErrTooManyOperations = errors.New("Too many operations")

	// ErrSequenceAllocationFailed is returned when the user row is missing or
	// the sequence-reservation update affected zero rows.
	ErrSequenceAllocationFailed = errors.New("sequence allocation failed")

	// ErrUnknownOperationType is returned when an operation's discriminator
	// falls outside the closed set of known kinds.
	ErrUnknownOperationType = errors.New("unknown operation type")

	// ErrStorageError wraps any underlying storage failure surfaced unchanged
	// to the caller. Use errors.Is to detect the category, errors.Unwrap (or
	// %w formatting at the call site) to inspect the underlying cause.
	ErrStorageError = errors.New("storage error")
)
