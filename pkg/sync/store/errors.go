package store

import "github.com/lfurzewaddock/spaced-backend/pkg/sync/models"

// storageError wraps a driver/GORM failure so callers can match it against
// models.ErrStorageError with errors.Is while still reaching the underlying
// cause with errors.Unwrap or %w.
type storageError struct {
	cause error
}

func (e *storageError) Error() string { return "storage error: " + e.cause.Error() }

func (e *storageError) Unwrap() error { return e.cause }

func (e *storageError) Is(target error) bool { return target == models.ErrStorageError }
