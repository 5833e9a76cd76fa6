package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/core"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/models"
)

func TestValidateBatch_AcceptsAtCap(t *testing.T) {
	ops := make([]models.Operation, core.MaxOps)
	assert.NoError(t, core.ValidateBatch(ops))
}

// A batch of 10001 operations is rejected with the exact user-visible
// message "Too many operations".
func TestValidateBatch_RejectsOverCap(t *testing.T) {
	ops := make([]models.Operation, core.MaxOps+1)

	err := core.ValidateBatch(ops)

	assert.ErrorIs(t, err, models.ErrTooManyOperations)
	assert.Equal(t, "Too many operations", err.Error())
}
