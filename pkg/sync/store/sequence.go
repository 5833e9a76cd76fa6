package store

import (
	"context"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/models"
)

// Reserve atomically reserves the next n sequence numbers for userID and
// returns the first one; the caller owns [firstSeqNo, firstSeqNo+n). Gaps
// are expected and harmless: a number reserved for an operation whose
// merge then fails is simply never observed on any row.
//
// The reservation is a single UPDATE ... RETURNING statement, so two
// concurrent batches for the same user never observe or hand out
// overlapping ranges regardless of isolation level.
func (s *GORMStore) Reserve(ctx context.Context, userID string, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}

	var newNextSeqNo int64
	result := s.db.WithContext(ctx).Raw(
		`UPDATE users SET next_seq_no = next_seq_no + ? WHERE id = ? RETURNING next_seq_no`,
		n, userID,
	).Scan(&newNextSeqNo)

	if result.Error != nil {
		return 0, wrapStorageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, models.ErrSequenceAllocationFailed
	}

	return newNextSeqNo - n, nil
}
