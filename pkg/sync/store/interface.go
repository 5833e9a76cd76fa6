package store

import (
	"context"
	"time"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/models"
)

// Store is the persistence surface the dispatcher depends on. Each Upsert*
// method applies one merge primitive to one table; InsertReviewLog is the
// sole grow-only-set operation. None of these return a domain result: the
// merge either lands (possibly as a no-op, if dominated) or fails with
// models.ErrStorageError.
type Store interface {
	// Reserve allocates n consecutive sequence numbers for userID and
	// returns the first.
	Reserve(ctx context.Context, userID string, n int64) (int64, error)

	UpsertCard(ctx context.Context, userID string, p models.CardPayload, lastModified time.Time, clientID string, seqNo int64) error
	UpsertCardContent(ctx context.Context, userID string, p models.CardContentPayload, lastModified time.Time, clientID string, seqNo int64) error
	UpsertCardDeleted(ctx context.Context, userID string, p models.CardDeletedPayload, lastModified time.Time, clientID string, seqNo int64) error
	UpsertCardBookmarked(ctx context.Context, userID string, p models.CardBookmarkedPayload, lastModified time.Time, clientID string, seqNo int64) error
	UpsertCardSuspended(ctx context.Context, userID string, p models.CardSuspendedPayload, lastModified time.Time, clientID string, seqNo int64) error
	UpsertDeck(ctx context.Context, userID string, p models.DeckPayload, lastModified time.Time, clientID string, seqNo int64) error
	InsertReviewLog(ctx context.Context, userID string, p models.ReviewLogPayload, lastModified time.Time, clientID string, seqNo int64) error
	UpsertReviewLogDeleted(ctx context.Context, userID string, p models.ReviewLogDeletedPayload, lastModified time.Time, clientID string, seqNo int64) error
	UpsertCardDeck(ctx context.Context, userID string, p models.UpdateDeckCardPayload, lastModified time.Time, clientID string, seqNo int64) error

	Healthcheck(ctx context.Context) error
	Close() error
}

var _ Store = (*GORMStore)(nil)
