package core

import (
	"context"
	"fmt"
	"time"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/models"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/store"
)

// handler binds one operation kind to one store call: decode the already-
// typed payload, derive lastModified from the wire timestamp, and forward
// to the matching merge primitive with the allocated seqNo. Every handler
// has this same shape.
type handler func(ctx context.Context, s store.Store, op models.EnrichedOperation, lastModified time.Time, seqNo int64) error

// handlers is the closed, compile-time-populated operation-kind →
// merge-primitive mapping. Dispatcher.Apply looks up op.Type here; a miss
// means an unknown discriminator.
var handlers = map[models.OperationType]handler{
	models.OpCard: func(ctx context.Context, s store.Store, op models.EnrichedOperation, lm time.Time, seqNo int64) error {
		p, err := payload[models.CardPayload](op)
		if err != nil {
			return err
		}
		return s.UpsertCard(ctx, op.UserID, p, lm, op.ClientID, seqNo)
	},
	models.OpCardContent: func(ctx context.Context, s store.Store, op models.EnrichedOperation, lm time.Time, seqNo int64) error {
		p, err := payload[models.CardContentPayload](op)
		if err != nil {
			return err
		}
		return s.UpsertCardContent(ctx, op.UserID, p, lm, op.ClientID, seqNo)
	},
	models.OpCardDeleted: func(ctx context.Context, s store.Store, op models.EnrichedOperation, lm time.Time, seqNo int64) error {
		p, err := payload[models.CardDeletedPayload](op)
		if err != nil {
			return err
		}
		return s.UpsertCardDeleted(ctx, op.UserID, p, lm, op.ClientID, seqNo)
	},
	models.OpCardBookmarked: func(ctx context.Context, s store.Store, op models.EnrichedOperation, lm time.Time, seqNo int64) error {
		p, err := payload[models.CardBookmarkedPayload](op)
		if err != nil {
			return err
		}
		return s.UpsertCardBookmarked(ctx, op.UserID, p, lm, op.ClientID, seqNo)
	},
	models.OpCardSuspended: func(ctx context.Context, s store.Store, op models.EnrichedOperation, lm time.Time, seqNo int64) error {
		p, err := payload[models.CardSuspendedPayload](op)
		if err != nil {
			return err
		}
		return s.UpsertCardSuspended(ctx, op.UserID, p, lm, op.ClientID, seqNo)
	},
	models.OpDeck: func(ctx context.Context, s store.Store, op models.EnrichedOperation, lm time.Time, seqNo int64) error {
		p, err := payload[models.DeckPayload](op)
		if err != nil {
			return err
		}
		return s.UpsertDeck(ctx, op.UserID, p, lm, op.ClientID, seqNo)
	},
	models.OpReviewLog: func(ctx context.Context, s store.Store, op models.EnrichedOperation, lm time.Time, seqNo int64) error {
		p, err := payload[models.ReviewLogPayload](op)
		if err != nil {
			return err
		}
		return s.InsertReviewLog(ctx, op.UserID, p, lm, op.ClientID, seqNo)
	},
	models.OpReviewLogDeleted: func(ctx context.Context, s store.Store, op models.EnrichedOperation, lm time.Time, seqNo int64) error {
		p, err := payload[models.ReviewLogDeletedPayload](op)
		if err != nil {
			return err
		}
		return s.UpsertReviewLogDeleted(ctx, op.UserID, p, lm, op.ClientID, seqNo)
	},
	models.OpUpdateDeckCard: func(ctx context.Context, s store.Store, op models.EnrichedOperation, lm time.Time, seqNo int64) error {
		p, err := payload[models.UpdateDeckCardPayload](op)
		if err != nil {
			return err
		}
		return s.UpsertCardDeck(ctx, op.UserID, p, lm, op.ClientID, seqNo)
	},
}

// payload asserts op.Payload to T. A mismatch means the request handler
// decoded the wrong shape for op.Type, which is a caller bug, not a
// client-facing UnknownOperationType.
func payload[T any](op models.EnrichedOperation) (T, error) {
	p, ok := op.Payload.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("core: operation %q carries payload of type %T, want %T", op.Type, op.Payload, zero)
	}
	return p, nil
}
