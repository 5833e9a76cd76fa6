package store

import (
	"context"
	"time"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/models"
)

// Each Upsert*/Insert* method below does the same three things: build the
// row from the decoded payload plus merge metadata, then hand it and the
// table's descriptor to the one generic primitive that applies. The
// per-table variance lives entirely in registry.go's descriptors.

func (s *GORMStore) UpsertCard(ctx context.Context, userID string, p models.CardPayload, lastModified time.Time, clientID string, seqNo int64) error {
	row := models.Card{
		UserID:        userID,
		CardID:        p.ID,
		Due:           p.Due,
		Stability:     p.Stability,
		Difficulty:    p.Difficulty,
		ElapsedDays:   p.ElapsedDays,
		ScheduledDays: p.ScheduledDays,
		Reps:          p.Reps,
		Lapses:        p.Lapses,
		State:         p.State,
		LastReview:    p.LastReview,
	}
	row.LastModified, row.LastModifiedClient, row.SeqNo = lastModified, clientID, seqNo
	return upsertConditional(ctx, s.db, row, cardDescriptor)
}

func (s *GORMStore) UpsertCardContent(ctx context.Context, userID string, p models.CardContentPayload, lastModified time.Time, clientID string, seqNo int64) error {
	row := models.CardContent{UserID: userID, CardID: p.CardID, Front: p.Front, Back: p.Back}
	row.LastModified, row.LastModifiedClient, row.SeqNo = lastModified, clientID, seqNo
	return upsertConditional(ctx, s.db, row, cardContentDescriptor)
}

func (s *GORMStore) UpsertCardDeleted(ctx context.Context, userID string, p models.CardDeletedPayload, lastModified time.Time, clientID string, seqNo int64) error {
	row := models.CardDeleted{UserID: userID, CardID: p.CardID, Deleted: p.Deleted}
	row.LastModified, row.LastModifiedClient, row.SeqNo = lastModified, clientID, seqNo
	return upsertConditional(ctx, s.db, row, cardDeletedDescriptor)
}

func (s *GORMStore) UpsertCardBookmarked(ctx context.Context, userID string, p models.CardBookmarkedPayload, lastModified time.Time, clientID string, seqNo int64) error {
	row := models.CardBookmarked{UserID: userID, CardID: p.CardID, Bookmarked: p.Bookmarked}
	row.LastModified, row.LastModifiedClient, row.SeqNo = lastModified, clientID, seqNo
	return upsertConditional(ctx, s.db, row, cardBookmarkedDescriptor)
}

func (s *GORMStore) UpsertCardSuspended(ctx context.Context, userID string, p models.CardSuspendedPayload, lastModified time.Time, clientID string, seqNo int64) error {
	row := models.CardSuspended{UserID: userID, CardID: p.CardID, Suspended: p.Suspended}
	row.LastModified, row.LastModifiedClient, row.SeqNo = lastModified, clientID, seqNo
	return upsertConditional(ctx, s.db, row, cardSuspendedDescriptor)
}

func (s *GORMStore) UpsertDeck(ctx context.Context, userID string, p models.DeckPayload, lastModified time.Time, clientID string, seqNo int64) error {
	row := models.Deck{UserID: userID, DeckID: p.ID, Name: p.Name, Description: p.Description, Deleted: p.Deleted}
	row.LastModified, row.LastModifiedClient, row.SeqNo = lastModified, clientID, seqNo
	return upsertConditional(ctx, s.db, row, deckDescriptor)
}

// InsertReviewLog inserts an immutable review event, silently ignoring the
// write if ReviewLogID already exists: the set is grow-only, so a
// duplicate can never be a correction.
func (s *GORMStore) InsertReviewLog(ctx context.Context, userID string, p models.ReviewLogPayload, lastModified time.Time, clientID string, seqNo int64) error {
	row := models.ReviewLog{
		UserID:          userID,
		ReviewLogID:     p.ID,
		CardID:          p.CardID,
		Grade:           p.Grade,
		State:           p.State,
		Due:             p.Due,
		Stability:       p.Stability,
		Difficulty:      p.Difficulty,
		ElapsedDays:     p.ElapsedDays,
		LastElapsedDays: p.LastElapsedDays,
		ScheduledDays:   p.ScheduledDays,
		Review:          p.Review,
		Duration:        p.Duration,
	}
	row.LastModified, row.LastModifiedClient, row.SeqNo = lastModified, clientID, seqNo
	return insertOnce(ctx, s.db, row, reviewLogKeyColumns)
}

func (s *GORMStore) UpsertReviewLogDeleted(ctx context.Context, userID string, p models.ReviewLogDeletedPayload, lastModified time.Time, clientID string, seqNo int64) error {
	row := models.ReviewLogDeleted{UserID: userID, ReviewLogID: p.ReviewLogID, Deleted: p.Deleted}
	row.LastModified, row.LastModifiedClient, row.SeqNo = lastModified, clientID, seqNo
	return upsertConditional(ctx, s.db, row, reviewLogDeletedDescriptor)
}

// UpsertCardDeck applies a counter-backed membership toggle: the write
// lands only if p.ClCount is strictly greater than the stored value,
// regardless of the merge-metadata timestamp.
func (s *GORMStore) UpsertCardDeck(ctx context.Context, userID string, p models.UpdateDeckCardPayload, lastModified time.Time, clientID string, seqNo int64) error {
	row := models.CardDeck{UserID: userID, CardID: p.CardID, DeckID: p.DeckID, ClCount: p.ClCount}
	row.LastModified, row.LastModifiedClient, row.SeqNo = lastModified, clientID, seqNo
	return upsertConditional(ctx, s.db, row, cardDeckDescriptor)
}
