package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/models"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/store"
)

func newTestStore(t *testing.T) *store.GORMStore {
	t.Helper()
	s, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedUser(t *testing.T, s *store.GORMStore, userID string, nextSeqNo int64) {
	t.Helper()
	require.NoError(t, s.DB().Create(&models.User{ID: userID, NextSeqNo: nextSeqNo}).Error)
}

// Reserving n=3 from nextSeqNo=5 returns 5 and advances the counter to 8.
func TestReserve_ReturnsFirstAndAdvances(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "u1", 5)

	first, err := s.Reserve(context.Background(), "u1", 3)
	require.NoError(t, err)
	require.Equal(t, int64(5), first)

	var u models.User
	require.NoError(t, s.DB().First(&u, "id = ?", "u1").Error)
	require.Equal(t, int64(8), u.NextSeqNo)
}

func TestReserve_MissingUserFails(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Reserve(context.Background(), "ghost", 1)
	require.ErrorIs(t, err, models.ErrSequenceAllocationFailed)
}

func TestReserve_Monotone(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "u1", 1)

	s1, err := s.Reserve(context.Background(), "u1", 1)
	require.NoError(t, err)
	s2, err := s.Reserve(context.Background(), "u1", 1)
	require.NoError(t, err)

	require.Greater(t, s2, s1)
}

// Two card ops with the same id and timestamp, distinguished only by
// clientId; "B" > "A" lexicographically so B wins.
func TestUpsertCard_LWWTieBreaksOnClientID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1", 1)
	ts := time.UnixMilli(100)

	require.NoError(t, s.UpsertCard(ctx, "u1", models.CardPayload{ID: "c1", Stability: 1.0}, ts, "A", 1))
	require.NoError(t, s.UpsertCard(ctx, "u1", models.CardPayload{ID: "c1", Stability: 2.0}, ts, "B", 2))

	var row models.Card
	require.NoError(t, s.DB().First(&row, "user_id = ? AND card_id = ?", "u1", "c1").Error)
	require.Equal(t, 2.0, row.Stability)
	require.Equal(t, "B", row.LastModifiedClient)
}

// An earlier timestamp never overwrites a later one.
func TestUpsertCardContent_LaterTimestampWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1", 1)

	require.NoError(t, s.UpsertCardContent(ctx, "u1",
		models.CardContentPayload{CardID: "c1", Front: "first"}, time.UnixMilli(100), "Z", 1))
	require.NoError(t, s.UpsertCardContent(ctx, "u1",
		models.CardContentPayload{CardID: "c1", Front: "stale"}, time.UnixMilli(99), "Z", 2))

	var row models.CardContent
	require.NoError(t, s.DB().First(&row, "user_id = ? AND card_id = ?", "u1", "c1").Error)
	require.Equal(t, "first", row.Front)
}

// Re-applying the same reviewLog id is a no-op, not an error.
func TestInsertReviewLog_DuplicateIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1", 1)
	p := models.ReviewLogPayload{ID: "r1", CardID: "c1", Grade: 3}

	require.NoError(t, s.InsertReviewLog(ctx, "u1", p, time.UnixMilli(100), "A", 1))
	require.NoError(t, s.InsertReviewLog(ctx, "u1", p, time.UnixMilli(200), "A", 2))

	var count int64
	require.NoError(t, s.DB().Model(&models.ReviewLog{}).
		Where("user_id = ? AND review_log_id = ?", "u1", "r1").Count(&count).Error)
	require.Equal(t, int64(1), count)

	var row models.ReviewLog
	require.NoError(t, s.DB().First(&row, "user_id = ? AND review_log_id = ?", "u1", "r1").Error)
	require.Equal(t, int64(1), row.SeqNo)
}

// clCount 1, 2, then a late replay of 1; final value is 2 and the card is
// considered in the deck because 2 is even.
func TestUpsertCardDeck_CounterIgnoresLateReplay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1", 1)

	apply := func(clCount int64, seqNo int64) {
		require.NoError(t, s.UpsertCardDeck(ctx, "u1",
			models.UpdateDeckCardPayload{CardID: "c1", DeckID: "d1", ClCount: clCount},
			time.UnixMilli(int64(seqNo)*100), "A", seqNo))
	}
	apply(1, 1)
	apply(2, 2)
	apply(1, 3) // late replay, must not regress clCount

	var row models.CardDeck
	require.NoError(t, s.DB().First(&row, "user_id = ? AND card_id = ? AND deck_id = ?", "u1", "c1", "d1").Error)
	require.Equal(t, int64(2), row.ClCount)
	require.True(t, row.InDeck())
}

// Replaying an already-applied LWW write (identical timestamp+clientId)
// leaves the stored row's metadata unchanged.
func TestUpsertCard_ReplaySameWriteIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1", 1)
	ts := time.UnixMilli(100)

	require.NoError(t, s.UpsertCard(ctx, "u1", models.CardPayload{ID: "c1", Stability: 1.0}, ts, "A", 1))
	require.NoError(t, s.UpsertCard(ctx, "u1", models.CardPayload{ID: "c1", Stability: 1.0}, ts, "A", 2))

	var row models.Card
	require.NoError(t, s.DB().First(&row, "user_id = ? AND card_id = ?", "u1", "c1").Error)
	require.Equal(t, int64(1), row.SeqNo)
}
