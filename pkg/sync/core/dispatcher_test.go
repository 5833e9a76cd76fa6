package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/core"
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
	require.NoError(t, s.DB().Create(&models.User{ID: "u1", NextSeqNo: 1}).Error)
	return s
}

func TestDispatcher_Apply_UnknownOperationType(t *testing.T) {
	s := newTestStore(t)
	d := core.NewDispatcher(s)

	err := d.Apply(context.Background(), models.EnrichedOperation{
		Type:     "bogus",
		UserID:   "u1",
		ClientID: "c1",
		Payload:  models.CardPayload{ID: "c1"},
	})
	require.ErrorIs(t, err, models.ErrUnknownOperationType)
}

func TestDispatcher_Apply_ReservesSeqNoPerOp(t *testing.T) {
	s := newTestStore(t)
	d := core.NewDispatcher(s)
	ctx := context.Background()

	require.NoError(t, d.Apply(ctx, models.EnrichedOperation{
		Type: models.OpCard, UserID: "u1", ClientID: "c1", Timestamp: 100,
		Payload: models.CardPayload{ID: "c1", Stability: 1.0},
	}))
	require.NoError(t, d.Apply(ctx, models.EnrichedOperation{
		Type: models.OpDeck, UserID: "u1", ClientID: "c1", Timestamp: 100,
		Payload: models.DeckPayload{ID: "d1", Name: "Spanish"},
	}))

	var card models.Card
	require.NoError(t, s.DB().First(&card, "user_id = ? AND card_id = ?", "u1", "c1").Error)
	var deck models.Deck
	require.NoError(t, s.DB().First(&deck, "user_id = ? AND deck_id = ?", "u1", "d1").Error)

	require.NotEqual(t, card.SeqNo, deck.SeqNo)
	require.Greater(t, deck.SeqNo, card.SeqNo)
}

func TestDispatcher_ApplyBatch_StopsAtFirstError(t *testing.T) {
	s := newTestStore(t)
	d := core.NewDispatcher(s)
	ctx := context.Background()

	ops := []models.EnrichedOperation{
		{Type: models.OpCard, UserID: "u1", ClientID: "c1", Timestamp: 100, Payload: models.CardPayload{ID: "c1"}},
		{Type: "bogus", UserID: "u1", ClientID: "c1", Timestamp: 100, Payload: models.CardPayload{ID: "c2"}},
		{Type: models.OpCard, UserID: "u1", ClientID: "c1", Timestamp: 100, Payload: models.CardPayload{ID: "c3"}},
	}

	applied, err := d.ApplyBatch(ctx, ops)
	require.ErrorIs(t, err, models.ErrUnknownOperationType)
	require.Equal(t, 1, applied)

	var count int64
	require.NoError(t, s.DB().Model(&models.Card{}).Where("user_id = ?", "u1").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestDispatcher_Apply_AllKnownKindsWired(t *testing.T) {
	s := newTestStore(t)
	d := core.NewDispatcher(s)
	ctx := context.Background()

	payloads := map[models.OperationType]any{
		models.OpCard:             models.CardPayload{ID: "c1"},
		models.OpCardContent:      models.CardContentPayload{CardID: "c1"},
		models.OpCardDeleted:      models.CardDeletedPayload{CardID: "c1"},
		models.OpCardBookmarked:   models.CardBookmarkedPayload{CardID: "c1"},
		models.OpCardSuspended:    models.CardSuspendedPayload{CardID: "c1"},
		models.OpDeck:             models.DeckPayload{ID: "d1"},
		models.OpReviewLog:        models.ReviewLogPayload{ID: "r1", CardID: "c1"},
		models.OpReviewLogDeleted: models.ReviewLogDeletedPayload{ReviewLogID: "r1"},
		models.OpUpdateDeckCard:   models.UpdateDeckCardPayload{CardID: "c1", DeckID: "d1", ClCount: 1},
	}

	for _, kind := range models.KnownOperationTypes {
		p, ok := payloads[kind]
		require.True(t, ok, "missing test payload for %s", kind)
		err := d.Apply(ctx, models.EnrichedOperation{
			Type: kind, UserID: "u1", ClientID: "c1", Timestamp: 100, Payload: p,
		})
		require.NoError(t, err, "operation kind %s", kind)
	}
}
