package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/models"
)

// wireOperation mirrors models.Operation but keeps payload undecoded until
// the type discriminator selects a concrete Go type to decode it into.
type wireOperation struct {
	Type      models.OperationType `json:"type"`
	Timestamp int64                `json:"timestamp"`
	Payload   json.RawMessage      `json:"payload"`
}

// wireBatch is the request body of POST /api/v1/sync/batch.
type wireBatch struct {
	Operations []wireOperation `json:"operations"`
}

// decodePayload unmarshals raw into the payload struct matching kind, or
// reports models.ErrUnknownOperationType for anything outside the closed
// discriminator set.
func decodePayload(kind models.OperationType, raw json.RawMessage) (any, error) {
	var target any
	switch kind {
	case models.OpCard:
		target = &models.CardPayload{}
	case models.OpCardContent:
		target = &models.CardContentPayload{}
	case models.OpCardDeleted:
		target = &models.CardDeletedPayload{}
	case models.OpCardBookmarked:
		target = &models.CardBookmarkedPayload{}
	case models.OpCardSuspended:
		target = &models.CardSuspendedPayload{}
	case models.OpDeck:
		target = &models.DeckPayload{}
	case models.OpReviewLog:
		target = &models.ReviewLogPayload{}
	case models.OpReviewLogDeleted:
		target = &models.ReviewLogDeletedPayload{}
	case models.OpUpdateDeckCard:
		target = &models.UpdateDeckCardPayload{}
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownOperationType, kind)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decoding %q payload: %w", kind, err)
	}

	// Dereference back to the value type the dispatcher's handler table
	// expects (payload[T] type-asserts against the value, not a pointer).
	switch p := target.(type) {
	case *models.CardPayload:
		return *p, nil
	case *models.CardContentPayload:
		return *p, nil
	case *models.CardDeletedPayload:
		return *p, nil
	case *models.CardBookmarkedPayload:
		return *p, nil
	case *models.CardSuspendedPayload:
		return *p, nil
	case *models.DeckPayload:
		return *p, nil
	case *models.ReviewLogPayload:
		return *p, nil
	case *models.ReviewLogDeletedPayload:
		return *p, nil
	case *models.UpdateDeckCardPayload:
		return *p, nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownOperationType, kind)
	}
}
