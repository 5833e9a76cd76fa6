package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lfurzewaddock/spaced-backend/internal/logger"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/api/middleware"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/core"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/metrics"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/models"
)

// IngestHandler serves the sole write path of the sync API: batch
// submission of operations, enriched with the caller's authenticated
// identity and handed to the dispatcher one at a time.
type IngestHandler struct {
	dispatcher     *core.Dispatcher
	batchValidator *core.BatchValidator
	validate       *validator.Validate
	metrics        *metrics.Metrics
}

func NewIngestHandler(d *core.Dispatcher, bv *core.BatchValidator, m *metrics.Metrics) *IngestHandler {
	return &IngestHandler{dispatcher: d, batchValidator: bv, validate: validator.New(), metrics: m}
}

type batchResponse struct {
	Applied int `json:"applied"`
}

// Batch handles POST /api/v1/sync/batch. It validates the batch size,
// decodes and validates every operation's payload up front, then applies
// them sequentially, stopping at the first failure.
func (h *IngestHandler) Batch(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "authentication required")
		return
	}

	var req wireBatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "malformed request body: "+err.Error())
		return
	}

	if err := h.batchValidator.Validate(toOperations(req.Operations)); err != nil {
		if errors.Is(err, models.ErrTooManyOperations) {
			h.metrics.RecordBatch("rejected_too_many_ops", len(req.Operations))
			PayloadTooLarge(w, err.Error())
			return
		}
		InternalServerError(w, err.Error())
		return
	}

	ops := make([]models.EnrichedOperation, 0, len(req.Operations))
	for _, wireOp := range req.Operations {
		payload, err := decodePayload(wireOp.Type, wireOp.Payload)
		if err != nil {
			if errors.Is(err, models.ErrUnknownOperationType) {
				UnprocessableEntity(w, err.Error())
				return
			}
			BadRequest(w, err.Error())
			return
		}
		if err := h.validate.Struct(payload); err != nil {
			BadRequest(w, "invalid "+string(wireOp.Type)+" payload: "+err.Error())
			return
		}

		ops = append(ops, models.EnrichedOperation{
			Type:      wireOp.Type,
			Timestamp: wireOp.Timestamp,
			UserID:    claims.UserID,
			ClientID:  claims.ClientID,
			Payload:   payload,
		})
	}

	applied, err := h.dispatcher.ApplyBatch(r.Context(), ops)
	if err != nil {
		logger.ErrorCtx(r.Context(), "batch application failed",
			logger.KeyUserID, claims.UserID,
			logger.KeyBatchSize, len(ops),
			"applied", applied,
			"error", err.Error(),
		)
		h.metrics.RecordBatch("failed", len(ops))
		if errors.Is(err, models.ErrUnknownOperationType) {
			UnprocessableEntity(w, err.Error())
			return
		}
		InternalServerError(w, "failed to apply batch")
		return
	}

	h.metrics.RecordBatch("accepted", applied)
	logger.InfoCtx(r.Context(), "batch applied",
		logger.KeyUserID, claims.UserID,
		logger.KeyBatchSize, applied,
	)
	WriteJSONOK(w, batchResponse{Applied: applied})
}

func toOperations(wireOps []wireOperation) []models.Operation {
	ops := make([]models.Operation, len(wireOps))
	for i, w := range wireOps {
		ops[i] = models.Operation{Type: w.Type, Timestamp: w.Timestamp}
	}
	return ops
}
