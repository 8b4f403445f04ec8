// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nahid/floodcast/internal/domain/features"
	"github.com/nahid/floodcast/internal/domain/risk"
)

// PredictDependencies defines the interface for prediction operations.
type PredictDependencies interface {
	Predict(ctx context.Context, req features.Request) (risk.Assessment, error)
	PredictBatch(ctx context.Context, reqs []features.Request) ([]risk.BatchItem, error)
}

// PredictHandler handles single and batch prediction requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// batchRequest mirrors the wire schema for POST /predict/batch.
type batchRequest struct {
	Predictions []features.Request `json:"predictions"`
}

// batchResponse carries per-item outcomes plus summary counts.
type batchResponse struct {
	Predictions   []predictionResponse `json:"predictions"`
	TotalCount    int                  `json:"total_count"`
	HighRiskCount int                  `json:"high_risk_count"`
}

// HandlePredict handles POST /predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req features.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", WrapKind(op, ErrBadRequest, err))
		return
	}

	assessment, err := h.deps.Predict(r.Context(), req)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, toPredictionResponse(assessment))
}

// HandlePredictBatch handles POST /predict/batch requests. Items are scored
// independently; a failed item carries its error inline while the rest of
// the batch still succeeds.
func (h *PredictHandler) HandlePredictBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", WrapKind(op, ErrBadRequest, err))
		return
	}

	items, err := h.deps.PredictBatch(r.Context(), req.Predictions)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}

	resp := batchResponse{Predictions: make([]predictionResponse, len(items))}
	for i, item := range items {
		if item.Err != nil {
			resp.Predictions[i] = predictionResponse{Error: item.Err.Error()}
			continue
		}
		resp.Predictions[i] = toPredictionResponse(item.Assessment)
		if item.Assessment.Level == risk.High {
			resp.HighRiskCount++
		}
	}
	resp.TotalCount = len(items)
	writeJSON(w, http.StatusOK, resp)
}
