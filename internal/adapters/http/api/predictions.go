// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/neurotrack/progression/internal/adapters/mq/queue"
	"github.com/neurotrack/progression/internal/app"
	"github.com/neurotrack/progression/pkg/metrics"
)

// PredictionsHandler handles prediction submission and document reads.
type PredictionsHandler struct {
	deps Dependencies
}

// NewPredictionsHandler creates a new predictions handler.
func NewPredictionsHandler(deps Dependencies) *PredictionsHandler {
	return &PredictionsHandler{deps: deps}
}

// HandlePostPrediction handles POST /predictions requests.
func (h *PredictionsHandler) HandlePostPrediction(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_prediction"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req predictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.RequestID) {
		metrics.RecordPredictionDuplicate()
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	if err := h.deps.Enqueue(r.Context(), req.toModel()); err != nil {
		// Roll back the "seen" status so the caller can retry the same id.
		h.deps.Unrecord(r.Context(), req.RequestID)
		switch {
		case errors.Is(err, app.ErrHorizonTooLarge):
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		case errors.Is(err, queue.ErrQueueFull), errors.Is(err, queue.ErrQueueClosed):
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}

// HandleGetDocument handles GET /predictions/{patient_id} requests.
func (h *PredictionsHandler) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_document"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	patientID := strings.TrimPrefix(r.URL.Path, "/predictions/")
	if patientID == "" || strings.Contains(patientID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	doc, err := h.deps.Document(r.Context(), patientID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
