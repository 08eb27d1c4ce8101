// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/neurotrack/progression/internal/domain/scores"
)

type validateRequest struct {
	Sequence []scoresPayload `json:"sequence"`
}

// ValidateHandler handles read-only sequence validation requests.
type ValidateHandler struct {
	deps Dependencies
}

// NewValidateHandler creates a new validate handler.
func NewValidateHandler(deps Dependencies) *ValidateHandler {
	return &ValidateHandler{deps: deps}
}

// HandleValidate handles POST /validate requests. Validation never fails:
// any well-formed sequence, including an empty one, yields a report.
func (h *ValidateHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	seq := make(scores.Sequence, len(req.Sequence))
	for i, p := range req.Sequence {
		seq[i] = scores.ScoreVector{
			MMSE:      p.MMSE,
			CDRGlobal: p.CDRGlobal,
			CDRSOB:    p.CDRSOB,
			ADASCog:   p.ADASCog,
		}
	}
	writeJSON(w, http.StatusOK, h.deps.ValidateSequence(seq))
}
