// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/neurotrack/progression/internal/domain/constraint"
	"github.com/neurotrack/progression/internal/domain/validate"
	"github.com/neurotrack/progression/internal/report"
)

// rawPointPayload is one timepoint of an external sequence. Every field is
// optional on the wire; the enforcer decides what it can work with.
type rawPointPayload struct {
	MMSE      *float64 `json:"MMSE"`
	CDRGlobal *float64 `json:"CDR_Global"`
	CDRSOB    *float64 `json:"CDR_SOB"`
	ADASCog   *float64 `json:"ADAS_Cog"`
}

type enforceRequest struct {
	Sequence []rawPointPayload `json:"sequence"`
}

type enforceResponse struct {
	Sequence []report.Scores `json:"sequence"`
	Report   validate.Report `json:"report"`
}

// EnforceHandler handles synchronous constraint repair requests.
type EnforceHandler struct {
	deps Dependencies
}

// NewEnforceHandler creates a new enforce handler.
func NewEnforceHandler(deps Dependencies) *EnforceHandler {
	return &EnforceHandler{deps: deps}
}

// HandleEnforce handles POST /enforce requests.
func (h *EnforceHandler) HandleEnforce(w http.ResponseWriter, r *http.Request) {
	const op = "api.enforce"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req enforceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	raw := make(constraint.RawSequence, len(req.Sequence))
	for i, p := range req.Sequence {
		raw[i] = constraint.RawPoint{
			MMSE:      p.MMSE,
			CDRGlobal: p.CDRGlobal,
			CDRSOB:    p.CDRSOB,
			ADASCog:   p.ADASCog,
		}
	}

	fixed, rep, err := h.deps.Enforce(r.Context(), raw)
	if err != nil {
		if errors.Is(err, constraint.ErrEmptySequence) || errors.Is(err, constraint.ErrMissingADAS) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	resp := enforceResponse{
		Sequence: make([]report.Scores, len(fixed)),
		Report:   rep,
	}
	for i, v := range fixed {
		resp.Sequence[i] = report.FromVector(v)
	}
	writeJSON(w, http.StatusOK, resp)
}
