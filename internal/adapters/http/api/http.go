// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/neurotrack/progression/internal/adapters/repository"
	"github.com/neurotrack/progression/internal/app"
	"github.com/neurotrack/progression/internal/domain/constraint"
	"github.com/neurotrack/progression/internal/domain/model"
	"github.com/neurotrack/progression/internal/domain/scores"
	"github.com/neurotrack/progression/internal/domain/validate"
	"github.com/neurotrack/progression/internal/report"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Idempotency tracking on request ids.
	SeenAndRecord(ctx context.Context, requestID string) bool
	Unrecord(ctx context.Context, requestID string)

	// Enqueue pushes a prediction request for async processing.
	Enqueue(ctx context.Context, req model.PredictionRequest) error

	// Synchronous paths.
	Enforce(ctx context.Context, raw constraint.RawSequence) (scores.Sequence, validate.Report, error)
	ValidateSequence(seq scores.Sequence) validate.Report

	// Read side.
	Document(ctx context.Context, patientID string) (report.Document, error)
}

// Stats mirrors the service snapshot returned by GET /stats.
type Stats = app.Stats

// StatsProvider exposes a point-in-time pipeline snapshot.
type StatsProvider interface {
	GetStats() Stats
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	predictionsHandler *PredictionsHandler
	enforceHandler     *EnforceHandler
	validateHandler    *ValidateHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		predictionsHandler: NewPredictionsHandler(deps),
		enforceHandler:     NewEnforceHandler(deps),
		validateHandler:    NewValidateHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/predictions", MetricsMiddleware(s.predictionsHandler.HandlePostPrediction, "predictions"))
	mux.HandleFunc("/predictions/", MetricsMiddleware(s.predictionsHandler.HandleGetDocument, "predictions_get"))
	mux.HandleFunc("/enforce", MetricsMiddleware(s.enforceHandler.HandleEnforce, "enforce"))
	mux.HandleFunc("/validate", MetricsMiddleware(s.validateHandler.HandleValidate, "validate"))
}

// baselineRequest carries the optional baseline fields of POST /predictions.
// Omitted fields fall back to population means.
type baselineRequest struct {
	MMSE      *float64 `json:"mmse"`
	CDRGlobal *float64 `json:"cdr_global"`
	CDRSOB    *float64 `json:"cdr_sob"`
	ADASCog   *float64 `json:"adas_cog"`
}

// predictionRequest mirrors the OpenAPI schema for POST /predictions.
type predictionRequest struct {
	RequestID      string           `json:"request_id"`
	PatientID      string           `json:"patient_id"`
	SessionDate    string           `json:"session_date"`
	Baseline       baselineRequest  `json:"baseline"`
	ActualScores   *scoresPayload   `json:"actual_scores"`
	HorizonMonths  int              `json:"horizon_months"`
	IntervalMonths int              `json:"interval_months"`
}

// scoresPayload is the wire form of a measured score vector; all four values
// are required when the object is present.
type scoresPayload struct {
	MMSE      float64 `json:"MMSE"`
	CDRGlobal float64 `json:"CDR_Global"`
	CDRSOB    float64 `json:"CDR_SOB"`
	ADASCog   float64 `json:"ADAS_Cog"`
}

func (p predictionRequest) validate() error {
	switch {
	case strings.TrimSpace(p.RequestID) == "":
		return errors.New("missing request_id")
	case strings.TrimSpace(p.PatientID) == "":
		return errors.New("missing patient_id")
	case strings.TrimSpace(p.SessionDate) == "":
		return errors.New("missing session_date")
	}
	if _, err := time.Parse("2006-01-02", p.SessionDate); err != nil {
		return errors.New("invalid session_date; must be YYYY-MM-DD")
	}
	if p.HorizonMonths < 0 || p.IntervalMonths < 0 {
		return errors.New("horizon_months and interval_months must be non-negative")
	}
	if p.Baseline.CDRGlobal != nil && !scores.IsCDRGlobalStage(*p.Baseline.CDRGlobal) {
		return errors.New("baseline cdr_global must be one of 0, 0.5, 1, 2, 3")
	}
	return nil
}

// toModel converts the wire request into the queue payload.
func (p predictionRequest) toModel() model.PredictionRequest {
	req := model.PredictionRequest{
		RequestID:   p.RequestID,
		PatientID:   p.PatientID,
		SessionDate: p.SessionDate,
		Baseline: scores.ResolveBaseline(
			p.Baseline.MMSE, p.Baseline.CDRGlobal, p.Baseline.CDRSOB, p.Baseline.ADASCog),
		HorizonMonths:  p.HorizonMonths,
		IntervalMonths: p.IntervalMonths,
	}
	if p.ActualScores != nil {
		req.ActualScores = &scores.ScoreVector{
			MMSE:      p.ActualScores.MMSE,
			CDRGlobal: p.ActualScores.CDRGlobal,
			CDRSOB:    p.ActualScores.CDRSOB,
			ADASCog:   p.ActualScores.ADASCog,
		}
	}
	return req
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
