// Package model contains domain models passed between layers.
package model

import "github.com/neurotrack/progression/internal/domain/scores"

// PredictionRequest is a queued unit of work: synthesize a progression
// trajectory for one patient anchored at the given baseline.
type PredictionRequest struct {
	RequestID      string              // unique id for idempotency
	PatientID      string              // subject identifier
	SessionDate    string              // date of the baseline visit, YYYY-MM-DD
	Baseline       scores.Baseline     // resolved baseline observation
	ActualScores   *scores.ScoreVector // measured scores at the baseline visit, if known
	HorizonMonths  int                 // total months to project
	IntervalMonths int                 // months between projected timepoints
}
