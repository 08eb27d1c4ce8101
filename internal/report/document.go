// Package report builds the per-patient prediction document exchanged with
// downstream consumers. Field names follow the established wire contract and
// must not be renamed.
package report

import (
	"time"

	"github.com/neurotrack/progression/internal/domain/model"
	"github.com/neurotrack/progression/internal/domain/scores"
)

// Scores is the wire form of one timepoint's predicted or measured scores.
// The mixed-case JSON keys are part of the contract.
type Scores struct {
	MMSE      float64 `json:"MMSE"`
	CDRGlobal float64 `json:"CDR_Global"`
	CDRSOB    float64 `json:"CDR_SOB"`
	ADASCog   float64 `json:"ADAS_Cog"`
}

// HistoricalSession is a visit that has already happened. ActualScores is
// null when no measurement was recorded for the visit.
type HistoricalSession struct {
	SessionDate     string  `json:"session_date"`
	ActualScores    *Scores `json:"actual_scores"`
	PredictedScores Scores  `json:"predicted_scores"`
}

// FuturePrediction is a projected timepoint, offset in months from the last
// historical visit.
type FuturePrediction struct {
	MonthsFromLastVisit int    `json:"months_from_last_visit"`
	PredictedScores     Scores `json:"predicted_scores"`
}

// Document is the full prediction payload for one patient.
type Document struct {
	PatientID           string              `json:"patient_id"`
	PredictionTimestamp string              `json:"prediction_timestamp"`
	HistoricalSessions  []HistoricalSession `json:"historical_sessions"`
	FuturePredictions   []FuturePrediction  `json:"future_predictions"`
}

// FromVector converts a domain score vector to its wire form.
func FromVector(v scores.ScoreVector) Scores {
	return Scores{
		MMSE:      v.MMSE,
		CDRGlobal: v.CDRGlobal,
		CDRSOB:    v.CDRSOB,
		ADASCog:   v.ADASCog,
	}
}

// Build assembles a Document from a prediction request and its generated
// sequence. Timepoint 0 of the sequence anchors at the request's session date
// and becomes the last (here: only) historical session; timepoints 1..n map
// to future predictions at multiples of the request interval.
func Build(req model.PredictionRequest, seq scores.Sequence, now time.Time) Document {
	doc := Document{
		PatientID:           req.PatientID,
		PredictionTimestamp: now.UTC().Format(time.RFC3339),
		HistoricalSessions:  []HistoricalSession{},
		FuturePredictions:   []FuturePrediction{},
	}
	if len(seq) == 0 {
		return doc
	}

	session := HistoricalSession{
		SessionDate:     req.SessionDate,
		PredictedScores: FromVector(seq[0]),
	}
	if req.ActualScores != nil {
		actual := FromVector(*req.ActualScores)
		session.ActualScores = &actual
	}
	doc.HistoricalSessions = append(doc.HistoricalSessions, session)

	for t := 1; t < len(seq); t++ {
		doc.FuturePredictions = append(doc.FuturePredictions, FuturePrediction{
			MonthsFromLastVisit: t * req.IntervalMonths,
			PredictedScores:     FromVector(seq[t]),
		})
	}
	return doc
}
