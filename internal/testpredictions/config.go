package testpredictions

import "time"

// Config holds configuration for the prediction load test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumPatients int           // Number of synthetic patients to submit
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for generated requests
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// BaselinePayload mirrors the optional baseline block of POST /predictions.
type BaselinePayload struct {
	MMSE      *float64 `json:"mmse,omitempty"`
	CDRGlobal *float64 `json:"cdr_global,omitempty"`
	CDRSOB    *float64 `json:"cdr_sob,omitempty"`
	ADASCog   *float64 `json:"adas_cog,omitempty"`
}

// PredictionRequest mirrors the POST /predictions wire schema.
type PredictionRequest struct {
	RequestID      string          `json:"request_id"`
	PatientID      string          `json:"patient_id"`
	SessionDate    string          `json:"session_date"`
	Baseline       BaselinePayload `json:"baseline"`
	HorizonMonths  int             `json:"horizon_months"`
	IntervalMonths int             `json:"interval_months"`
}

// ScoresPayload mirrors the wire form of one timepoint's scores.
type ScoresPayload struct {
	MMSE      float64 `json:"MMSE"`
	CDRGlobal float64 `json:"CDR_Global"`
	CDRSOB    float64 `json:"CDR_SOB"`
	ADASCog   float64 `json:"ADAS_Cog"`
}

// HistoricalSession mirrors one historical visit in a document.
type HistoricalSession struct {
	SessionDate     string         `json:"session_date"`
	ActualScores    *ScoresPayload `json:"actual_scores"`
	PredictedScores ScoresPayload  `json:"predicted_scores"`
}

// FuturePrediction mirrors one projected timepoint in a document.
type FuturePrediction struct {
	MonthsFromLastVisit int           `json:"months_from_last_visit"`
	PredictedScores     ScoresPayload `json:"predicted_scores"`
}

// Document mirrors the GET /predictions/{patient_id} response.
type Document struct {
	PatientID           string              `json:"patient_id"`
	PredictionTimestamp string              `json:"prediction_timestamp"`
	HistoricalSessions  []HistoricalSession `json:"historical_sessions"`
	FuturePredictions   []FuturePrediction  `json:"future_predictions"`
}

// AckResponse represents the response from prediction submission
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds test statistics
type Stats struct {
	RequestsGenerated   int
	RequestsSubmitted   int
	RequestsSuccessful  int
	RequestsDuplicate   int
	RequestsFailed      int
	DocumentsRetrieved  int
	DocumentsValid      int
	DocumentsInvalid    int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
