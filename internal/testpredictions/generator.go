package testpredictions

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/neurotrack/progression/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 6
)

// Baseline severity profiles. Values stay inside each instrument's range so
// generated requests always pass API validation.
const (
	normalADASMin   = 2.0
	normalADASRange = 6.0

	veryMildADASMin   = 10.0
	veryMildADASRange = 9.0

	mildADASMin   = 20.0
	mildADASRange = 11.0

	moderateADASMin   = 32.0
	moderateADASRange = 20.0

	severeADASMin   = 55.0
	severeADASRange = 12.0
)

// Profile cases.
const (
	caseNormal   = 0
	caseVeryMild = 1
	caseMild     = 2
	caseModerate = 3
	caseSevere   = 4
	caseOmitted  = 5
)

// Horizon variants in months, always multiples of the 6-month interval.
var horizonChoices = []int{36, 60, 90, 120}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateRequests creates one prediction request per synthetic patient.
func generateRequests(ctx context.Context, config *Config, stats *Stats) ([]PredictionRequest, error) {
	logger.Get().Info(ctx, "generating prediction requests", logger.Int("numPatients", config.NumPatients))

	requests := make([]PredictionRequest, config.NumPatients)
	for i := range requests {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during request generation: %w", ctx.Err())
		default:
		}
		requests[i] = generateSingleRequest()
	}

	stats.RequestsGenerated = len(requests)
	logger.Get().Info(ctx, "generated requests successfully", logger.Int("count", len(requests)))
	return requests, nil
}

// generateSingleRequest builds a request with a varied baseline profile.
func generateSingleRequest() PredictionRequest {
	horizonIdx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(horizonChoices))))
	return PredictionRequest{
		RequestID:      uuid.New().String(),
		PatientID:      "patient_" + uuid.New().String(),
		SessionDate:    time.Now().UTC().Format("2006-01-02"),
		Baseline:       generateVariedBaseline(),
		HorizonMonths:  horizonChoices[horizonIdx.Int64()],
		IntervalMonths: 6,
	}
}

// generateVariedBaseline draws a severity profile and fills the baseline
// fields consistently with it. One profile omits every field to exercise the
// population-mean fallback.
func generateVariedBaseline() BaselinePayload {
	profile, _ := rand.Int(rand.Reader, big.NewInt(profileDivisor))

	var adas float64
	var cdrGlobal float64
	switch profile.Int64() {
	case caseNormal:
		adas = normalADASMin + getRandomFloat()*normalADASRange
		cdrGlobal = 0
	case caseVeryMild:
		adas = veryMildADASMin + getRandomFloat()*veryMildADASRange
		cdrGlobal = 0.5
	case caseMild:
		adas = mildADASMin + getRandomFloat()*mildADASRange
		cdrGlobal = 1
	case caseModerate:
		adas = moderateADASMin + getRandomFloat()*moderateADASRange
		cdrGlobal = 2
	case caseSevere:
		adas = severeADASMin + getRandomFloat()*severeADASRange
		cdrGlobal = 3
	case caseOmitted:
		// All fields omitted; the service substitutes population means.
		return BaselinePayload{}
	}

	// Derive the companion scores from ADAS the same way the service does,
	// keeping the synthetic baselines internally consistent.
	mmse := 30 - adas*30/70
	cdrSOB := adas * 18 / 70

	return BaselinePayload{
		MMSE:      &mmse,
		CDRGlobal: &cdrGlobal,
		CDRSOB:    &cdrSOB,
		ADASCog:   &adas,
	}
}
