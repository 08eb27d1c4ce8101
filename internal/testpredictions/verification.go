package testpredictions

import (
	"context"
	"fmt"
	"log"
)

// Instrument bounds mirrored from the service's validation rules.
const (
	mmseMax    = 30.0
	cdrSOBMax  = 18.0
	adasCogMax = 70.0
)

// verifyResults checks every retrieved document against the clinical
// invariants the service promises: scores in range, CDR-Global categorical,
// and ADAS-Cog non-decreasing across the projection.
func verifyResults(_ context.Context, config *Config, docs []Document, stats *Stats) error {
	log.Println("verifying documents...")

	if len(docs) == 0 {
		return fmt.Errorf("no documents to verify")
	}

	valid := 0
	for _, doc := range docs {
		if err := verifyDocument(doc); err != nil {
			stats.DocumentsInvalid++
			if config.Verbose {
				log.Printf("document for %s invalid: %v", doc.PatientID, err)
			}
			continue
		}
		valid++
	}
	stats.DocumentsValid = valid

	if stats.DocumentsInvalid > 0 {
		return fmt.Errorf("%d of %d documents violated invariants", stats.DocumentsInvalid, len(docs))
	}

	log.Printf("all %d documents verified", valid)
	return nil
}

// verifyDocument checks one document's structure and score invariants.
func verifyDocument(doc Document) error {
	if doc.PatientID == "" {
		return fmt.Errorf("empty patient_id")
	}
	if len(doc.HistoricalSessions) == 0 {
		return fmt.Errorf("no historical sessions")
	}
	if doc.PredictionTimestamp == "" {
		return fmt.Errorf("empty prediction_timestamp")
	}

	prev := doc.HistoricalSessions[len(doc.HistoricalSessions)-1].PredictedScores
	if err := verifyScores(prev); err != nil {
		return fmt.Errorf("baseline: %w", err)
	}

	lastMonths := 0
	for i, fp := range doc.FuturePredictions {
		if err := verifyScores(fp.PredictedScores); err != nil {
			return fmt.Errorf("future prediction %d: %w", i, err)
		}
		if fp.MonthsFromLastVisit <= lastMonths {
			return fmt.Errorf("future prediction %d: months_from_last_visit not increasing", i)
		}
		lastMonths = fp.MonthsFromLastVisit

		if fp.PredictedScores.ADASCog < prev.ADASCog {
			return fmt.Errorf("future prediction %d: ADAS-Cog decreased from %.3f to %.3f",
				i, prev.ADASCog, fp.PredictedScores.ADASCog)
		}
		prev = fp.PredictedScores
	}
	return nil
}

// verifyScores checks range and categorical constraints on one timepoint.
func verifyScores(s ScoresPayload) error {
	if s.MMSE < 0 || s.MMSE > mmseMax {
		return fmt.Errorf("MMSE %.3f out of range", s.MMSE)
	}
	if s.CDRSOB < 0 || s.CDRSOB > cdrSOBMax {
		return fmt.Errorf("CDR_SOB %.3f out of range", s.CDRSOB)
	}
	if s.ADASCog < 0 || s.ADASCog > adasCogMax {
		return fmt.Errorf("ADAS_Cog %.3f out of range", s.ADASCog)
	}
	if !isStage(s.CDRGlobal) {
		return fmt.Errorf("CDR_Global %.3f is not a valid stage", s.CDRGlobal)
	}
	return nil
}

func isStage(v float64) bool {
	switch v {
	case 0, 0.5, 1, 2, 3:
		return true
	default:
		return false
	}
}
