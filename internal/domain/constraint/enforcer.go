// Package constraint repairs noisy score sequences, typically raw model
// output, into clinically valid progressions.
//
// ADAS-Cog is the authoritative metric: its decreases are reinterpreted as
// declines of equal magnitude, and every other score is overwritten with a
// deterministic function of the repaired ADAS-Cog. The output therefore
// satisfies every validation rule by construction, and re-enforcing an
// already-enforced sequence is a no-op.
package constraint

import (
	"fmt"
	"math"

	"github.com/neurotrack/progression/internal/domain/scores"
)

// RawPoint is one timepoint as delivered by an external source. Only ADASCog
// is consumed; it is a pointer because model output may omit it, which is an
// input error rather than a defaultable field.
type RawPoint struct {
	MMSE      *float64
	CDRGlobal *float64
	CDRSOB    *float64
	ADASCog   *float64
}

// RawSequence is an ordered series of raw timepoints.
type RawSequence []RawPoint

// Enforcer repairs raw sequences. Stateless; safe for concurrent use.
type Enforcer struct{}

// New returns a constraint enforcer.
func New() *Enforcer {
	return &Enforcer{}
}

// Enforce returns a repaired sequence of the same length as raw. It fails if
// raw is empty or any timepoint lacks an ADAS-Cog value; it never partially
// repairs.
func (e *Enforcer) Enforce(raw RawSequence) (scores.Sequence, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySequence
	}
	adas := make([]float64, len(raw))
	for t, p := range raw {
		if p.ADASCog == nil {
			return nil, fmt.Errorf("timepoint %d: %w", t, ErrMissingADAS)
		}
		adas[t] = *p.ADASCog
	}

	fixed := repairADAS(adas)

	seq := make(scores.Sequence, len(fixed))
	for t, v := range fixed {
		seq[t] = scores.ScoreVector{
			MMSE:      scores.MMSEFromADAS(v),
			CDRGlobal: scores.CDRGlobalFromADAS(v),
			CDRSOB:    scores.CDRSOBFromADAS(v),
			ADASCog:   v,
		}
	}
	return seq, nil
}

// repairADAS makes the series monotonically non-decreasing. The first value
// is clipped into range; each subsequent step applies the absolute value of
// the raw delta, so an apparent improvement becomes further decline of equal
// magnitude. Accumulation runs unclipped and the whole series is clipped
// once at the end, matching a single final-range pass.
func repairADAS(raw []float64) []float64 {
	fixed := make([]float64, len(raw))
	fixed[0] = scores.Clip(raw[0], scores.ADASCogMin, scores.ADASCogMax)
	for t := 1; t < len(raw); t++ {
		fixed[t] = fixed[t-1] + math.Abs(raw[t]-raw[t-1])
	}
	for t := range fixed {
		fixed[t] = scores.Clip(fixed[t], scores.ADASCogMin, scores.ADASCogMax)
	}
	return fixed
}
