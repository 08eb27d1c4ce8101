// Package validate checks score sequences against the domain's range,
// categorical, and monotonicity rules. Validation is read-only and never
// fails: malformed input yields a report, not an error.
package validate

import (
	"github.com/neurotrack/progression/internal/domain/scores"
)

// Range is an observed (min, max) pair, serialized as a two-element array.
type Range [2]float64

// Report holds one boolean per rule plus the observed range for each
// instrument. Field names on the wire mirror the upstream consumers.
//
// AllValid aggregates the four range checks and ADAS monotonicity only.
// MMSEMonotonicDecreasing is computed and reported but deliberately excluded
// from the aggregate: generated MMSE trajectories legitimately violate it,
// and downstream consumers rely on the current aggregate semantics.
type Report struct {
	MMSEValid      bool  `json:"mmse_valid"`
	MMSERange      Range `json:"mmse_range"`
	CDRGlobalValid bool  `json:"cdr_global_valid"`
	CDRGlobalRange Range `json:"cdr_global_range"`
	CDRSOBValid    bool  `json:"cdr_sob_valid"`
	CDRSOBRange    Range `json:"cdr_sob_range"`
	ADASValid      bool  `json:"adas_valid"`
	ADASRange      Range `json:"adas_range"`

	ADASMonotonic           bool `json:"adas_monotonic"`
	MMSEMonotonicDecreasing bool `json:"mmse_monotonic_decreasing"`

	AllValid bool `json:"all_valid"`
}

// Validator checks sequences. Stateless; safe for concurrent use.
type Validator struct{}

// New returns a validator.
func New() *Validator {
	return &Validator{}
}

// Validate inspects seq and reports pass/fail per rule. An empty sequence
// yields a report with zero ranges and vacuously true checks.
func (v *Validator) Validate(seq scores.Sequence) Report {
	r := Report{
		MMSEValid:               true,
		CDRGlobalValid:          true,
		CDRSOBValid:             true,
		ADASValid:               true,
		ADASMonotonic:           true,
		MMSEMonotonicDecreasing: true,
	}
	if len(seq) == 0 {
		r.AllValid = true
		return r
	}

	r.MMSERange = Range{seq[0].MMSE, seq[0].MMSE}
	r.CDRGlobalRange = Range{seq[0].CDRGlobal, seq[0].CDRGlobal}
	r.CDRSOBRange = Range{seq[0].CDRSOB, seq[0].CDRSOB}
	r.ADASRange = Range{seq[0].ADASCog, seq[0].ADASCog}

	for t, sv := range seq {
		if sv.MMSE < scores.MMSEMin || sv.MMSE > scores.MMSEMax {
			r.MMSEValid = false
		}
		if !scores.IsCDRGlobalStage(sv.CDRGlobal) {
			r.CDRGlobalValid = false
		}
		if sv.CDRSOB < scores.CDRSOBMin || sv.CDRSOB > scores.CDRSOBMax {
			r.CDRSOBValid = false
		}
		if sv.ADASCog < scores.ADASCogMin || sv.ADASCog > scores.ADASCogMax {
			r.ADASValid = false
		}

		r.MMSERange = r.MMSERange.extend(sv.MMSE)
		r.CDRGlobalRange = r.CDRGlobalRange.extend(sv.CDRGlobal)
		r.CDRSOBRange = r.CDRSOBRange.extend(sv.CDRSOB)
		r.ADASRange = r.ADASRange.extend(sv.ADASCog)

		if t > 0 {
			if sv.ADASCog < seq[t-1].ADASCog {
				r.ADASMonotonic = false
			}
			if sv.MMSE > seq[t-1].MMSE {
				r.MMSEMonotonicDecreasing = false
			}
		}
	}

	r.AllValid = r.MMSEValid && r.CDRGlobalValid && r.CDRSOBValid && r.ADASValid && r.ADASMonotonic
	return r
}

func (rg Range) extend(v float64) Range {
	if v < rg[0] {
		rg[0] = v
	}
	if v > rg[1] {
		rg[1] = v
	}
	return rg
}
