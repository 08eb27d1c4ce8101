// Package scores defines the clinical score vocabulary shared across the
// progression pipeline: the four tracked instruments, their valid ranges, and
// the fixed mappings that derive secondary scores from ADAS-Cog.
package scores

// Valid ranges for each instrument.
const (
	MMSEMin = 0.0
	MMSEMax = 30.0

	CDRSOBMin = 0.0
	CDRSOBMax = 18.0

	ADASCogMin = 0.0
	ADASCogMax = 70.0
)

// Population means used as baseline fallbacks when a caller omits a field.
// These are fixed clinical cohort averages; they are not correlated with any
// fields the caller does provide.
const (
	DefaultMMSE      = 17.6
	DefaultCDRGlobal = 1.0
	DefaultCDRSOB    = 7.4
	DefaultADASCog   = 28.9
)

// CDR-Global stage values. The instrument is categorical: a timepoint's
// cdr_global is always exactly one of these five.
var CDRGlobalStages = []float64{0, 0.5, 1, 2, 3}

// ScoreVector is one timepoint's clinical state.
type ScoreVector struct {
	MMSE      float64 // cognitive function, 0-30, higher is better
	CDRGlobal float64 // dementia stage, one of CDRGlobalStages, higher is worse
	CDRSOB    float64 // CDR sum of boxes, 0-18, higher is worse
	ADASCog   float64 // cognitive impairment total, 0-70, higher is worse; primary metric
}

// Sequence is an ordered series of score vectors. Index 0 is the baseline
// (most recent known observation); ADASCog is non-decreasing across the
// sequence for any generator or enforcer output.
type Sequence []ScoreVector

// Baseline anchors trajectory generation. All fields are concrete; use
// ResolveBaseline to fill omitted caller fields with the population means.
type Baseline struct {
	MMSE      float64
	CDRGlobal float64
	CDRSOB    float64
	ADASCog   float64
}

// ResolveBaseline builds a Baseline from optional caller-supplied fields,
// substituting the population mean for each nil field. Resolution happens
// once here, at the boundary, so the generation code never sees partial data.
func ResolveBaseline(mmse, cdrGlobal, cdrSOB, adasCog *float64) Baseline {
	b := Baseline{
		MMSE:      DefaultMMSE,
		CDRGlobal: DefaultCDRGlobal,
		CDRSOB:    DefaultCDRSOB,
		ADASCog:   DefaultADASCog,
	}
	if mmse != nil {
		b.MMSE = *mmse
	}
	if cdrGlobal != nil {
		b.CDRGlobal = *cdrGlobal
	}
	if cdrSOB != nil {
		b.CDRSOB = *cdrSOB
	}
	if adasCog != nil {
		b.ADASCog = *adasCog
	}
	return b
}

// CDRGlobalFromADAS maps an ADAS-Cog value onto the categorical CDR-Global
// stage using the fixed non-overlapping band table:
//
//	adas < 10        -> 0   (normal)
//	10 <= adas < 20  -> 0.5 (very mild)
//	20 <= adas < 32  -> 1   (mild)
//	32 <= adas < 55  -> 2   (moderate)
//	adas >= 55       -> 3   (severe)
func CDRGlobalFromADAS(adas float64) float64 {
	switch {
	case adas < 10:
		return 0
	case adas < 20:
		return 0.5
	case adas < 32:
		return 1
	case adas < 55:
		return 2
	default:
		return 3
	}
}

// MMSEFromADAS derives MMSE from ADAS-Cog via the fixed linear mapping
// (30 at adas=0 down to 0 at adas=70), clipped to the valid range.
func MMSEFromADAS(adas float64) float64 {
	return Clip(MMSEMax-adas*MMSEMax/ADASCogMax, MMSEMin, MMSEMax)
}

// CDRSOBFromADAS derives CDR-SOB from ADAS-Cog via the fixed linear mapping
// (0 at adas=0 up to 18 at adas=70), clipped to the valid range.
func CDRSOBFromADAS(adas float64) float64 {
	return Clip(adas*CDRSOBMax/ADASCogMax, CDRSOBMin, CDRSOBMax)
}

// Clip bounds v to [lo, hi].
func Clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsCDRGlobalStage reports whether v is exactly one of the five categorical
// CDR-Global values.
func IsCDRGlobalStage(v float64) bool {
	for _, s := range CDRGlobalStages {
		if v == s {
			return true
		}
	}
	return false
}
