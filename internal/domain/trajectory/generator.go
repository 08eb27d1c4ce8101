// Package trajectory synthesizes clinically plausible progression sequences
// forward in time from a single baseline observation.
//
// Generation is deterministic: every call seeds its own local random sources
// with fixed per-metric seeds, so for a fixed timepoint count two calls
// (including concurrent calls) produce bit-identical sequences. Nothing here
// touches the process-global random state.
package trajectory

import (
	"math"
	"math/rand"

	"github.com/neurotrack/progression/internal/domain/scores"
)

// Fixed per-metric seeds. Changing any of these changes every generated
// trajectory, so they are part of the output contract.
const (
	adasSeed   = 42
	mmseSeed   = 43
	cdrSOBSeed = 44
)

// ADAS-Cog step bounds: roughly 3-4 points of decline per year, so
// 1.4-1.9 points per 6-month interval.
const (
	adasStepMin = 1.4
	adasStepMax = 1.9
)

// Raw-walk step bounds for the mod-difference trajectories.
const (
	mmseStepMin = -1.4
	mmseStepMax = -1.0

	cdrSOBStepMin = 0.5
	cdrSOBStepMax = 0.9
)

// adasRescaleTarget is where a too-long ADAS trajectory's endpoint lands
// after rescaling. Deliberately below the 70 ceiling: the headroom preserves
// the clinical reporting convention of never pinning a projection at the
// instrument maximum.
const adasRescaleTarget = 61.3

// Generator produces synthetic score sequences. It is stateless; the zero
// value is usable and a single instance is safe for concurrent use.
type Generator struct{}

// New returns a trajectory generator.
func New() *Generator {
	return &Generator{}
}

// Generate synthesizes a sequence of horizonMonths/intervalMonths+1
// timepoints anchored at baseline. The extra timepoint is the baseline
// itself at t=0.
func (g *Generator) Generate(baseline scores.Baseline, horizonMonths, intervalMonths int) (scores.Sequence, error) {
	if horizonMonths <= 0 {
		return nil, ErrInvalidHorizon
	}
	if intervalMonths <= 0 {
		return nil, ErrInvalidInterval
	}

	n := horizonMonths/intervalMonths + 1

	adas := adasTrajectory(baseline.ADASCog, n)
	mmse := modDifferenceTrajectory(baseline.MMSE, n, mmseSeed, mmseStepMin, mmseStepMax, scores.MMSEMin, scores.MMSEMax)
	cdrSOB := modDifferenceTrajectory(baseline.CDRSOB, n, cdrSOBSeed, cdrSOBStepMin, cdrSOBStepMax, scores.CDRSOBMin, scores.CDRSOBMax)

	seq := make(scores.Sequence, n)
	for t := 0; t < n; t++ {
		seq[t] = scores.ScoreVector{
			MMSE:      mmse[t],
			CDRGlobal: scores.CDRGlobalFromADAS(adas[t]),
			CDRSOB:    cdrSOB[t],
			ADASCog:   adas[t],
		}
	}
	return seq, nil
}

// adasTrajectory builds the primary metric: a monotonic walk with uniform
// increments. If the endpoint overshoots the instrument ceiling the whole
// trajectory, baseline included, is rescaled so the endpoint lands at
// adasRescaleTarget.
func adasTrajectory(baseline float64, n int) []float64 {
	rng := rand.New(rand.NewSource(adasSeed))

	traj := make([]float64, n)
	traj[0] = baseline
	for t := 1; t < n; t++ {
		traj[t] = traj[t-1] + uniform(rng, adasStepMin, adasStepMax)
	}

	if traj[n-1] > scores.ADASCogMax {
		scale := adasRescaleTarget / traj[n-1]
		for t := range traj {
			traj[t] *= scale
		}
	}
	for t := range traj {
		traj[t] = scores.Clip(traj[t], scores.ADASCogMin, scores.ADASCogMax)
	}
	return traj
}

// modDifferenceTrajectory runs the two-pass mod-difference procedure: first a
// raw signed walk from the baseline, then a reported trajectory that
// accumulates the absolute value of consecutive raw deltas onto the baseline.
// The reported series is monotonically increasing by construction regardless
// of the raw walk's direction.
func modDifferenceTrajectory(baseline float64, n int, seed int64, stepMin, stepMax, clipLo, clipHi float64) []float64 {
	rng := rand.New(rand.NewSource(seed))

	raw := make([]float64, n)
	raw[0] = baseline
	for t := 1; t < n; t++ {
		raw[t] = raw[t-1] + uniform(rng, stepMin, stepMax)
	}

	traj := make([]float64, n)
	traj[0] = baseline
	for t := 1; t < n; t++ {
		traj[t] = traj[t-1] + math.Abs(raw[t]-raw[t-1])
	}

	if traj[n-1] > clipHi {
		scale := clipHi / traj[n-1]
		for t := range traj {
			traj[t] *= scale
		}
	}
	for t := range traj {
		traj[t] = scores.Clip(traj[t], clipLo, clipHi)
	}
	return traj
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
