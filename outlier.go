package ridegrid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// minOutlierSamples is the smallest input for which quartile estimation is
// meaningful; shorter inputs pass through unfiltered.
const minOutlierSamples = 4

const iqrFence = 1.5

// FilterOutliers returns the subset of values that fall inside the metric's
// accepted range: the Tukey fence [q1-1.5*iqr, q3+1.5*iqr] from nearest-rank
// quartiles, intersected with the metric's hard physical bounds. Relative
// order of survivors is preserved. The result does not map back to input
// positions; callers correlate survivors themselves.
func FilterOutliers(values []float64, spec MetricSpec) []float64 {
	if len(values) < minOutlierSamples {
		return append([]float64(nil), values...)
	}

	lo, hi := outlierBounds(values, spec)
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= lo && v <= hi {
			out = append(out, v)
		}
	}
	return out
}

func outlierBounds(values []float64, spec MetricSpec) (lo, hi float64) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := q3 - q1

	lo = math.Max(q1-iqrFence*iqr, spec.HardMin)
	hi = math.Min(q3+iqrFence*iqr, spec.HardMax)
	return lo, hi
}
