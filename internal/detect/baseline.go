package detect

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// baselineQuantile is the quantile treated as the feature-free level of a
// trace.
const baselineQuantile = 0.10

// Baseline estimates the feature-free level of y as its 10th percentile.
// Peaks occupy a small fraction of the samples in every experiment, so a
// low quantile tracks the background without fitting it. Rendering and
// reporting fall back to this level when no fitted background exists.
func Baseline(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sorted := make([]float64, len(y))
	copy(sorted, y)
	sort.Float64s(sorted)
	return stat.Quantile(baselineQuantile, stat.LinInterp, sorted, nil)
}
