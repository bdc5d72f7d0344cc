package detect

import (
	"math"
	"sort"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
)

// Options selects which peaks FindPeaks keeps.
//
// The zero value keeps every nonnegative local maximum: thresholds compare
// with >=, MinDistance below two never suppresses anything, and MinWidth
// zero skips the width criterion.
type Options struct {
	// MinHeight is the smallest value a peak sample may have.
	MinHeight float64

	// MinProminence is the smallest prominence a peak may have: the drop
	// from the peak to the higher of the two valley minima separating it
	// from higher ground.
	MinProminence float64

	// MinDistance suppresses any peak closer than this many samples to a
	// taller kept peak.
	MinDistance int

	// MinWidth is the smallest peak width in samples, measured at half
	// prominence with subsample interpolation.
	MinWidth float64
}

// FindPeaks returns the local maxima of y that satisfy every criterion in
// opts, in ascending index order. Flat plateau tops count once, at their
// middle sample; the first and last samples never count.
func FindPeaks(x, y []float64, opts Options) []model.Peak {
	indices := localMaxima(y)

	kept := indices[:0:0]
	for _, idx := range indices {
		if y[idx] >= opts.MinHeight {
			kept = append(kept, idx)
		}
	}

	if opts.MinDistance > 1 {
		kept = selectByDistance(kept, y, opts.MinDistance)
	}

	peaks := make([]model.Peak, 0, len(kept))
	for _, idx := range kept {
		prom := peakProminence(y, idx)
		if prom.value < opts.MinProminence {
			continue
		}
		if opts.MinWidth > 0 && peakWidth(y, idx, prom) < opts.MinWidth {
			continue
		}
		peaks = append(peaks, model.Peak{Index: idx, X: x[idx], Height: y[idx]})
	}
	return peaks
}

// Tallest returns the highest peak. Ties keep the earliest. The boolean is
// false for an empty slice.
func Tallest(peaks []model.Peak) (model.Peak, bool) {
	if len(peaks) == 0 {
		return model.Peak{}, false
	}
	best := peaks[0]
	for _, p := range peaks[1:] {
		if p.Height > best.Height {
			best = p
		}
	}
	return best, true
}

// localMaxima returns the indices of strict local maxima. A run of equal
// samples bounded by lower neighbors on both sides counts as one maximum
// at its middle index.
func localMaxima(y []float64) []int {
	var maxima []int
	n := len(y)
	i := 1
	for i < n-1 {
		if y[i-1] < y[i] {
			ahead := i + 1
			for ahead < n-1 && y[ahead] == y[i] {
				ahead++
			}
			if y[ahead] < y[i] {
				maxima = append(maxima, (i+ahead-1)/2)
				i = ahead
				continue
			}
		}
		i++
	}
	return maxima
}

// selectByDistance drops every peak within distance samples of a taller
// kept peak. Taller peaks claim their neighborhood first; equal heights
// resolve in favor of the peak processed first.
func selectByDistance(indices []int, y []float64, distance int) []int {
	keep := make([]bool, len(indices))
	for i := range keep {
		keep[i] = true
	}

	order := make([]int, len(indices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return y[indices[order[a]]] < y[indices[order[b]]]
	})

	for k := len(order) - 1; k >= 0; k-- {
		j := order[k]
		if !keep[j] {
			continue
		}
		for m := j - 1; m >= 0 && indices[j]-indices[m] < distance; m-- {
			keep[m] = false
		}
		for m := j + 1; m < len(indices) && indices[m]-indices[j] < distance; m++ {
			keep[m] = false
		}
	}

	survivors := indices[:0:0]
	for i, idx := range indices {
		if keep[i] {
			survivors = append(survivors, idx)
		}
	}
	return survivors
}

// prominence carries a peak's prominence and the valley indices bounding
// it, which the width measurement reuses.
type prominence struct {
	value     float64
	leftBase  int
	rightBase int
}

// peakProminence measures how far y[peak] rises above the higher of the
// two lowest points separating it from higher ground on each side.
func peakProminence(y []float64, peak int) prominence {
	leftMin, leftBase := y[peak], peak
	for i := peak; i >= 0 && y[i] <= y[peak]; i-- {
		if y[i] < leftMin {
			leftMin, leftBase = y[i], i
		}
	}
	rightMin, rightBase := y[peak], peak
	for i := peak; i < len(y) && y[i] <= y[peak]; i++ {
		if y[i] < rightMin {
			rightMin, rightBase = y[i], i
		}
	}
	return prominence{
		value:     y[peak] - math.Max(leftMin, rightMin),
		leftBase:  leftBase,
		rightBase: rightBase,
	}
}

// peakWidth measures a peak's width in samples at half prominence,
// interpolating between the samples that straddle the crossing on each
// side.
func peakWidth(y []float64, peak int, prom prominence) float64 {
	height := y[peak] - prom.value/2

	i := peak
	for i > prom.leftBase && y[i] > height {
		i--
	}
	left := float64(i)
	if y[i] < height {
		left += (height - y[i]) / (y[i+1] - y[i])
	}

	i = peak
	for i < prom.rightBase && y[i] > height {
		i++
	}
	right := float64(i)
	if y[i] < height {
		right -= (height - y[i]) / (y[i-1] - y[i])
	}

	return right - left
}
