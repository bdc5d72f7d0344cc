package detect

import (
	"math"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
)

// LocalSignificance measures the excess of data over background inside an
// open window of the given half-width around a predicted center: the sum
// of (data - background) divided by the square root of the background sum.
// A window whose background sum is not positive has significance 0.
func LocalSignificance(x, y, background []float64, name string, center, window float64) model.LocalSignificance {
	var signalSum, backgroundSum float64
	for i := range x {
		if x[i] > center-window && x[i] < center+window {
			signalSum += y[i] - background[i]
			backgroundSum += background[i]
		}
	}

	significance := model.LocalSignificance{
		Prediction:    name,
		Center:        center,
		Window:        window,
		SignalSum:     signalSum,
		BackgroundSum: backgroundSum,
	}
	if backgroundSum > 0 {
		significance.Value = signalSum / math.Sqrt(backgroundSum)
	}
	return significance
}

// MatchPeaks pairs each prediction with the closest detected peak whose
// distance is strictly below the tolerance. Predictions with no peak
// inside the tolerance are absent from the result; one peak may match
// several predictions.
func MatchPeaks(peaks []model.Peak, predictions []config.Prediction, tolerance float64) []model.PeakMatch {
	var matches []model.PeakMatch
	for _, pred := range predictions {
		best := -1
		bestDiff := tolerance
		for i, peak := range peaks {
			if diff := math.Abs(peak.X - pred.Center); diff < bestDiff {
				bestDiff = diff
				best = i
			}
		}
		if best < 0 {
			continue
		}
		peak := peaks[best]
		matches = append(matches, model.PeakMatch{
			Prediction:    pred.Name,
			Predicted:     pred.Center,
			Measured:      peak.X,
			Difference:    peak.X - pred.Center,
			RelativeError: math.Abs(peak.X-pred.Center) / pred.Center,
			Amplitude:     peak.Height,
		})
	}
	return matches
}
