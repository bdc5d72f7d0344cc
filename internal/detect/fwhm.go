package detect

import "github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"

// MeasureFWHM estimates a peak's full width at half its absolute height.
// It walks outward from the peak to the nearest sample strictly below the
// half level on each side and reports the axis span between them. When
// either side never drops below the half level inside the trace, the width
// cannot be measured and the theoretical fallback is reported with
// FWHMFromData false.
func MeasureFWHM(x, y []float64, peak model.Peak, fallback float64) model.PeakMeasurement {
	half := peak.Height / 2

	left := -1
	for i := peak.Index - 1; i >= 0; i-- {
		if y[i] < half {
			left = i
			break
		}
	}
	right := -1
	for i := peak.Index; i < len(y); i++ {
		if y[i] < half {
			right = i
			break
		}
	}

	if left >= 0 && right >= 0 {
		return model.PeakMeasurement{Peak: peak, FWHM: x[right] - x[left], FWHMFromData: true}
	}
	return model.PeakMeasurement{Peak: peak, FWHM: fallback, FWHMFromData: false}
}
