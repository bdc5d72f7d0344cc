package detect

import (
	"testing"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
)

// TestMeasureFWHMFromData tests the half-maximum walk on a clean triangle
// peak.
func TestMeasureFWHMFromData(t *testing.T) {
	t.Parallel()

	y := []float64{0, 1, 2, 3, 2, 1, 0}
	x := axisFor(y)
	peak := model.Peak{Index: 3, X: 3, Height: 3}

	m := MeasureFWHM(x, y, peak, 99)

	if !m.FWHMFromData {
		t.Fatal("FWHMFromData = false, expected the width walked from data")
	}
	// Half maximum is 1.5; the nearest samples below it sit at indices 1
	// and 5.
	if m.FWHM != 4 {
		t.Errorf("FWHM = %v, expected 4", m.FWHM)
	}
	if m.Index != 3 || m.Height != 3 {
		t.Errorf("measurement lost the peak: %+v", m.Peak)
	}
}

// TestMeasureFWHMFallback tests the theoretical fallback when a raised
// baseline never crosses half maximum.
func TestMeasureFWHMFallback(t *testing.T) {
	t.Parallel()

	y := []float64{2, 2.5, 3, 2.5, 2}
	peak := model.Peak{Index: 2, X: 2, Height: 3}

	m := MeasureFWHM(axisFor(y), y, peak, 0.125)

	if m.FWHMFromData {
		t.Fatal("FWHMFromData = true, expected fallback on a raised baseline")
	}
	if m.FWHM != 0.125 {
		t.Errorf("FWHM = %v, expected the fallback 0.125", m.FWHM)
	}
}

// TestMeasureFWHMOneSidedCrossing tests that a single crossing is not
// enough for a measured width.
func TestMeasureFWHMOneSidedCrossing(t *testing.T) {
	t.Parallel()

	y := []float64{0, 1, 3, 2.9, 2.8}
	peak := model.Peak{Index: 2, X: 2, Height: 3}

	m := MeasureFWHM(axisFor(y), y, peak, 7)

	if m.FWHMFromData {
		t.Fatal("FWHMFromData = true, expected fallback when only one side crosses")
	}
	if m.FWHM != 7 {
		t.Errorf("FWHM = %v, expected the fallback 7", m.FWHM)
	}
}
