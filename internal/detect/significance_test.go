package detect

import (
	"math"
	"testing"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
)

// TestLocalSignificanceValue tests the excess-over-background ratio inside
// the window.
func TestLocalSignificanceValue(t *testing.T) {
	t.Parallel()

	x := axisFor(make([]float64, 10))
	background := make([]float64, 10)
	y := make([]float64, 10)
	for i := range y {
		background[i] = 4
		y[i] = 4
	}
	// One excess count on each of the five bins inside the window.
	for i := 3; i <= 7; i++ {
		y[i] = 5
	}

	s := LocalSignificance(x, y, background, "resonance", 5, 2.5)

	if s.SignalSum != 5 {
		t.Errorf("SignalSum = %v, expected 5", s.SignalSum)
	}
	if s.BackgroundSum != 20 {
		t.Errorf("BackgroundSum = %v, expected 20", s.BackgroundSum)
	}
	if want := 5 / math.Sqrt(20); s.Value != want {
		t.Errorf("Value = %v, expected %v", s.Value, want)
	}
	if s.Prediction != "resonance" || s.Center != 5 || s.Window != 2.5 {
		t.Errorf("window metadata lost: %+v", s)
	}
}

// TestLocalSignificanceOpenWindow tests that samples exactly on the window
// edge are excluded.
func TestLocalSignificanceOpenWindow(t *testing.T) {
	t.Parallel()

	x := []float64{2, 3, 4}
	background := []float64{1, 1, 1}
	y := []float64{10, 3, 10}

	s := LocalSignificance(x, y, background, "edge", 3, 1)

	if s.BackgroundSum != 1 {
		t.Errorf("BackgroundSum = %v, expected only the center sample inside", s.BackgroundSum)
	}
	if s.SignalSum != 2 {
		t.Errorf("SignalSum = %v, expected 2", s.SignalSum)
	}
}

// TestLocalSignificanceNonPositiveBackground tests the zero significance
// guard.
func TestLocalSignificanceNonPositiveBackground(t *testing.T) {
	t.Parallel()

	x := []float64{0, 1, 2}
	background := []float64{0, 0, 0}
	y := []float64{1, 2, 3}

	s := LocalSignificance(x, y, background, "empty", 1, 5)

	if s.Value != 0 {
		t.Errorf("Value = %v, expected 0 for non-positive background", s.Value)
	}
	if s.SignalSum != 6 {
		t.Errorf("SignalSum = %v, expected the excess still summed", s.SignalSum)
	}
}

// TestMatchPeaks tests prediction matching including the strict tolerance
// boundary and closest-peak selection.
func TestMatchPeaks(t *testing.T) {
	t.Parallel()

	peaks := []model.Peak{
		{Index: 10, X: 0.95, Height: 2.0},
		{Index: 20, X: 1.03, Height: 1.5},
	}

	testCases := []struct {
		name             string
		predictions      []config.Prediction
		tolerance        float64
		expectedCount    int
		expectedMeasured float64
	}{
		{
			name:             "closest peak wins",
			predictions:      []config.Prediction{{Name: "P", Center: 1.0}},
			tolerance:        0.1,
			expectedCount:    1,
			expectedMeasured: 1.03,
		},
		{
			name:          "difference equal to tolerance is rejected",
			predictions:   []config.Prediction{{Name: "P", Center: 1.13}},
			tolerance:     0.1,
			expectedCount: 0,
		},
		{
			name:             "difference just below tolerance matches",
			predictions:      []config.Prediction{{Name: "P", Center: 1.129}},
			tolerance:        0.1,
			expectedCount:    1,
			expectedMeasured: 1.03,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			matches := MatchPeaks(peaks, tc.predictions, tc.tolerance)
			if len(matches) != tc.expectedCount {
				t.Fatalf("found %d matches, expected %d", len(matches), tc.expectedCount)
			}
			if tc.expectedCount == 1 && matches[0].Measured != tc.expectedMeasured {
				t.Errorf("Measured = %v, expected %v", matches[0].Measured, tc.expectedMeasured)
			}
		})
	}
}

// TestMatchPeaksFields tests the derived match quantities.
func TestMatchPeaksFields(t *testing.T) {
	t.Parallel()

	peaks := []model.Peak{{Index: 5, X: 0.21, Height: 1.1}}
	predictions := []config.Prediction{{Name: "E1", Center: 0.2}}

	matches := MatchPeaks(peaks, predictions, 0.05)
	if len(matches) != 1 {
		t.Fatalf("found %d matches, expected 1", len(matches))
	}

	m := matches[0]
	if m.Prediction != "E1" || m.Predicted != 0.2 {
		t.Errorf("prediction metadata lost: %+v", m)
	}
	if math.Abs(m.Difference-0.01) > 1e-15 {
		t.Errorf("Difference = %v, expected 0.01 signed", m.Difference)
	}
	if math.Abs(m.RelativeError-0.05) > 1e-13 {
		t.Errorf("RelativeError = %v, expected 0.05", m.RelativeError)
	}
	if m.Amplitude != 1.1 {
		t.Errorf("Amplitude = %v, expected the peak height 1.1", m.Amplitude)
	}
}

// TestMatchPeaksSharedPeak tests that one peak may satisfy several
// predictions.
func TestMatchPeaksSharedPeak(t *testing.T) {
	t.Parallel()

	peaks := []model.Peak{{Index: 0, X: 0.5, Height: 1}}
	predictions := []config.Prediction{
		{Name: "A", Center: 0.48},
		{Name: "B", Center: 0.52},
	}

	matches := MatchPeaks(peaks, predictions, 0.05)
	if len(matches) != 2 {
		t.Fatalf("found %d matches, expected both predictions matched", len(matches))
	}
	if matches[0].Prediction != "A" || matches[1].Prediction != "B" {
		t.Errorf("matches out of prediction order: %+v", matches)
	}
}
