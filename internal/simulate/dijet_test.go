package simulate

import (
	"errors"
	"math"
	"testing"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/physics"
	"gonum.org/v1/gonum/floats"
)

// relClose reports whether a and b agree to the given relative tolerance.
func relClose(a, b, tol float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= tol*scale
}

// TestDijetDeterminism tests that one seed always yields one spectrum and
// that reseeding changes it.
func TestDijetDeterminism(t *testing.T) {
	t.Parallel()

	first, _, err := Dijet(config.NewDijetConfig())
	if err != nil {
		t.Fatalf("Dijet() error = %v, expected nil", err)
	}
	second, _, err := Dijet(config.NewDijetConfig())
	if err != nil {
		t.Fatalf("Dijet() error = %v, expected nil", err)
	}
	for i := range first.Y {
		if first.Y[i] != second.Y[i] {
			t.Fatalf("Y[%d] = %v and %v across identical configurations", i, first.Y[i], second.Y[i])
		}
	}

	reseeded := config.NewDijetConfig()
	reseeded.Seed = 7
	third, _, err := Dijet(reseeded)
	if err != nil {
		t.Fatalf("Dijet() error = %v, expected nil", err)
	}
	same := true
	for i := range first.Y {
		if first.Y[i] != third.Y[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical counts")
	}
}

// TestDijetTruthMatchesModel tests that the noiseless truth equals the full
// nine-parameter model evaluated at the generating parameters.
func TestDijetTruthMatchesModel(t *testing.T) {
	t.Parallel()

	cfg := config.NewDijetConfig()
	dataset, truth, err := Dijet(cfg)
	if err != nil {
		t.Fatalf("Dijet() error = %v, expected nil", err)
	}

	x := dataset.X
	params := []float64{cfg.BackgroundA, cfg.BackgroundB, cfg.BackgroundC}
	for _, pred := range cfg.Predictions {
		local := physics.DijetBackground(x[nearestIndex(x, pred.Center)],
			cfg.BackgroundA, cfg.BackgroundB, cfg.BackgroundC)
		params = append(params, pred.Amplitude*local, pred.Center, pred.Width)
	}
	if len(params) != physics.DijetParams {
		t.Fatalf("assembled %d generating parameters, expected %d", len(params), physics.DijetParams)
	}

	for i, m := range x {
		want := physics.DijetModel(m, params)
		if !relClose(truth.Expected[i], want, 1e-12) {
			t.Fatalf("Expected[%d] = %v, model gives %v", i, truth.Expected[i], want)
		}
		wantBG := physics.DijetBackground(m, cfg.BackgroundA, cfg.BackgroundB, cfg.BackgroundC)
		if truth.Background[i] != wantBG {
			t.Fatalf("Background[%d] = %v, expected %v", i, truth.Background[i], wantBG)
		}
	}
}

// TestDijetSignalShape tests that the injected signal is nonnegative and
// tallest at the first predicted resonance.
func TestDijetSignalShape(t *testing.T) {
	t.Parallel()

	dataset, truth, err := Dijet(config.NewDijetConfig())
	if err != nil {
		t.Fatalf("Dijet() error = %v, expected nil", err)
	}

	for i, s := range truth.Signal {
		if s < 0 {
			t.Fatalf("Signal[%d] = %v, expected nonnegative", i, s)
		}
	}

	peakMass := dataset.X[floats.MaxIdx(truth.Signal)]
	if math.Abs(peakMass-2300.0) > 5.0 {
		t.Errorf("signal peaks at %v GeV, expected within 5 GeV of 2300", peakMass)
	}
}

// TestDijetNoiseIsCountingError tests that errors are square-root counts
// and strictly positive.
func TestDijetNoiseIsCountingError(t *testing.T) {
	t.Parallel()

	dataset, _, err := Dijet(config.NewDijetConfig())
	if err != nil {
		t.Fatalf("Dijet() error = %v, expected nil", err)
	}

	for i, count := range dataset.Y {
		if dataset.Noise[i] <= 0 {
			t.Fatalf("Noise[%d] = %v, expected strictly positive", i, dataset.Noise[i])
		}
		want := math.Sqrt(count)
		if count == 0 {
			want = 1.0
		}
		if dataset.Noise[i] != want {
			t.Fatalf("Noise[%d] = %v, expected %v for %v counts", i, dataset.Noise[i], want, count)
		}
	}
}

// TestDijetEmptyBinsGetUnitErrors tests the error floor with a background
// so faint every bin stays empty.
func TestDijetEmptyBinsGetUnitErrors(t *testing.T) {
	t.Parallel()

	cfg := config.NewDijetConfig()
	cfg.BackgroundA = 1e-12
	cfg.BackgroundC = 0

	dataset, _, err := Dijet(cfg)
	if err != nil {
		t.Fatalf("Dijet() error = %v, expected nil", err)
	}
	for i := range dataset.Y {
		if dataset.Y[i] != 0 {
			t.Fatalf("Y[%d] = %v, expected empty bin", i, dataset.Y[i])
		}
		if dataset.Noise[i] != 1.0 {
			t.Fatalf("Noise[%d] = %v, expected unit floor", i, dataset.Noise[i])
		}
	}
}

// TestDijetValidatesConfig tests that a broken configuration is rejected
// before any generation happens.
func TestDijetValidatesConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewDijetConfig()
	cfg.Points = 1

	if _, _, err := Dijet(cfg); !errors.Is(err, config.ErrInvalidPoints) {
		t.Errorf("Dijet() error = %v, expected %v", err, config.ErrInvalidPoints)
	}
}
