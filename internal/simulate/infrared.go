package simulate

import (
	"math"
	"math/rand/v2"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/physics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Infrared generates a high-resolution infrared spectrum: a quadratic
// baseline with one pseudo-Voigt line per predicted transition, scaled by
// the thermal occupation factor, fluctuated with scan-averaged noise, and
// smoothed to the spectrometer resolution.
//
// The occupation factor 1-exp(-E/kT) is indistinguishable from one across
// the infrared window at millikelvin temperatures; it only bites for
// warm-sample configurations.
func Infrared(cfg *config.InfraredConfig) (*model.Dataset, *model.Truth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	x := make([]float64, cfg.Points)
	floats.Span(x, cfg.EnergyMin, cfg.EnergyMax)

	kT := physics.BoltzmannEV * cfg.Temperature
	background := make([]float64, cfg.Points)
	lines := make([]float64, cfg.Points)
	for i, e := range x {
		thermal := 1 - math.Exp(-e/kT)
		background[i] = thermal * physics.QuadraticBackground(e, cfg.BackgroundA, cfg.BackgroundB, cfg.BackgroundC)
		var sum float64
		for _, pred := range cfg.Predictions {
			sigma := physics.FWHMToSigma(pred.Width)
			gamma := pred.Width / 2
			sum += physics.PseudoVoigt(e, pred.Amplitude, pred.Center, sigma, gamma)
		}
		lines[i] = thermal * sum
	}

	expected := make([]float64, cfg.Points)
	floats.AddTo(expected, background, lines)

	y := make([]float64, cfg.Points)
	noise := make([]float64, cfg.Points)
	copy(y, expected)
	if cfg.NoiseLevel > 0 {
		src := rand.NewPCG(cfg.Seed, cfg.Seed)
		normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
		scale := cfg.NoiseLevel / math.Sqrt(cfg.Scans)
		for i := range y {
			noise[i] = scale * math.Sqrt(math.Abs(expected[i])+0.001)
			y[i] += noise[i] * normal.Rand()
		}
	} else {
		for i := range noise {
			noise[i] = 1.0
		}
	}

	// Spectrometer resolution expressed in grid pixels. The default
	// resolution is far below the grid spacing, so smoothing normally
	// leaves the spectrum untouched.
	dx := x[1] - x[0]
	y = SmoothGaussian(y, cfg.Resolution/dx)

	dataset := &model.Dataset{X: x, Y: y, Noise: noise}
	truth := &model.Truth{Expected: expected, Background: background, Signal: lines}
	return dataset, truth, nil
}
