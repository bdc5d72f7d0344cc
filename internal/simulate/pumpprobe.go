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

// PumpProbe generates a pump-probe correlation trace: a Gaussian correlation
// peak on a flat background, convolved with the laser instrument response and
// normalized to unit maximum. Shot noise shrinks with the square root of the
// accumulated pulse count.
//
// The convolution evaluates the analytic signal at shifted delays instead of
// wrapping or truncating a sampled trace, so the flat background stays flat
// out to both edges of the delay window.
func PumpProbe(cfg *config.PumpProbeConfig) (*model.Dataset, *model.Truth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	n := cfg.Points
	x := make([]float64, n)
	floats.Span(x, -cfg.TimeRange, cfg.TimeRange)

	pred := cfg.Prediction
	sigma := physics.FWHMToSigma(pred.Width)
	ideal := func(t float64) float64 {
		return physics.Gaussian(t, pred.Amplitude, pred.Center, sigma) + cfg.Background
	}

	// Laser response sampled across the full delay window, normalized to
	// unit sum so the convolution preserves the background level.
	response := make([]float64, n)
	for i, t := range x {
		response[i] = physics.Gaussian(t, 1, 0, cfg.LaserWidth)
	}
	floats.Scale(1/floats.Sum(response), response)

	expected := make([]float64, n)
	for k, t := range x {
		var acc float64
		for j, w := range response {
			acc += w * ideal(t-x[j])
		}
		expected[k] = acc
	}

	peak := floats.Max(expected)
	floats.Scale(1/peak, expected)
	backgroundLevel := cfg.Background / peak

	background := make([]float64, n)
	signal := make([]float64, n)
	for i := range background {
		background[i] = backgroundLevel
		signal[i] = expected[i] - backgroundLevel
	}

	y := make([]float64, n)
	noise := make([]float64, n)
	copy(y, expected)
	if cfg.NoiseLevel > 0 {
		src := rand.NewPCG(cfg.Seed, cfg.Seed)
		normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
		scale := cfg.NoiseLevel / math.Sqrt(cfg.Pulses)
		for i := range y {
			noise[i] = scale * math.Sqrt(math.Abs(expected[i])+0.01)
			y[i] += noise[i] * normal.Rand()
		}
	} else {
		// A zero noise level yields the exact noiseless trace. Unit errors
		// keep downstream fits weighted uniformly.
		for i := range noise {
			noise[i] = 1.0
		}
	}

	dataset := &model.Dataset{X: x, Y: y, Noise: noise}
	truth := &model.Truth{Expected: expected, Background: background, Signal: signal}
	return dataset, truth, nil
}
