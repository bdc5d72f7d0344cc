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

// Dijet generates a dijet invariant mass spectrum: a falling QCD background
// with one Breit-Wigner resonance per predicted state, fluctuated bin by bin
// with Poisson counting statistics.
//
// Each resonance amplitude is a configured fraction of the background level
// at the bin nearest the predicted mass, so the injected signal scales with
// the local event rate rather than with an absolute cross section.
func Dijet(cfg *config.DijetConfig) (*model.Dataset, *model.Truth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	x := make([]float64, cfg.Points)
	floats.Span(x, cfg.MassMin, cfg.MassMax)

	background := make([]float64, cfg.Points)
	for i, m := range x {
		background[i] = physics.DijetBackground(m, cfg.BackgroundA, cfg.BackgroundB, cfg.BackgroundC)
	}

	signal := make([]float64, cfg.Points)
	for _, pred := range cfg.Predictions {
		amplitude := pred.Amplitude * background[nearestIndex(x, pred.Center)]
		for i, m := range x {
			signal[i] += physics.BreitWigner(m, amplitude, pred.Center, pred.Width)
		}
	}

	expected := make([]float64, cfg.Points)
	floats.AddTo(expected, background, signal)

	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	y := make([]float64, cfg.Points)
	noise := make([]float64, cfg.Points)
	for i, rate := range expected {
		count := distuv.Poisson{Lambda: rate, Src: src}.Rand()
		y[i] = count
		// Empty bins get unit errors so the fit weights stay finite.
		sigma := math.Sqrt(count)
		if sigma == 0 {
			sigma = 1.0
		}
		noise[i] = sigma
	}

	dataset := &model.Dataset{X: x, Y: y, Noise: noise}
	truth := &model.Truth{Expected: expected, Background: background, Signal: signal}
	return dataset, truth, nil
}
