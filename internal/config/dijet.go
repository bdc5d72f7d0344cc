package config

import "github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/physics"

// Default dijet analysis values.
// These reproduce the published search protocol: a 1500-4000 GeV dijet mass
// window sampled in 1000 bins with a falling two-component background.
const (
	// DefaultDijetMassMin is the lower edge of the dijet mass window in GeV.
	// Below 1500 GeV the trigger turn-on distorts the spectrum.
	DefaultDijetMassMin = 1500.0

	// DefaultDijetMassMax is the upper edge of the dijet mass window in GeV.
	DefaultDijetMassMax = 4000.0

	// DefaultDijetPoints is the number of mass bins across the window.
	DefaultDijetPoints = 1000

	// DefaultDijetSeed makes dijet runs reproducible by default. Every
	// generator draws from its own PCG source primed with this value; there
	// is no process-global randomness to leak between runs.
	DefaultDijetSeed = 42

	// DefaultDijetBackgroundA is the exponential amplitude of the smooth
	// background in events per bin.
	DefaultDijetBackgroundA = 1e6

	// DefaultDijetBackgroundB is the exponential decay constant in 1/GeV.
	DefaultDijetBackgroundB = 0.0015

	// DefaultDijetBackgroundC is the power-law amplitude. The power-law
	// exponent itself (-3.5) is part of the background model shape.
	DefaultDijetBackgroundC = 1e8

	// DefaultDijetSignalFraction1 scales the first resonance to 5% of the
	// background at its predicted mass.
	DefaultDijetSignalFraction1 = 0.05

	// DefaultDijetSignalFraction2 scales the second resonance to 3% of the
	// background at its predicted mass.
	DefaultDijetSignalFraction2 = 0.03

	// DefaultDijetSignificanceWindow is the half-width in GeV of the mass
	// window used for the local excess significance around each prediction.
	DefaultDijetSignificanceWindow = 100.0

	// DefaultDijetFitMaxEvaluations caps the residual evaluations of the
	// resonance fit, matching the search protocol's solver budget.
	DefaultDijetFitMaxEvaluations = 5000
)

// DijetConfig holds every constant of the dijet resonance search:
// axis, background shape, predicted resonances, significance window, and
// the nine-parameter fit setup.
type DijetConfig struct {
	// MassMin and MassMax bound the dijet invariant mass axis in GeV.
	MassMin float64
	MassMax float64

	// Points is the number of mass bins.
	Points int

	// Seed primes the per-run random source for the Poisson draws.
	Seed uint64

	// BackgroundA, BackgroundB, BackgroundC parameterize the smooth
	// background a*exp(-b*m) + c*m^(-3.5).
	BackgroundA float64
	BackgroundB float64
	BackgroundC float64

	// Predictions are the resonances injected into the simulation and
	// searched for in the fit. Amplitude is a fraction of the local
	// background, Width the Breit-Wigner width in GeV.
	Predictions []Prediction

	// SignificanceWindow is the half-width in GeV of the local
	// significance window around each prediction.
	SignificanceWindow float64

	// FitInitial, FitLower, and FitUpper are the initial guess and box
	// bounds of the nine-parameter fit, laid out as
	// [a, b, c, amp1, center1, width1, amp2, center2, width2].
	FitInitial []float64
	FitLower   []float64
	FitUpper   []float64

	// FitMaxEvaluations caps the solver's residual evaluations.
	FitMaxEvaluations int
}

// NewDijetConfig returns the dijet search configuration with protocol
// defaults.
func NewDijetConfig() *DijetConfig {
	return &DijetConfig{
		MassMin:            DefaultDijetMassMin,
		MassMax:            DefaultDijetMassMax,
		Points:             DefaultDijetPoints,
		Seed:               DefaultDijetSeed,
		BackgroundA:        DefaultDijetBackgroundA,
		BackgroundB:        DefaultDijetBackgroundB,
		BackgroundC:        DefaultDijetBackgroundC,
		Predictions:        DefaultDijetPredictions(),
		SignificanceWindow: DefaultDijetSignificanceWindow,
		FitInitial: []float64{
			1e6, 0.0015, 1e8, // background
			5e3, 2300.0, 50.0, // resonance 1
			3e3, 3100.0, 60.0, // resonance 2
		},
		FitLower:          []float64{1e5, 0.0005, 1e7, 0, 2200, 20, 0, 3000, 30},
		FitUpper:          []float64{1e7, 0.003, 1e9, 1e6, 2400, 100, 1e6, 3200, 100},
		FitMaxEvaluations: DefaultDijetFitMaxEvaluations,
	}
}

// Validate checks the dijet configuration for internal consistency.
func (c *DijetConfig) Validate() error {
	if c.MassMax <= c.MassMin {
		return ErrInvalidAxis
	}
	// The generators span the axis between two distinct endpoints.
	if c.Points < 2 {
		return ErrInvalidPoints
	}
	if len(c.Predictions) == 0 {
		return ErrNoPredictions
	}
	if c.SignificanceWindow <= 0 {
		return ErrInvalidWindow
	}
	if len(c.FitInitial) != physics.DijetParams ||
		len(c.FitLower) != physics.DijetParams ||
		len(c.FitUpper) != physics.DijetParams {
		return ErrInvalidFitVectors
	}
	return nil
}
