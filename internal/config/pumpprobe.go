package config

// Default pump-probe measurement values.
// The protocol scans the delay line across ±50 fs around zero with two
// million pulse pairs per point and a 50 fs laser instrument response.
const (
	// DefaultPumpProbeTimeRange is the delay scan half-range in seconds.
	DefaultPumpProbeTimeRange = 50e-15

	// DefaultPumpProbePoints is the number of delay points.
	DefaultPumpProbePoints = 1000

	// DefaultPumpProbeSeed makes pump-probe runs reproducible by default.
	DefaultPumpProbeSeed = 42

	// DefaultPumpProbeLaserWidth is the Gaussian sigma of the laser
	// instrument response in seconds. The measured correlation is the
	// ideal trace convolved with this response, so detected widths sit
	// near this value rather than the intrinsic feature width.
	DefaultPumpProbeLaserWidth = 50e-15

	// DefaultPumpProbeNoiseLevel is the relative shot-noise level before
	// pulse averaging. Zero produces the exact noiseless trace.
	DefaultPumpProbeNoiseLevel = 0.05

	// DefaultPumpProbePulses is the number of pulse pairs averaged per
	// delay point. Noise shrinks with its square root.
	DefaultPumpProbePulses = 2e6

	// DefaultPumpProbeBackground is the constant correlation background
	// before normalization.
	DefaultPumpProbeBackground = 0.1

	// DefaultPumpProbePeakHeight is the minimum normalized height for
	// peak detection.
	DefaultPumpProbePeakHeight = 0.5

	// DefaultPumpProbePeakProminence is the minimum peak prominence.
	// The convolution-broadened feature rises only a few percent above
	// the normalized background, so the threshold must sit well below
	// that contrast.
	DefaultPumpProbePeakProminence = 0.02

	// DefaultPumpProbePeakWidth is the minimum peak width in samples.
	DefaultPumpProbePeakWidth = 2.0

	// DefaultPumpProbeFitT0Window is the half-width in seconds of the
	// fit bound on the correlation time, centered on the prediction.
	DefaultPumpProbeFitT0Window = 10e-15

	// DefaultPumpProbeFitSigmaMin is the lower fit bound on the temporal
	// width in seconds.
	DefaultPumpProbeFitSigmaMin = 0.1e-15

	// DefaultPumpProbeFitSigmaMaxFactor bounds the fitted width at this
	// multiple of the laser width. The convolved width is near the laser
	// width itself, so the bound must clear it with margin.
	DefaultPumpProbeFitSigmaMaxFactor = 2.0

	// DefaultPumpProbeFitAmplitudeFactor bounds the fitted amplitude at
	// this multiple of the data-derived amplitude guess.
	DefaultPumpProbeFitAmplitudeFactor = 2.0

	// DefaultPumpProbeFitBackgroundMax is the upper fit bound on the
	// normalized background level. The normalized trace floors near 0.8,
	// so the bound sits at the normalization ceiling of 1.
	DefaultPumpProbeFitBackgroundMax = 1.0

	// DefaultPumpProbeFitMaxEvaluations caps the residual evaluations of
	// the four-parameter correlation fit.
	DefaultPumpProbeFitMaxEvaluations = 1000
)

// PumpProbeConfig holds every constant of the femtosecond pump-probe
// measurement: delay axis, laser response, averaging protocol, detection
// thresholds, and the four-parameter fit setup.
type PumpProbeConfig struct {
	// TimeRange is the delay scan half-range in seconds; the axis spans
	// [-TimeRange, +TimeRange].
	TimeRange float64

	// Points is the number of delay points.
	Points int

	// Seed primes the per-run random source for the noise draws.
	Seed uint64

	// LaserWidth is the Gaussian sigma of the instrument response in
	// seconds.
	LaserWidth float64

	// NoiseLevel is the relative shot-noise level before averaging.
	NoiseLevel float64

	// Pulses is the number of pulse pairs averaged per delay point.
	Pulses float64

	// Background is the constant correlation background before
	// normalization.
	Background float64

	// Prediction is the correlation feature injected into the simulation
	// and compared against the detected peak.
	Prediction Prediction

	// PeakHeight, PeakProminence, and PeakWidth are the detection
	// thresholds on the normalized trace.
	PeakHeight     float64
	PeakProminence float64
	PeakWidth      float64

	// FitT0Window is the half-width of the fit bound on the correlation
	// time, centered on Prediction.Center.
	FitT0Window float64

	// FitSigmaMin and FitSigmaMaxFactor bound the fitted temporal width:
	// [FitSigmaMin, FitSigmaMaxFactor*LaserWidth].
	FitSigmaMin       float64
	FitSigmaMaxFactor float64

	// FitAmplitudeFactor bounds the fitted amplitude at a multiple of
	// the data-derived guess.
	FitAmplitudeFactor float64

	// FitBackgroundMax is the upper fit bound on the background level.
	FitBackgroundMax float64

	// FitMaxEvaluations caps the solver's residual evaluations.
	FitMaxEvaluations int
}

// NewPumpProbeConfig returns the pump-probe configuration with protocol
// defaults.
func NewPumpProbeConfig() *PumpProbeConfig {
	return &PumpProbeConfig{
		TimeRange:          DefaultPumpProbeTimeRange,
		Points:             DefaultPumpProbePoints,
		Seed:               DefaultPumpProbeSeed,
		LaserWidth:         DefaultPumpProbeLaserWidth,
		NoiseLevel:         DefaultPumpProbeNoiseLevel,
		Pulses:             DefaultPumpProbePulses,
		Background:         DefaultPumpProbeBackground,
		Prediction:         DefaultPumpProbePrediction(),
		PeakHeight:         DefaultPumpProbePeakHeight,
		PeakProminence:     DefaultPumpProbePeakProminence,
		PeakWidth:          DefaultPumpProbePeakWidth,
		FitT0Window:        DefaultPumpProbeFitT0Window,
		FitSigmaMin:        DefaultPumpProbeFitSigmaMin,
		FitSigmaMaxFactor:  DefaultPumpProbeFitSigmaMaxFactor,
		FitAmplitudeFactor: DefaultPumpProbeFitAmplitudeFactor,
		FitBackgroundMax:   DefaultPumpProbeFitBackgroundMax,
		FitMaxEvaluations:  DefaultPumpProbeFitMaxEvaluations,
	}
}

// Validate checks the pump-probe configuration for internal consistency.
func (c *PumpProbeConfig) Validate() error {
	if c.TimeRange <= 0 {
		return ErrInvalidAxis
	}
	if c.Points < 2 {
		return ErrInvalidPoints
	}
	if c.LaserWidth <= 0 {
		return ErrInvalidResolution
	}
	if c.NoiseLevel < 0 {
		return ErrInvalidNoise
	}
	if c.Pulses <= 0 {
		return ErrInvalidProtocol
	}
	if c.Prediction.Name == "" {
		return ErrNoPredictions
	}
	if c.FitT0Window <= 0 {
		return ErrInvalidWindow
	}
	return nil
}
