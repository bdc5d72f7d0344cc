package config

// Default infrared spectroscopy values.
// The protocol records 2000 spectral points across 0.1-0.8 eV at 50 mK,
// averaging 2000 interferometer scans at 5 ueV resolution.
const (
	// DefaultInfraredEnergyMin is the lower edge of the spectral window in eV.
	DefaultInfraredEnergyMin = 0.1

	// DefaultInfraredEnergyMax is the upper edge of the spectral window in eV.
	DefaultInfraredEnergyMax = 0.8

	// DefaultInfraredPoints is the number of spectral points.
	DefaultInfraredPoints = 2000

	// DefaultInfraredSeed makes infrared runs reproducible by default.
	DefaultInfraredSeed = 42

	// DefaultInfraredBackgroundA, B, C parameterize the quadratic
	// baseline a + b*E + c*E^2 typical for semiconductor samples at low
	// temperature.
	DefaultInfraredBackgroundA = 0.1
	DefaultInfraredBackgroundB = -0.05
	DefaultInfraredBackgroundC = 0.02

	// DefaultInfraredTemperature is the sample temperature in Kelvin.
	DefaultInfraredTemperature = 0.05

	// DefaultInfraredResolution is the instrument resolution in eV.
	// 5 ueV is far below the spectral sampling step, so the resulting
	// smoothing kernel is sub-pixel and leaves the spectrum unchanged.
	DefaultInfraredResolution = 5e-6

	// DefaultInfraredScans is the number of averaged interferometer
	// scans. Noise shrinks with its square root.
	DefaultInfraredScans = 2000.0

	// DefaultInfraredNoiseLevel is the relative detector noise level
	// before scan averaging.
	DefaultInfraredNoiseLevel = 0.005

	// DefaultInfraredPeakHeight is the minimum absolute height for peak
	// detection.
	DefaultInfraredPeakHeight = 0.05

	// DefaultInfraredPeakDistance is the minimum separation between
	// detected peaks in samples.
	DefaultInfraredPeakDistance = 50

	// DefaultInfraredPeakProminence is the minimum peak prominence.
	DefaultInfraredPeakProminence = 0.02

	// DefaultInfraredMatchTolerance is the maximum |measured - predicted|
	// in eV for a detected peak to count as a match. The comparison is
	// strict: a difference equal to the tolerance is rejected.
	DefaultInfraredMatchTolerance = 0.05

	// DefaultInfraredFitMaxEvaluations caps the residual evaluations of
	// the fifteen-parameter spectrum fit.
	DefaultInfraredFitMaxEvaluations = 10000
)

// InfraredConfig holds every constant of the infrared absorption search:
// spectral axis, baseline, thermal and resolution effects, detection
// thresholds, and the fifteen-parameter fit setup.
type InfraredConfig struct {
	// EnergyMin and EnergyMax bound the photon energy axis in eV.
	EnergyMin float64
	EnergyMax float64

	// Points is the number of spectral points.
	Points int

	// Seed primes the per-run random source for the noise draws.
	Seed uint64

	// BackgroundA, BackgroundB, BackgroundC parameterize the quadratic
	// baseline.
	BackgroundA float64
	BackgroundB float64
	BackgroundC float64

	// Temperature is the sample temperature in Kelvin. Zero disables
	// the thermal occupation factor.
	Temperature float64

	// Resolution is the instrument resolution in eV. Zero disables
	// resolution smoothing.
	Resolution float64

	// Scans is the number of averaged interferometer scans.
	Scans float64

	// NoiseLevel is the relative detector noise level before averaging.
	NoiseLevel float64

	// Predictions are the absorption lines injected into the simulation
	// and searched for in the spectrum. Width is the FWHM in eV.
	Predictions []Prediction

	// PeakHeight, PeakDistance, and PeakProminence are the detection
	// thresholds.
	PeakHeight     float64
	PeakDistance   int
	PeakProminence float64

	// MatchTolerance is the maximum |measured - predicted| in eV for a
	// match; differences equal to the tolerance are rejected.
	MatchTolerance float64

	// FitInitial, FitLower, and FitUpper are the initial guess and box
	// bounds of the fifteen-parameter fit, laid out as
	// [a, b, c, amp1, cen1, sig1, gam1, ...].
	FitInitial []float64
	FitLower   []float64
	FitUpper   []float64

	// FitMaxEvaluations caps the solver's residual evaluations.
	FitMaxEvaluations int
}

// NewInfraredConfig returns the infrared search configuration with
// protocol defaults.
func NewInfraredConfig() *InfraredConfig {
	return &InfraredConfig{
		EnergyMin:      DefaultInfraredEnergyMin,
		EnergyMax:      DefaultInfraredEnergyMax,
		Points:         DefaultInfraredPoints,
		Seed:           DefaultInfraredSeed,
		BackgroundA:    DefaultInfraredBackgroundA,
		BackgroundB:    DefaultInfraredBackgroundB,
		BackgroundC:    DefaultInfraredBackgroundC,
		Temperature:    DefaultInfraredTemperature,
		Resolution:     DefaultInfraredResolution,
		Scans:          DefaultInfraredScans,
		NoiseLevel:     DefaultInfraredNoiseLevel,
		Predictions:    DefaultInfraredPredictions(),
		PeakHeight:     DefaultInfraredPeakHeight,
		PeakDistance:   DefaultInfraredPeakDistance,
		PeakProminence: DefaultInfraredPeakProminence,
		MatchTolerance: DefaultInfraredMatchTolerance,
		FitInitial: []float64{
			0.1, -0.05, 0.02, // background
			1.0, 0.203, 0.004, 0.008, // peak 1
			0.5, 0.406, 0.008, 0.016, // peak 2
			0.3, 0.609, 0.012, 0.024, // peak 3
		},
		FitLower: []float64{
			0, -1, 0,
			0, 0.18, 0.001, 0.001,
			0, 0.38, 0.001, 0.001,
			0, 0.58, 0.001, 0.001,
		},
		FitUpper: []float64{
			1, 0, 1,
			2, 0.22, 0.02, 0.02,
			1, 0.42, 0.04, 0.04,
			1, 0.62, 0.06, 0.06,
		},
		FitMaxEvaluations: DefaultInfraredFitMaxEvaluations,
	}
}

// Validate checks the infrared configuration for internal consistency.
func (c *InfraredConfig) Validate() error {
	if c.EnergyMax <= c.EnergyMin {
		return ErrInvalidAxis
	}
	if c.Points < 2 {
		return ErrInvalidPoints
	}
	// Zero would put the occupation factor on a division by zero.
	if c.Temperature <= 0 {
		return ErrInvalidTemperature
	}
	if c.Resolution < 0 {
		return ErrInvalidResolution
	}
	if c.Scans <= 0 {
		return ErrInvalidProtocol
	}
	if c.NoiseLevel < 0 {
		return ErrInvalidNoise
	}
	if len(c.Predictions) == 0 {
		return ErrNoPredictions
	}
	if c.MatchTolerance <= 0 {
		return ErrInvalidWindow
	}
	wantParams := 3 + 4*len(c.Predictions)
	if len(c.FitInitial) != wantParams ||
		len(c.FitLower) != wantParams ||
		len(c.FitUpper) != wantParams {
		return ErrInvalidFitVectors
	}
	return nil
}
