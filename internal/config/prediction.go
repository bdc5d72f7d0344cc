package config

// Prediction is one predicted spectral or temporal feature, stated by the
// theory under test. The analysis treats predictions as opaque inputs: it
// simulates them, searches for them, and reports agreement, but never
// derives or cross-checks the numbers themselves.
//
// One type serves all three experiments; the field units follow the axis
// of the experiment the prediction belongs to.
type Prediction struct {
	// Name identifies the prediction in reports and matching output.
	Name string `yaml:"name"`

	// Center is the predicted feature position: mass in GeV, correlation
	// time in seconds, or transition energy in eV.
	Center float64 `yaml:"center"`

	// Uncertainty is the stated theory uncertainty on Center, in the
	// same unit.
	Uncertainty float64 `yaml:"uncertainty"`

	// Amplitude sets the simulated feature strength. The dijet generator
	// reads it as a fraction of the local background; the spectroscopy
	// generators read it as the peak amplitude.
	Amplitude float64 `yaml:"amplitude"`

	// Width is the simulated feature width: the Breit-Wigner width in
	// GeV or the FWHM in axis units.
	Width float64 `yaml:"width"`

	// Kind is a free-form label for the predicted state ("scalar",
	// "tensor"). Informational only.
	Kind string `yaml:"kind,omitempty"`
}

// DefaultDijetPredictions returns the two predicted dijet resonances.
func DefaultDijetPredictions() []Prediction {
	return []Prediction{
		{
			Name:        "M_coh",
			Center:      2300.0,
			Uncertainty: 200.0,
			Amplitude:   DefaultDijetSignalFraction1,
			Width:       50.0,
			Kind:        "scalar",
		},
		{
			Name:        "M_kappa",
			Center:      3100.0,
			Uncertainty: 300.0,
			Amplitude:   DefaultDijetSignalFraction2,
			Width:       60.0,
			Kind:        "tensor",
		},
	}
}

// DefaultPumpProbePrediction returns the predicted correlation feature.
func DefaultPumpProbePrediction() Prediction {
	return Prediction{
		Name:        "t_corr",
		Center:      2.04e-14,
		Uncertainty: 0.02e-14,
		Amplitude:   1.0,
		Width:       0.3e-14,
	}
}

// DefaultInfraredPredictions returns the three predicted absorption lines.
func DefaultInfraredPredictions() []Prediction {
	return []Prediction{
		{Name: "E1", Center: 0.203, Uncertainty: 0.010, Amplitude: 1.0, Width: 0.010},
		{Name: "E2", Center: 0.406, Uncertainty: 0.020, Amplitude: 0.5, Width: 0.020},
		{Name: "E3", Center: 0.609, Uncertainty: 0.030, Amplitude: 0.3, Width: 0.030},
	}
}
