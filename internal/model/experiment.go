package model

import (
	"errors"
	"fmt"
	"strings"
)

// Experiment identifies one of the three analysis pipelines.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and switch dispatch. The String() method
// provides the canonical name used by the CLI, output files, and the run
// history database.
type Experiment int

const (
	// ExperimentDijet is the LHC dijet mass-spectrum resonance search.
	// Two predicted resonances as Breit-Wigner peaks over a falling
	// exponential-plus-power-law background, with Poisson event counts.
	ExperimentDijet Experiment = iota

	// ExperimentPumpProbe is the femtosecond pump-probe correlation
	// measurement. One predicted temporal feature as a Gaussian
	// correlation, convolved with the laser instrument response.
	ExperimentPumpProbe

	// ExperimentInfrared is the high-resolution IR absorption peak
	// search. Three predicted pseudo-Voigt peaks over a quadratic
	// background, smoothed to the instrument resolution.
	ExperimentInfrared
)

// ErrUnknownExperiment is returned when an experiment name cannot be parsed.
var ErrUnknownExperiment = errors.New("unknown experiment")

// String returns the canonical lowercase name of the experiment.
func (e Experiment) String() string {
	switch e {
	case ExperimentDijet:
		return "dijet"
	case ExperimentPumpProbe:
		return "pumpprobe"
	case ExperimentInfrared:
		return "infrared"
	default:
		return "unknown"
	}
}

// Title returns the human-readable experiment title used in report banners.
func (e Experiment) Title() string {
	switch e {
	case ExperimentDijet:
		return "LHC Dijet Resonance Search"
	case ExperimentPumpProbe:
		return "Femtosecond Pump-Probe Measurement"
	case ExperimentInfrared:
		return "High-Resolution IR Spectroscopy"
	default:
		return "Unknown Experiment"
	}
}

// IsValid reports whether the experiment is one of the defined pipelines.
func (e Experiment) IsValid() bool {
	switch e {
	case ExperimentDijet, ExperimentPumpProbe, ExperimentInfrared:
		return true
	default:
		return false
	}
}

// Experiments returns all defined experiments in their canonical run order.
func Experiments() []Experiment {
	return []Experiment{ExperimentDijet, ExperimentPumpProbe, ExperimentInfrared}
}

// ParseExperiment converts a name, as used by the CLI and the run history
// database, into an Experiment. Matching is case-insensitive and accepts
// a few common aliases.
func ParseExperiment(name string) (Experiment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dijet", "lhc":
		return ExperimentDijet, nil
	case "pumpprobe", "pump-probe", "femtosecond":
		return ExperimentPumpProbe, nil
	case "infrared", "ir":
		return ExperimentInfrared, nil
	default:
		return ExperimentDijet, fmt.Errorf("%w: %q", ErrUnknownExperiment, name)
	}
}
