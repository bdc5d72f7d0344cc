package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/physics"
)

var (
	// ErrNoDataset is returned when a data file is requested for a report
	// that carries no dataset.
	ErrNoDataset = errors.New("report: report has no dataset")

	// ErrNoTruth is returned when the dijet data file is requested without
	// the simulated background component.
	ErrNoTruth = errors.New("report: report has no truth components")
)

// FigureFileName returns the figure file name for the experiment.
func FigureFileName(exp model.Experiment) string {
	switch exp {
	case model.ExperimentDijet:
		return "dijet_analysis_results.png"
	case model.ExperimentPumpProbe:
		return "femtosecond_correlation_results.png"
	case model.ExperimentInfrared:
		return "ir_spectrum_results.png"
	default:
		return "analysis_results.png"
	}
}

// DataFileName returns the dataset text file name for the experiment.
func DataFileName(exp model.Experiment) string {
	switch exp {
	case model.ExperimentDijet:
		return "dijet_data.txt"
	case model.ExperimentPumpProbe:
		return "femtosecond_data.txt"
	case model.ExperimentInfrared:
		return "ir_spectrum_data.txt"
	default:
		return "data.txt"
	}
}

// AnalysisFileName returns the analysis summary file name for the experiment.
func AnalysisFileName(exp model.Experiment) string {
	switch exp {
	case model.ExperimentDijet:
		return "fit_results.txt"
	case model.ExperimentPumpProbe:
		return "femtosecond_analysis_results.txt"
	case model.ExperimentInfrared:
		return "ir_analysis_results.txt"
	default:
		return "analysis_results.txt"
	}
}

// WriteDataFile writes the simulated dataset as column text in the
// experiment's protocol format: a "#"-prefixed header naming the columns,
// then one whitespace-separated row per point. The dijet file carries a
// fourth column with the simulated background expectation.
// Returns the path of the written file.
func WriteDataFile(dir string, report *model.ExperimentReport) (string, error) {
	if report == nil || report.Dataset == nil || report.Dataset.Len() == 0 {
		return "", ErrNoDataset
	}
	ds := report.Dataset

	var sb strings.Builder
	switch report.Experiment {
	case model.ExperimentDijet:
		if report.Truth == nil || len(report.Truth.Background) != ds.Len() {
			return "", ErrNoTruth
		}
		sb.WriteString("# mass[GeV] data errors background\n")
		for i := range ds.X {
			fmt.Fprintf(&sb, "%.1f %.1f %.1f %.1f\n",
				ds.X[i], ds.Y[i], ds.Noise[i], report.Truth.Background[i])
		}
	case model.ExperimentPumpProbe:
		sb.WriteString("# time[s] correlation noise\n")
		for i := range ds.X {
			fmt.Fprintf(&sb, "%.6e %.6e %.6e\n", ds.X[i], ds.Y[i], ds.Noise[i])
		}
	case model.ExperimentInfrared:
		sb.WriteString("# energy[eV] intensity noise\n")
		for i := range ds.X {
			fmt.Fprintf(&sb, "%.6f %.6f %.6f\n", ds.X[i], ds.Y[i], ds.Noise[i])
		}
	default:
		sb.WriteString("# x y noise\n")
		for i := range ds.X {
			fmt.Fprintf(&sb, "%.6e %.6e %.6e\n", ds.X[i], ds.Y[i], ds.Noise[i])
		}
	}

	path := filepath.Join(dir, DataFileName(report.Experiment))
	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return "", fmt.Errorf("failed to write data file: %w", err)
	}
	return path, nil
}

// WriteAnalysisFile writes the per-experiment analysis summary text file.
// The predictions are the theory inputs the run was configured with; they
// appear verbatim in the prediction sections.
//
// The dijet file holds fitted parameters only, so a failed dijet fit means
// there is nothing to write: the call returns an empty path and a nil
// error. The spectroscopy files are written regardless, with the fit
// section present only when the fit converged.
func WriteAnalysisFile(dir string, predictions []config.Prediction, report *model.ExperimentReport) (string, error) {
	if report == nil {
		return "", ErrNoDataset
	}

	var content string
	switch report.Experiment {
	case model.ExperimentDijet:
		if !report.FitSucceeded() {
			return "", nil
		}
		content = dijetFitResults(report)
	case model.ExperimentPumpProbe:
		content = pumpProbeAnalysis(predictions, report)
	case model.ExperimentInfrared:
		content = infraredAnalysis(predictions, report)
	default:
		return "", fmt.Errorf("no analysis format for experiment %q", report.ExperimentName)
	}

	path := filepath.Join(dir, AnalysisFileName(report.Experiment))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write analysis file: %w", err)
	}
	return path, nil
}

// underline writes a section title with an "=" rule beneath it.
func underline(sb *strings.Builder, title string) {
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len(title)))
	sb.WriteString("\n\n")
}

// dijetFitResults renders the fitted parameter table with per-resonance
// significances. Callers guarantee the fit succeeded.
func dijetFitResults(report *model.ExperimentReport) string {
	var sb strings.Builder
	underline(&sb, "FIT RESULTS")

	sb.WriteString("Parameters:\n")
	for i, name := range report.Fit.ParamNames {
		if i >= len(report.Fit.Params) || i >= len(report.Fit.Errors) {
			break
		}
		fmt.Fprintf(&sb, "%-10s = %12.3f ± %8.3f\n",
			name, report.Fit.Params[i], report.Fit.Errors[i])
	}

	sb.WriteString("\nSignificance:\n")
	for i, ls := range report.LocalSignificances {
		if sig, ok := report.Fit.Significance("amp" + strconv.Itoa(i+1)); ok {
			fmt.Fprintf(&sb, "%s: %.1fσ\n", ls.Prediction, sig)
		}
	}

	return sb.String()
}

// pumpProbeAnalysis renders the correlation analysis summary.
func pumpProbeAnalysis(predictions []config.Prediction, report *model.ExperimentReport) string {
	var sb strings.Builder
	underline(&sb, "FEMTOSECOND CORRELATION ANALYSIS")

	if len(predictions) > 0 {
		pred := predictions[0]
		sb.WriteString("THEORY PREDICTION:\n")
		fmt.Fprintf(&sb, "t = %g s (%.1f fs)\n", pred.Center, pred.Center*secondsToFemto)
		fmt.Fprintf(&sb, "Uncertainty: ± %g s (± %.1f fs)\n\n",
			pred.Uncertainty, pred.Uncertainty*secondsToFemto)
	}

	if peak := report.MainPeak; peak != nil {
		sb.WriteString("DETECTED PEAK:\n")
		fmt.Fprintf(&sb, "Time: %g s (%.1f fs)\n", peak.X, peak.X*secondsToFemto)
		fmt.Fprintf(&sb, "Amplitude: %.3f\n", peak.Height)
		fmt.Fprintf(&sb, "FWHM: %g s (%.1f fs)\n\n", peak.FWHM, peak.FWHM*secondsToFemto)

		if len(predictions) > 0 && predictions[0].Center != 0 {
			diff := peak.X - predictions[0].Center
			sb.WriteString("DIFF FROM PREDICTION:\n")
			fmt.Fprintf(&sb, "dt = %g s (%.1f fs)\n", diff, diff*secondsToFemto)
			fmt.Fprintf(&sb, "Relative: %.1f%%\n\n", relativePercent(diff, predictions[0].Center))
		}
	}

	if report.FitSucceeded() {
		sb.WriteString("FIT RESULTS:\n")
		if t0, t0err, ok := report.Fit.Param("t0"); ok {
			fmt.Fprintf(&sb, "t = %.2e s (%.1f fs)\n", t0, t0*secondsToFemto)
			fmt.Fprintf(&sb, "t error = %.2e s (%.1f fs)\n", t0err, t0err*secondsToFemto)
		}
		if sigma, _, ok := report.Fit.Param("sigma"); ok {
			fwhm := physics.SigmaToFWHM(sigma)
			fmt.Fprintf(&sb, "FWHM = %.2e s (%.1f fs)\n", fwhm, fwhm*secondsToFemto)
		}
		if amp, ampErr, ok := report.Fit.Param("amplitude"); ok {
			fmt.Fprintf(&sb, "Amplitude = %.3f ± %.3f\n", amp, ampErr)
		}
	}

	return sb.String()
}

// infraredAnalysis renders the spectroscopy analysis summary.
func infraredAnalysis(predictions []config.Prediction, report *model.ExperimentReport) string {
	var sb strings.Builder
	underline(&sb, "INFRARED SPECTROSCOPY ANALYSIS RESULTS")

	sb.WriteString("THEORY PREDICTIONS:\n")
	for _, pred := range predictions {
		fmt.Fprintf(&sb, "%s: %g ± %g eV\n", pred.Name, pred.Center, pred.Uncertainty)
	}

	sb.WriteString("\nDETECTED PEAKS:\n")
	for _, peak := range report.Peaks {
		fmt.Fprintf(&sb, "Peak at %.3f eV, amplitude %.3f\n", peak.X, peak.Height)
	}

	sb.WriteString("\nMATCHES WITH PREDICTIONS:\n")
	for _, m := range report.Matches {
		fmt.Fprintf(&sb, "%s: predicted %.3f eV, measured %.3f eV, diff = %.1f meV\n",
			m.Prediction, m.Predicted, m.Measured, m.Difference*1000)
	}

	if report.FitSucceeded() {
		sb.WriteString("\nFITTED PARAMETERS:\n")
		for i := 1; ; i++ {
			center, cerr, ok := report.Fit.Param("cen" + strconv.Itoa(i))
			if !ok {
				break
			}
			amp, ampErr, _ := report.Fit.Param("amp" + strconv.Itoa(i))
			fmt.Fprintf(&sb, "Peak %d: center = %.3f ± %.3f eV, amplitude = %.3f ± %.3f\n",
				i, center, cerr, amp, ampErr)
		}
	}

	return sb.String()
}

// relativePercent returns |diff| as a percentage of the reference value.
func relativePercent(diff, reference float64) float64 {
	if diff < 0 {
		diff = -diff
	}
	return diff / reference * 100
}
