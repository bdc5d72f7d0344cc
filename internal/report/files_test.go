package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
)

// TestFileNames tests the per-experiment output file naming.
func TestFileNames(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		exp      model.Experiment
		figure   string
		data     string
		analysis string
	}{
		{model.ExperimentDijet, "dijet_analysis_results.png", "dijet_data.txt", "fit_results.txt"},
		{model.ExperimentPumpProbe, "femtosecond_correlation_results.png", "femtosecond_data.txt", "femtosecond_analysis_results.txt"},
		{model.ExperimentInfrared, "ir_spectrum_results.png", "ir_spectrum_data.txt", "ir_analysis_results.txt"},
	}

	for _, tc := range testCases {
		t.Run(tc.exp.String(), func(t *testing.T) {
			t.Parallel()
			if got := FigureFileName(tc.exp); got != tc.figure {
				t.Errorf("got %q, expected %q", got, tc.figure)
			}
			if got := DataFileName(tc.exp); got != tc.data {
				t.Errorf("got %q, expected %q", got, tc.data)
			}
			if got := AnalysisFileName(tc.exp); got != tc.analysis {
				t.Errorf("got %q, expected %q", got, tc.analysis)
			}
		})
	}
}

// TestWriteDataFile tests the dataset column files.
func TestWriteDataFile(t *testing.T) {
	t.Parallel()

	t.Run("dijet columns include background", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path, err := WriteDataFile(dir, dijetTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != filepath.Join(dir, "dijet_data.txt") {
			t.Errorf("got path %q, expected dijet_data.txt in %q", path, dir)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		if lines[0] != "# mass[GeV] data errors background" {
			t.Errorf("got header %q, expected mass/data/errors/background", lines[0])
		}
		if len(lines) != 5 {
			t.Fatalf("got %d lines, expected header plus 4 rows", len(lines))
		}
		if lines[1] != "2000.0 120000.0 346.4 119500.0" {
			t.Errorf("got first row %q, expected fixed-point columns", lines[1])
		}
	})

	t.Run("pump-probe columns in scientific notation", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path, err := WriteDataFile(dir, pumpProbeTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		if lines[0] != "# time[s] correlation noise" {
			t.Errorf("got header %q, expected time/correlation/noise", lines[0])
		}
		if lines[1] != "-1.000000e-13 1.000000e-01 5.000000e-02" {
			t.Errorf("got first row %q, expected %%.6e columns", lines[1])
		}
	})

	t.Run("infrared columns in fixed point", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path, err := WriteDataFile(dir, infraredTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		if lines[0] != "# energy[eV] intensity noise" {
			t.Errorf("got header %q, expected energy/intensity/noise", lines[0])
		}
		if lines[1] != "0.100000 0.020000 0.001000" {
			t.Errorf("got first row %q, expected %%.6f columns", lines[1])
		}
	})

	t.Run("rejects missing dataset", func(t *testing.T) {
		t.Parallel()

		rep := model.NewExperimentReport(model.ExperimentDijet, 0)
		_, err := WriteDataFile(t.TempDir(), rep)
		if !errors.Is(err, ErrNoDataset) {
			t.Errorf("got %v, expected %v", err, ErrNoDataset)
		}
	})

	t.Run("rejects dijet report without truth", func(t *testing.T) {
		t.Parallel()

		rep := dijetTestReport()
		rep.Truth = nil
		_, err := WriteDataFile(t.TempDir(), rep)
		if !errors.Is(err, ErrNoTruth) {
			t.Errorf("got %v, expected %v", err, ErrNoTruth)
		}
	})
}

// TestWriteAnalysisFile tests the analysis summary files.
func TestWriteAnalysisFile(t *testing.T) {
	t.Parallel()

	t.Run("dijet fit results with significances", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path, err := WriteAnalysisFile(dir, config.DefaultDijetPredictions(), dijetTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != filepath.Join(dir, "fit_results.txt") {
			t.Errorf("got path %q, expected fit_results.txt in %q", path, dir)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		output := string(content)
		if !strings.HasPrefix(output, "FIT RESULTS\n===========\n\nParameters:\n") {
			t.Errorf("unexpected file prologue:\n%s", output)
		}
		if !strings.Contains(output, "amp1       =     5000.000 ± 1500.000") {
			t.Errorf("expected padded parameter row, got:\n%s", output)
		}
		if !strings.Contains(output, "\nSignificance:\nM_coh: 3.3σ\n") {
			t.Errorf("expected significance section, got:\n%s", output)
		}
	})

	t.Run("dijet failed fit writes nothing", func(t *testing.T) {
		t.Parallel()

		rep := dijetTestReport()
		rep.Fit = &model.FitResult{Success: false, Message: "solver diverged"}

		path, err := WriteAnalysisFile(t.TempDir(), config.DefaultDijetPredictions(), rep)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "" {
			t.Errorf("got path %q, expected no file for a failed dijet fit", path)
		}
	})

	t.Run("pump-probe sections", func(t *testing.T) {
		t.Parallel()

		preds := []config.Prediction{config.DefaultPumpProbePrediction()}
		path, err := WriteAnalysisFile(t.TempDir(), preds, pumpProbeTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		output := string(content)
		for _, section := range []string{
			"FEMTOSECOND CORRELATION ANALYSIS",
			"THEORY PREDICTION:",
			"t = 2.04e-14 s (20.4 fs)",
			"DETECTED PEAK:",
			"DIFF FROM PREDICTION:",
			"FIT RESULTS:",
			"Amplitude = 0.200 ± 0.010",
		} {
			if !strings.Contains(output, section) {
				t.Errorf("expected %q in analysis file, got:\n%s", section, output)
			}
		}
	})

	t.Run("pump-probe failed fit omits fit section", func(t *testing.T) {
		t.Parallel()

		rep := pumpProbeTestReport()
		rep.Fit = &model.FitResult{Success: false, Message: "solver diverged"}
		preds := []config.Prediction{config.DefaultPumpProbePrediction()}

		path, err := WriteAnalysisFile(t.TempDir(), preds, rep)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		output := string(content)
		if strings.Contains(output, "FIT RESULTS:") {
			t.Error("expected no fit section after a failed fit")
		}
		if !strings.Contains(output, "DETECTED PEAK:") {
			t.Error("expected peak section regardless of fit outcome")
		}
	})

	t.Run("infrared sections", func(t *testing.T) {
		t.Parallel()

		path, err := WriteAnalysisFile(t.TempDir(), config.DefaultInfraredPredictions(), infraredTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		output := string(content)
		for _, section := range []string{
			"INFRARED SPECTROSCOPY ANALYSIS RESULTS",
			"THEORY PREDICTIONS:",
			"E1: 0.203 ± 0.01 eV",
			"DETECTED PEAKS:",
			"Peak at 0.203 eV, amplitude 0.980",
			"MATCHES WITH PREDICTIONS:",
			"E1: predicted 0.203 eV, measured 0.203 eV, diff = 0.4 meV",
			"FITTED PARAMETERS:",
			"Peak 1: center = 0.203 ± 0.001 eV, amplitude = 1.000 ± 0.012",
		} {
			if !strings.Contains(output, section) {
				t.Errorf("expected %q in analysis file, got:\n%s", section, output)
			}
		}
	})
}
