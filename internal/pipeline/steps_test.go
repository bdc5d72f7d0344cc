package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/render"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/report"
)

// testConfig returns a default configuration writing into a throwaway
// directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.NewConfig()
	cfg.OutputDir = t.TempDir()
	return cfg
}

// TestNewSimulateStep tests the SimulateStep constructor.
func TestNewSimulateStep(t *testing.T) {
	t.Parallel()

	t.Run("creates with defaults", func(t *testing.T) {
		t.Parallel()

		step := NewSimulateStep(model.ExperimentDijet, config.NewConfig())

		if step.experiment != model.ExperimentDijet {
			t.Errorf("got experiment %v, expected %v", step.experiment, model.ExperimentDijet)
		}
		if step.cfg == nil {
			t.Error("expected non-nil config")
		}
		if step.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies WithStepLogger", func(t *testing.T) {
		t.Parallel()

		logger := slog.Default()
		step := NewSimulateStep(model.ExperimentDijet, config.NewConfig(), WithStepLogger(logger))

		if step.logger != logger {
			t.Error("expected custom logger")
		}
	})

	t.Run("Name returns correct value", func(t *testing.T) {
		t.Parallel()

		step := NewSimulateStep(model.ExperimentDijet, config.NewConfig())

		if step.Name() != "simulate" {
			t.Errorf("expected name 'simulate', got %q", step.Name())
		}
	})
}

// TestStepNames tests that every stage reports its protocol name.
func TestStepNames(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	tests := []struct {
		step Step
		name string
	}{
		{NewSimulateStep(model.ExperimentDijet, cfg), "simulate"},
		{NewDetectStep(model.ExperimentDijet, cfg), "detect"},
		{NewFitStep(model.ExperimentDijet, cfg), "fit"},
		{NewRenderStep(model.ExperimentDijet, cfg), "render"},
		{NewExportStep(model.ExperimentDijet, cfg), "export"},
	}

	for _, tt := range tests {
		if tt.step.Name() != tt.name {
			t.Errorf("got step name %q, expected %q", tt.step.Name(), tt.name)
		}
	}
}

// TestSimulateStepDo tests dataset generation for each experiment.
func TestSimulateStepDo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		exp    model.Experiment
		points int
	}{
		{"dijet", model.ExperimentDijet, config.DefaultDijetPoints},
		{"pumpprobe", model.ExperimentPumpProbe, config.DefaultPumpProbePoints},
		{"infrared", model.ExperimentInfrared, config.DefaultInfraredPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t)
			step := NewSimulateStep(tt.exp, cfg)
			rep := model.NewExperimentReport(tt.exp, SeedFor(cfg, tt.exp))

			if err := step.Do(context.Background(), rep); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if rep.Dataset == nil {
				t.Fatal("expected non-nil dataset")
			}
			if rep.Dataset.Len() != tt.points {
				t.Errorf("got %d points, expected %d", rep.Dataset.Len(), tt.points)
			}
			if rep.Truth == nil {
				t.Fatal("expected non-nil truth")
			}
			if len(rep.Truth.Background) != tt.points {
				t.Errorf("got %d background samples, expected %d",
					len(rep.Truth.Background), tt.points)
			}
		})
	}

	t.Run("rejects unknown experiment", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		step := NewSimulateStep(model.Experiment(99), cfg)
		rep := model.NewExperimentReport(model.Experiment(99), 42)

		err := step.Do(context.Background(), rep)
		if !errors.Is(err, model.ErrUnknownExperiment) {
			t.Errorf("expected ErrUnknownExperiment, got %v", err)
		}
	})
}

// TestDetectStepDo tests feature detection for each experiment.
func TestDetectStepDo(t *testing.T) {
	t.Parallel()

	t.Run("requires dataset", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		step := NewDetectStep(model.ExperimentDijet, cfg)
		rep := model.NewExperimentReport(model.ExperimentDijet, 42)

		err := step.Do(context.Background(), rep)
		if !errors.Is(err, ErrNoDataset) {
			t.Errorf("expected ErrNoDataset, got %v", err)
		}
	})

	t.Run("dijet computes one significance per prediction", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		rep := model.NewExperimentReport(model.ExperimentDijet, cfg.Dijet.Seed)
		simulateFor(t, model.ExperimentDijet, cfg, rep)

		step := NewDetectStep(model.ExperimentDijet, cfg)
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(rep.LocalSignificances) != len(cfg.Dijet.Predictions) {
			t.Fatalf("got %d significances, expected %d",
				len(rep.LocalSignificances), len(cfg.Dijet.Predictions))
		}
		for i, sig := range rep.LocalSignificances {
			if sig.Prediction != cfg.Dijet.Predictions[i].Name {
				t.Errorf("significance %d: got prediction %q, expected %q",
					i, sig.Prediction, cfg.Dijet.Predictions[i].Name)
			}
			if sig.Center != cfg.Dijet.Predictions[i].Center {
				t.Errorf("significance %d: got center %v, expected %v",
					i, sig.Center, cfg.Dijet.Predictions[i].Center)
			}
			if sig.Window != cfg.Dijet.SignificanceWindow {
				t.Errorf("significance %d: got window %v, expected %v",
					i, sig.Window, cfg.Dijet.SignificanceWindow)
			}
		}
		// The simulation injects both resonances, so the excess over the
		// noiseless background must be positive.
		if rep.LocalSignificances[0].Value <= 0 {
			t.Errorf("got significance %v, expected positive",
				rep.LocalSignificances[0].Value)
		}
	})

	t.Run("dijet requires truth components", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		rep := model.NewExperimentReport(model.ExperimentDijet, cfg.Dijet.Seed)
		simulateFor(t, model.ExperimentDijet, cfg, rep)
		rep.Truth = nil

		step := NewDetectStep(model.ExperimentDijet, cfg)
		err := step.Do(context.Background(), rep)
		if !errors.Is(err, ErrNoTruth) {
			t.Errorf("expected ErrNoTruth, got %v", err)
		}
	})

	t.Run("pumpprobe finds the correlation peak", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		rep := model.NewExperimentReport(model.ExperimentPumpProbe, cfg.PumpProbe.Seed)
		simulateFor(t, model.ExperimentPumpProbe, cfg, rep)

		step := NewDetectStep(model.ExperimentPumpProbe, cfg)
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rep.MainPeak == nil {
			t.Fatal("expected detected correlation peak")
		}
		// The normalized trace never drops below half maximum inside the
		// scan window, so the width must come from the predicted fallback.
		if rep.MainPeak.FWHMFromData {
			t.Error("expected FWHM fallback, got data-derived width")
		}
		if rep.MainPeak.FWHM != cfg.PumpProbe.Prediction.Width {
			t.Errorf("got FWHM %v, expected fallback %v",
				rep.MainPeak.FWHM, cfg.PumpProbe.Prediction.Width)
		}

		match, ok := rep.MatchFor(cfg.PumpProbe.Prediction.Name)
		if !ok {
			t.Fatal("expected a match for the predicted correlation time")
		}
		if math.Abs(match.Difference) > 2e-15 {
			t.Errorf("detected delay off by %v s, expected within 2 fs", match.Difference)
		}
		if match.Amplitude <= 0 {
			t.Errorf("got amplitude %v, expected positive", match.Amplitude)
		}
	})

	t.Run("infrared matches every predicted line", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		rep := model.NewExperimentReport(model.ExperimentInfrared, cfg.Infrared.Seed)
		simulateFor(t, model.ExperimentInfrared, cfg, rep)

		step := NewDetectStep(model.ExperimentInfrared, cfg)
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(rep.Peaks) < len(cfg.Infrared.Predictions) {
			t.Fatalf("got %d peaks, expected at least %d",
				len(rep.Peaks), len(cfg.Infrared.Predictions))
		}
		for _, pred := range cfg.Infrared.Predictions {
			match, ok := rep.MatchFor(pred.Name)
			if !ok {
				t.Errorf("expected a match for prediction %q", pred.Name)
				continue
			}
			if math.Abs(match.Difference) >= cfg.Infrared.MatchTolerance {
				t.Errorf("match %q: difference %v outside tolerance %v",
					pred.Name, match.Difference, cfg.Infrared.MatchTolerance)
			}
		}
	})
}

// TestFitStepDo tests the bounded fit for each experiment.
func TestFitStepDo(t *testing.T) {
	t.Parallel()

	t.Run("requires dataset", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		step := NewFitStep(model.ExperimentDijet, cfg)
		rep := model.NewExperimentReport(model.ExperimentDijet, 42)

		err := step.Do(context.Background(), rep)
		if !errors.Is(err, ErrNoDataset) {
			t.Errorf("expected ErrNoDataset, got %v", err)
		}
	})

	t.Run("dijet fit converges", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		rep := model.NewExperimentReport(model.ExperimentDijet, cfg.Dijet.Seed)
		simulateFor(t, model.ExperimentDijet, cfg, rep)

		step := NewFitStep(model.ExperimentDijet, cfg)
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rep.Fit == nil {
			t.Fatal("expected fit result")
		}
		if !rep.Fit.Success {
			t.Fatalf("fit failed: %s", rep.Fit.Message)
		}
		if len(rep.Fit.Params) != 9 {
			t.Errorf("got %d parameters, expected 9", len(rep.Fit.Params))
		}

		center, _, ok := rep.Fit.Param("center1")
		if !ok {
			t.Fatal("expected center1 parameter")
		}
		if center < cfg.Dijet.FitLower[4] || center > cfg.Dijet.FitUpper[4] {
			t.Errorf("center1 %v outside configured bounds", center)
		}
	})

	t.Run("pumpprobe fit recovers the correlation time", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		// A noiseless trace makes the recovered delay exact up to solver
		// tolerance.
		cfg.PumpProbe.NoiseLevel = 0
		rep := model.NewExperimentReport(model.ExperimentPumpProbe, cfg.PumpProbe.Seed)
		simulateFor(t, model.ExperimentPumpProbe, cfg, rep)

		step := NewFitStep(model.ExperimentPumpProbe, cfg)
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rep.Fit == nil {
			t.Fatal("expected fit result")
		}
		if !rep.Fit.Success {
			t.Fatalf("fit failed: %s", rep.Fit.Message)
		}

		t0, _, ok := rep.Fit.Param("t0")
		if !ok {
			t.Fatal("expected t0 parameter")
		}
		predicted := cfg.PumpProbe.Prediction.Center
		if math.Abs(t0-predicted) > 1e-15 {
			t.Errorf("got t0 %v, expected %v within 1 fs", t0, predicted)
		}
	})

	t.Run("infrared fit converges", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.Infrared.NoiseLevel = 0
		rep := model.NewExperimentReport(model.ExperimentInfrared, cfg.Infrared.Seed)
		simulateFor(t, model.ExperimentInfrared, cfg, rep)

		step := NewFitStep(model.ExperimentInfrared, cfg)
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rep.Fit == nil {
			t.Fatal("expected fit result")
		}
		if !rep.Fit.Success {
			t.Fatalf("fit failed: %s", rep.Fit.Message)
		}
		if len(rep.Fit.Params) != 15 {
			t.Errorf("got %d parameters, expected 15", len(rep.Fit.Params))
		}
	})
}

// TestRenderStepDo tests figure rendering.
func TestRenderStepDo(t *testing.T) {
	t.Parallel()

	t.Run("requires dataset", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		step := NewRenderStep(model.ExperimentPumpProbe, cfg)
		rep := model.NewExperimentReport(model.ExperimentPumpProbe, 42)

		err := step.Do(context.Background(), rep)
		if !errors.Is(err, render.ErrNoDataset) {
			t.Errorf("expected render.ErrNoDataset, got %v", err)
		}
	})

	t.Run("writes the figure file", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		rep := model.NewExperimentReport(model.ExperimentPumpProbe, cfg.PumpProbe.Seed)
		simulateFor(t, model.ExperimentPumpProbe, cfg, rep)

		step := NewRenderStep(model.ExperimentPumpProbe, cfg)
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		path := filepath.Join(cfg.OutputDir, report.FigureFileName(model.ExperimentPumpProbe))
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected figure at %s: %v", path, err)
		}
		if len(rep.OutputFiles) != 1 || rep.OutputFiles[0] != path {
			t.Errorf("expected output files [%s], got %v", path, rep.OutputFiles)
		}
	})
}

// TestExportStepDo tests the text file export.
func TestExportStepDo(t *testing.T) {
	t.Parallel()

	t.Run("requires dataset", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		step := NewExportStep(model.ExperimentPumpProbe, cfg)
		rep := model.NewExperimentReport(model.ExperimentPumpProbe, 42)

		err := step.Do(context.Background(), rep)
		if !errors.Is(err, report.ErrNoDataset) {
			t.Errorf("expected report.ErrNoDataset, got %v", err)
		}
	})

	t.Run("writes data and analysis files", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		rep := model.NewExperimentReport(model.ExperimentPumpProbe, cfg.PumpProbe.Seed)
		simulateFor(t, model.ExperimentPumpProbe, cfg, rep)

		detectStep := NewDetectStep(model.ExperimentPumpProbe, cfg)
		if err := detectStep.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected detect error: %v", err)
		}

		step := NewExportStep(model.ExperimentPumpProbe, cfg)
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		dataPath := filepath.Join(cfg.OutputDir, report.DataFileName(model.ExperimentPumpProbe))
		if _, err := os.Stat(dataPath); err != nil {
			t.Errorf("expected data file at %s: %v", dataPath, err)
		}
		analysisPath := filepath.Join(cfg.OutputDir, report.AnalysisFileName(model.ExperimentPumpProbe))
		if _, err := os.Stat(analysisPath); err != nil {
			t.Errorf("expected analysis file at %s: %v", analysisPath, err)
		}
		if len(rep.OutputFiles) != 2 {
			t.Errorf("expected 2 output files, got %v", rep.OutputFiles)
		}
	})
}

// TestNewExperimentPipeline tests the standard five-stage assembly.
func TestNewExperimentPipeline(t *testing.T) {
	t.Parallel()

	p := NewExperimentPipeline(model.ExperimentDijet, config.NewConfig())

	if p.StepCount() != 5 {
		t.Fatalf("expected 5 steps, got %d", p.StepCount())
	}

	expected := []string{"simulate", "detect", "fit", "render", "export"}
	names := p.StepNames()
	for i, name := range names {
		if name != expected[i] {
			t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
		}
	}
}

// TestSeedFor tests per-experiment seed lookup.
func TestSeedFor(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Dijet.Seed = 1
	cfg.PumpProbe.Seed = 2
	cfg.Infrared.Seed = 3

	tests := []struct {
		exp  model.Experiment
		seed uint64
	}{
		{model.ExperimentDijet, 1},
		{model.ExperimentPumpProbe, 2},
		{model.ExperimentInfrared, 3},
		{model.Experiment(99), 0},
	}

	for _, tt := range tests {
		if got := SeedFor(cfg, tt.exp); got != tt.seed {
			t.Errorf("SeedFor(%v) = %d, expected %d", tt.exp, got, tt.seed)
		}
	}
}

// TestPipelineEndToEnd runs the full five-stage analysis for each
// experiment against the default configuration.
func TestPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	for _, exp := range model.Experiments() {
		t.Run(exp.String(), func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t)
			p := NewExperimentPipeline(exp, cfg)
			rep := model.NewExperimentReport(exp, SeedFor(cfg, exp))

			if err := p.Execute(context.Background(), rep); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(rep.PerformedSteps) != 5 {
				t.Errorf("expected 5 performed steps, got %v", rep.PerformedSteps)
			}
			if rep.Dataset == nil {
				t.Error("expected dataset in report")
			}
			if rep.Fit == nil {
				t.Error("expected fit result in report")
			}
			if len(rep.OutputFiles) < 2 {
				t.Errorf("expected at least 2 output files, got %v", rep.OutputFiles)
			}
			if rep.Elapsed <= 0 {
				t.Errorf("expected positive elapsed time, got %v", rep.Elapsed)
			}

			figure := filepath.Join(cfg.OutputDir, report.FigureFileName(exp))
			if _, err := os.Stat(figure); err != nil {
				t.Errorf("expected figure at %s: %v", figure, err)
			}
		})
	}
}

// simulateFor fills the report's dataset and truth via the simulation step.
func simulateFor(t *testing.T, exp model.Experiment, cfg *config.Config, rep *model.ExperimentReport) {
	t.Helper()

	step := NewSimulateStep(exp, cfg)
	if err := step.Do(context.Background(), rep); err != nil {
		t.Fatalf("simulation failed: %v", err)
	}
}
