package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/detect"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/fit"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/physics"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/render"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/report"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/simulate"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrNoDataset indicates a stage ran before the simulation produced data.
	ErrNoDataset = errors.New("no dataset simulated")

	// ErrNoTruth indicates a stage needs the noiseless truth components but
	// the report does not carry them.
	ErrNoTruth = errors.New("no truth components recorded")
)

// baseStep carries the state shared by every stage: the experiment being
// analyzed, the full configuration, and a logger.
type baseStep struct {
	// experiment selects the per-domain branch of each stage.
	experiment model.Experiment

	// cfg is the full application configuration. Stages read their own
	// experiment's sub-config plus the shared output settings.
	cfg *config.Config

	// logger for structured logging.
	logger *slog.Logger
}

// StepOption configures a pipeline stage.
type StepOption func(*baseStep)

// WithStepLogger sets a custom logger for a stage.
func WithStepLogger(logger *slog.Logger) StepOption {
	return func(b *baseStep) {
		b.logger = logger
	}
}

// newBaseStep builds the shared stage state with options applied.
func newBaseStep(exp model.Experiment, cfg *config.Config, opts ...StepOption) baseStep {
	b := baseStep{
		experiment: exp,
		cfg:        cfg,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(&b)
	}

	return b
}

// SimulateStep generates the synthetic measurement for the experiment and
// records the dataset together with its noiseless truth components.
//
// Design decision: Simulation is a pipeline step rather than a constructor
// argument because:
// 1. The report accumulates through the same Execute path as every stage
// 2. Cancellation between stages needs no special casing
// 3. Batch runs reuse the pipeline factory unchanged
type SimulateStep struct {
	baseStep
}

// NewSimulateStep creates a new simulation step.
func NewSimulateStep(exp model.Experiment, cfg *config.Config, opts ...StepOption) *SimulateStep {
	return &SimulateStep{newBaseStep(exp, cfg, opts...)}
}

// Name returns the step name.
func (s *SimulateStep) Name() string {
	return "simulate"
}

// Do executes the simulation step.
func (s *SimulateStep) Do(ctx context.Context, rep *model.ExperimentReport) error {
	var (
		dataset *model.Dataset
		truth   *model.Truth
		err     error
	)

	switch s.experiment {
	case model.ExperimentDijet:
		dataset, truth, err = simulate.Dijet(s.cfg.Dijet)
	case model.ExperimentPumpProbe:
		dataset, truth, err = simulate.PumpProbe(s.cfg.PumpProbe)
	case model.ExperimentInfrared:
		dataset, truth, err = simulate.Infrared(s.cfg.Infrared)
	default:
		return fmt.Errorf("simulate: %w", model.ErrUnknownExperiment)
	}
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	rep.Dataset = dataset
	rep.Truth = truth

	s.logger.Info("simulation complete",
		"experiment", rep.ExperimentName,
		"points", dataset.Len(),
		"seed", rep.Seed,
	)

	return nil
}

// DetectStep searches the simulated measurement for the predicted features:
// local excess significances for the dijet search, the principal correlation
// peak for pump-probe, and matched absorption lines for infrared.
type DetectStep struct {
	baseStep
}

// NewDetectStep creates a new detection step.
func NewDetectStep(exp model.Experiment, cfg *config.Config, opts ...StepOption) *DetectStep {
	return &DetectStep{newBaseStep(exp, cfg, opts...)}
}

// Name returns the step name.
func (s *DetectStep) Name() string {
	return "detect"
}

// Do executes the detection step.
func (s *DetectStep) Do(ctx context.Context, rep *model.ExperimentReport) error {
	if rep.Dataset == nil || rep.Dataset.Len() == 0 {
		return ErrNoDataset
	}

	switch s.experiment {
	case model.ExperimentDijet:
		return s.detectDijet(rep)
	case model.ExperimentPumpProbe:
		return s.detectPumpProbe(rep)
	case model.ExperimentInfrared:
		return s.detectInfrared(rep)
	default:
		return fmt.Errorf("detect: %w", model.ErrUnknownExperiment)
	}
}

// detectDijet computes the local excess significance around each predicted
// resonance, using the recorded noiseless background as the reference.
func (s *DetectStep) detectDijet(rep *model.ExperimentReport) error {
	cfg := s.cfg.Dijet
	dataset := rep.Dataset

	if rep.Truth == nil || len(rep.Truth.Background) != dataset.Len() {
		return ErrNoTruth
	}

	for _, pred := range cfg.Predictions {
		sig := detect.LocalSignificance(dataset.X, dataset.Y, rep.Truth.Background,
			pred.Name, pred.Center, cfg.SignificanceWindow)
		rep.LocalSignificances = append(rep.LocalSignificances, sig)

		s.logger.Debug("local significance",
			"prediction", pred.Name,
			"center", pred.Center,
			"significance", sig.Value,
		)
	}

	return nil
}

// detectPumpProbe finds the tallest correlation peak, measures its width
// from the data, and records the offset from the predicted delay. An
// undetected peak leaves MainPeak nil and is not an error.
func (s *DetectStep) detectPumpProbe(rep *model.ExperimentReport) error {
	cfg := s.cfg.PumpProbe
	dataset := rep.Dataset

	peaks := detect.FindPeaks(dataset.X, dataset.Y, detect.Options{
		MinHeight:     cfg.PeakHeight,
		MinProminence: cfg.PeakProminence,
		MinWidth:      cfg.PeakWidth,
	})

	main, ok := detect.Tallest(peaks)
	if !ok {
		s.logger.Warn("no correlation peak detected",
			"experiment", rep.ExperimentName,
		)
		return nil
	}

	// The width falls back to the predicted intrinsic width when the trace
	// never drops below half maximum inside the scan window.
	measured := detect.MeasureFWHM(dataset.X, dataset.Y, main, cfg.Prediction.Width)
	rep.MainPeak = &measured

	match := model.PeakMatch{
		Prediction: cfg.Prediction.Name,
		Predicted:  cfg.Prediction.Center,
		Measured:   main.X,
		Difference: main.X - cfg.Prediction.Center,
		Amplitude:  main.Height,
	}
	if cfg.Prediction.Center != 0 {
		match.RelativeError = math.Abs(match.Difference) / cfg.Prediction.Center
	}
	rep.Matches = append(rep.Matches, match)

	s.logger.Info("correlation peak detected",
		"t0", main.X,
		"amplitude", main.Height,
		"fwhm", measured.FWHM,
		"fwhm_from_data", measured.FWHMFromData,
	)

	return nil
}

// detectInfrared finds all absorption peaks passing the detection filters
// and pairs them with the predicted transition energies.
func (s *DetectStep) detectInfrared(rep *model.ExperimentReport) error {
	cfg := s.cfg.Infrared
	dataset := rep.Dataset

	peaks := detect.FindPeaks(dataset.X, dataset.Y, detect.Options{
		MinHeight:     cfg.PeakHeight,
		MinDistance:   cfg.PeakDistance,
		MinProminence: cfg.PeakProminence,
	})
	rep.Peaks = peaks

	rep.Matches = detect.MatchPeaks(peaks, cfg.Predictions, cfg.MatchTolerance)

	s.logger.Info("peak detection complete",
		"peaks", len(peaks),
		"matches", len(rep.Matches),
	)

	return nil
}

// FitStep runs the bounded least-squares fit for the experiment's model.
//
// A fit that ran but did not converge is recorded as FitResult with
// Success false and is not a step error: later stages degrade to their
// fit-free output. Errors here mean the fit could not be set up at all.
type FitStep struct {
	baseStep
}

// NewFitStep creates a new fit step.
func NewFitStep(exp model.Experiment, cfg *config.Config, opts ...StepOption) *FitStep {
	return &FitStep{newBaseStep(exp, cfg, opts...)}
}

// Name returns the step name.
func (s *FitStep) Name() string {
	return "fit"
}

// Do executes the fit step.
func (s *FitStep) Do(ctx context.Context, rep *model.ExperimentReport) error {
	if rep.Dataset == nil || rep.Dataset.Len() == 0 {
		return ErrNoDataset
	}

	var problem fit.Problem
	switch s.experiment {
	case model.ExperimentDijet:
		problem = s.dijetProblem(rep.Dataset)
	case model.ExperimentPumpProbe:
		problem = s.pumpProbeProblem(rep.Dataset)
	case model.ExperimentInfrared:
		problem = s.infraredProblem(rep.Dataset)
	default:
		return fmt.Errorf("fit: %w", model.ErrUnknownExperiment)
	}

	result, err := fit.Curve(problem)
	if err != nil {
		return fmt.Errorf("fit setup failed: %w", err)
	}
	rep.Fit = result

	if result.Success {
		s.logger.Info("fit converged",
			"experiment", rep.ExperimentName,
			"reduced_chi_square", result.ReducedChiSquare,
			"evaluations", result.Evaluations,
		)
	} else {
		s.logger.Warn("fit did not converge",
			"experiment", rep.ExperimentName,
			"reason", result.Message,
		)
	}

	return nil
}

// dijetProblem builds the nine-parameter resonance fit from the configured
// initial guess and bounds.
func (s *FitStep) dijetProblem(dataset *model.Dataset) fit.Problem {
	cfg := s.cfg.Dijet

	return fit.Problem{
		X:              dataset.X,
		Y:              dataset.Y,
		Noise:          dataset.Noise,
		Model:          physics.DijetModel,
		ParamNames:     physics.DijetParamNames(),
		Initial:        cfg.FitInitial,
		Lower:          cfg.FitLower,
		Upper:          cfg.FitUpper,
		MaxEvaluations: cfg.FitMaxEvaluations,
	}
}

// pumpProbeProblem builds the four-parameter correlation fit. The initial
// guesses are data-derived: amplitude from the trace extent, delay from the
// tallest sample, width from the predicted intrinsic width, background from
// the trace floor. The delay bound is centered on the predicted correlation
// time. Heavy noise can push a data-derived guess outside its bound, so
// guesses are clamped into the box.
func (s *FitStep) pumpProbeProblem(dataset *model.Dataset) fit.Problem {
	cfg := s.cfg.PumpProbe

	ampGuess := floats.Max(dataset.Y) - floats.Min(dataset.Y)
	t0Guess := dataset.X[floats.MaxIdx(dataset.Y)]
	sigmaGuess := physics.FWHMToSigma(cfg.Prediction.Width)
	bgGuess := floats.Min(dataset.Y)

	lower := []float64{
		0,
		cfg.Prediction.Center - cfg.FitT0Window,
		cfg.FitSigmaMin,
		0,
	}
	upper := []float64{
		cfg.FitAmplitudeFactor * ampGuess,
		cfg.Prediction.Center + cfg.FitT0Window,
		cfg.FitSigmaMaxFactor * cfg.LaserWidth,
		cfg.FitBackgroundMax,
	}
	initial := []float64{
		ampGuess,
		clamp(t0Guess, lower[1], upper[1]),
		clamp(sigmaGuess, lower[2], upper[2]),
		clamp(bgGuess, lower[3], upper[3]),
	}

	return fit.Problem{
		X:              dataset.X,
		Y:              dataset.Y,
		Noise:          dataset.Noise,
		Model:          physics.CorrelationModel,
		ParamNames:     physics.CorrelationParamNames(),
		Initial:        initial,
		Lower:          lower,
		Upper:          upper,
		MaxEvaluations: cfg.FitMaxEvaluations,
	}
}

// infraredProblem builds the baseline-plus-lines spectrum fit from the
// configured initial guess and bounds.
func (s *FitStep) infraredProblem(dataset *model.Dataset) fit.Problem {
	cfg := s.cfg.Infrared

	return fit.Problem{
		X:              dataset.X,
		Y:              dataset.Y,
		Noise:          dataset.Noise,
		Model:          physics.InfraredModel,
		ParamNames:     physics.InfraredParamNames(len(cfg.Predictions)),
		Initial:        cfg.FitInitial,
		Lower:          cfg.FitLower,
		Upper:          cfg.FitUpper,
		MaxEvaluations: cfg.FitMaxEvaluations,
	}
}

// RenderStep draws the four-panel analysis figure into the output directory.
type RenderStep struct {
	baseStep
}

// NewRenderStep creates a new figure rendering step.
func NewRenderStep(exp model.Experiment, cfg *config.Config, opts ...StepOption) *RenderStep {
	return &RenderStep{newBaseStep(exp, cfg, opts...)}
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return "render"
}

// Do executes the rendering step.
func (s *RenderStep) Do(ctx context.Context, rep *model.ExperimentReport) error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.cfg.OutputDir, report.FigureFileName(s.experiment))

	var err error
	switch s.experiment {
	case model.ExperimentDijet:
		err = render.Dijet(s.cfg.Dijet, rep, path)
	case model.ExperimentPumpProbe:
		err = render.PumpProbe(s.cfg.PumpProbe, rep, path)
	case model.ExperimentInfrared:
		err = render.Infrared(s.cfg.Infrared, rep, path)
	default:
		return fmt.Errorf("render: %w", model.ErrUnknownExperiment)
	}
	if err != nil {
		return fmt.Errorf("failed to render figure: %w", err)
	}

	rep.AddOutputFile(path)

	s.logger.Debug("figure written", "path", path)

	return nil
}

// ExportStep writes the protocol text files: the simulated data table and,
// when applicable, the analysis summary.
type ExportStep struct {
	baseStep
}

// NewExportStep creates a new text export step.
func NewExportStep(exp model.Experiment, cfg *config.Config, opts ...StepOption) *ExportStep {
	return &ExportStep{newBaseStep(exp, cfg, opts...)}
}

// Name returns the step name.
func (s *ExportStep) Name() string {
	return "export"
}

// Do executes the export step.
func (s *ExportStep) Do(ctx context.Context, rep *model.ExperimentReport) error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dataPath, err := report.WriteDataFile(s.cfg.OutputDir, rep)
	if err != nil {
		return err
	}
	rep.AddOutputFile(dataPath)

	analysisPath, err := report.WriteAnalysisFile(s.cfg.OutputDir, s.predictions(), rep)
	if err != nil {
		return err
	}
	// The dijet analysis file is skipped entirely when the fit did not
	// converge; an empty path signals that.
	if analysisPath != "" {
		rep.AddOutputFile(analysisPath)
	}

	s.logger.Debug("output files written",
		"experiment", rep.ExperimentName,
		"count", len(rep.OutputFiles),
	)

	return nil
}

// predictions returns the prediction set of the step's experiment.
func (s *ExportStep) predictions() []config.Prediction {
	switch s.experiment {
	case model.ExperimentDijet:
		return s.cfg.Dijet.Predictions
	case model.ExperimentPumpProbe:
		return []config.Prediction{s.cfg.PumpProbe.Prediction}
	case model.ExperimentInfrared:
		return s.cfg.Infrared.Predictions
	}
	return nil
}

// NewExperimentPipeline assembles the standard five-stage analysis for one
// experiment: simulate, detect, fit, render, export. The stage order
// follows the measurement protocol; detection runs on the raw trace before
// the fit so its results never depend on fit convergence.
func NewExperimentPipeline(exp model.Experiment, cfg *config.Config, opts ...Option) *Pipeline {
	p := New(opts...)

	stepOpts := []StepOption{WithStepLogger(p.logger)}

	p.AddSteps(
		NewSimulateStep(exp, cfg, stepOpts...),
		NewDetectStep(exp, cfg, stepOpts...),
		NewFitStep(exp, cfg, stepOpts...),
		NewRenderStep(exp, cfg, stepOpts...),
		NewExportStep(exp, cfg, stepOpts...),
	)

	return p
}

// SeedFor returns the configured random seed for the experiment.
// Callers use it to stamp reports before executing a pipeline.
func SeedFor(cfg *config.Config, exp model.Experiment) uint64 {
	switch exp {
	case model.ExperimentDijet:
		return cfg.Dijet.Seed
	case model.ExperimentPumpProbe:
		return cfg.PumpProbe.Seed
	case model.ExperimentInfrared:
		return cfg.Infrared.Seed
	}
	return 0
}

// clamp limits v to the closed interval [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
