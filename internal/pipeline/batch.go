package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor handles concurrent execution of multiple experiment
// analyses. It uses errgroup to manage goroutines and respect concurrency
// limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-experiment execution
// 2. It allows different batch strategies (e.g., per-experiment timeouts)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// cfg supplies the per-experiment seeds stamped onto each report.
	cfg *config.Config

	// pipelineFactory creates a new pipeline for each experiment.
	// We use a factory to ensure each analysis gets a fresh pipeline
	// instance.
	pipelineFactory func(model.Experiment) *Pipeline

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed experiment reports.
	// Access is synchronized via mutex.
	results []*model.ExperimentReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Default is 3, one per experiment.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each experiment to create a
// fresh pipeline instance. This ensures that pipeline state doesn't leak
// between analyses and allows for per-experiment customization if needed.
func NewBatchProcessor(cfg *config.Config, pipelineFactory func(model.Experiment) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		cfg:             cfg,
		pipelineFactory: pipelineFactory,
		concurrency:     3,
		results:         make([]*model.ExperimentReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes multiple experiments concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each experiment gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Returns all reports collected, even for experiments that failed.
// The error return reports cancellation only; per-experiment failures are
// recorded in their reports.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, experiments []model.Experiment) ([]*model.ExperimentReport, error) {
	bp.logger.Info("starting batch processing",
		"total_experiments", len(experiments),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.ExperimentReport, len(experiments))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, exp := range experiments {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("analyzing experiment",
				"experiment", exp.String(),
				"index", i+1,
				"total", len(experiments),
			)

			// Create report for this experiment
			report := model.NewExperimentReport(exp, SeedFor(bp.cfg, exp))

			// Create and execute pipeline
			pipeline := bp.pipelineFactory(exp)
			err := pipeline.Execute(ctx, report)

			// Store result regardless of error
			// The report contains error information if the analysis failed
			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("analysis failed",
					"experiment", exp.String(),
					"error", err,
				)
				// Don't return error to errgroup - we want to continue
				// other experiments. The error is recorded in the report
				return nil
			}

			bp.logger.Info("analysis completed",
				"experiment", exp.String(),
			)

			return nil
		})
	}

	// Wait for all analyses to complete
	err := g.Wait()

	elapsed := time.Since(startTime)
	bp.logger.Info("batch processing complete",
		"total_experiments", len(experiments),
		"elapsed", elapsed,
	)

	return bp.results, err
}

// ProcessBatchWithCallback analyzes multiple experiments and calls a
// callback for each completed analysis. This is useful for streaming
// results.
//
// The callback receives the report and the index of the experiment in the
// original slice. The callback is called from the goroutine that completed
// the analysis, so it should be thread-safe if it accesses shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	experiments []model.Experiment,
	callback func(report *model.ExperimentReport, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_experiments", len(experiments),
		"concurrency", bp.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, exp := range experiments {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report := model.NewExperimentReport(exp, SeedFor(bp.cfg, exp))
			pipeline := bp.pipelineFactory(exp)
			_ = pipeline.Execute(ctx, report) //nolint:errcheck // Error is stored in report

			// Call the callback with the result
			callback(report, i)

			return nil
		})
	}

	return g.Wait()
}
