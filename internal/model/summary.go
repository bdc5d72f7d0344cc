package model

import "time"

// SummaryReport is a summarized, human-readable view of one analysis run.
// It extracts the key numbers from the full report for quick review.
//
// Design decision: We create a separate summary rather than just printing
// parts of ExperimentReport because:
// 1. It provides a consistent, curated view of the most important results
// 2. It can be serialized to JSON for tools that want structured but simple output
// 3. It separates presentation concerns from analysis state
type SummaryReport struct {
	// Experiment is the canonical experiment name.
	Experiment string `json:"experiment"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Seed is the random seed used by the generator.
	Seed uint64 `json:"seed"`

	// Points is the number of simulated data points.
	Points int `json:"points"`

	// === Fit ===

	// FitSuccess reports whether the fit converged.
	FitSuccess bool `json:"fit_success"`

	// FitMessage describes the fit failure, if any.
	FitMessage string `json:"fit_message,omitempty"`

	// ReducedChiSquare is the goodness of fit, valid when FitSuccess is true.
	ReducedChiSquare float64 `json:"reduced_chi_square,omitempty"`

	// === Detection ===

	// PeakCount is the number of peaks that passed the detection filters.
	PeakCount int `json:"peak_count"`

	// MatchCount is the number of predictions matched to a detected peak.
	MatchCount int `json:"match_count"`

	// MaxSignificance is the largest per-prediction local significance.
	MaxSignificance float64 `json:"max_significance"`

	// Significances maps prediction names to local significance values.
	Significances map[string]float64 `json:"significances,omitempty"`

	// MatchedPredictions lists the names of the matched predictions.
	MatchedPredictions []string `json:"matched_predictions,omitempty"`

	// === Status ===

	// TimedOut indicates the run was cut short.
	TimedOut bool `json:"timed_out"`

	// Error contains any error message if the run failed.
	Error string `json:"error,omitempty"`
}

// NewSummaryReport creates a SummaryReport from a full ExperimentReport.
func NewSummaryReport(report *ExperimentReport) *SummaryReport {
	summary := &SummaryReport{
		Experiment: report.ExperimentName,
		StartedAt:  report.StartedAt,
		Elapsed:    report.Elapsed,
		Seed:       report.Seed,
		PeakCount:  len(report.Peaks),
		MatchCount: len(report.Matches),
		TimedOut:   report.TimedOut,
	}

	if report.Dataset != nil {
		summary.Points = report.Dataset.Len()
	}

	if report.Fit != nil {
		summary.FitSuccess = report.Fit.Success
		summary.FitMessage = report.Fit.Message
		if report.Fit.Success {
			summary.ReducedChiSquare = report.Fit.ReducedChiSquare
		}
	}

	summary.MaxSignificance = report.MaxSignificance()
	if len(report.LocalSignificances) > 0 {
		summary.Significances = make(map[string]float64, len(report.LocalSignificances))
		for _, s := range report.LocalSignificances {
			summary.Significances[s.Prediction] = s.Value
		}
	}

	for _, m := range report.Matches {
		summary.MatchedPredictions = append(summary.MatchedPredictions, m.Prediction)
	}

	if report.Error != nil {
		summary.Error = report.Error.Error()
	}

	return summary
}
