package model

import "time"

// ExperimentReport is the main analysis result structure.
// It accumulates state as a pipeline runs: the simulated dataset, the fit
// outcome, the detected peaks, and the files written.
//
// Design decision: We use a single large struct rather than many small ones
// to simplify serialization and database storage. Pipeline steps mutate the
// report in sequence; batch runs give every pipeline its own report, so no
// locking is needed.
type ExperimentReport struct {
	// === Run Metadata ===

	// Experiment identifies the pipeline that produced this report.
	Experiment Experiment `json:"experiment"`

	// ExperimentName is the canonical experiment name for serialization.
	ExperimentName string `json:"experiment_name"`

	// StartedAt is when the analysis run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Seed is the random seed the generator was primed with.
	Seed uint64 `json:"seed"`

	// === Simulation ===

	// Dataset is the simulated measurement.
	// Nil until the simulation step has run.
	Dataset *Dataset `json:"dataset,omitempty"`

	// Truth holds the noiseless components recorded at generation time.
	Truth *Truth `json:"truth,omitempty"`

	// === Fit ===

	// Fit is the outcome of the bounded least-squares fit.
	// Nil until the fit step has run; check Fit.Success before reading
	// the numeric fields.
	Fit *FitResult `json:"fit,omitempty"`

	// === Detection ===

	// Peaks are all detected peaks, in axis order.
	Peaks []Peak `json:"peaks,omitempty"`

	// MainPeak is the selected principal feature with its width.
	// Nil when no peak passed the detection filters.
	MainPeak *PeakMeasurement `json:"main_peak,omitempty"`

	// Matches pairs predictions with detected peaks within tolerance.
	Matches []PeakMatch `json:"matches,omitempty"`

	// LocalSignificances holds the per-prediction excess significances.
	LocalSignificances []LocalSignificance `json:"local_significances,omitempty"`

	// === Output ===

	// OutputFiles lists the files written by the export step.
	OutputFiles []string `json:"output_files,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// TimedOut indicates the run was cut short by context cancellation.
	TimedOut bool `json:"timed_out"`

	// Error holds the terminal error of a failed run.
	// Only set if the run failed or partially failed.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewExperimentReport creates a new report for the given experiment and seed.
func NewExperimentReport(exp Experiment, seed uint64) *ExperimentReport {
	return &ExperimentReport{
		Experiment:     exp,
		ExperimentName: exp.String(),
		StartedAt:      time.Now(),
		Seed:           seed,
	}
}

// AddPerformedStep records that a pipeline step ran.
func (r *ExperimentReport) AddPerformedStep(name string) {
	r.PerformedSteps = append(r.PerformedSteps, name)
}

// AddOutputFile records a file written by the export step.
func (r *ExperimentReport) AddOutputFile(path string) {
	r.OutputFiles = append(r.OutputFiles, path)
}

// SetError records a terminal error in both typed and serializable form.
func (r *ExperimentReport) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// FitSucceeded reports whether the fit step ran and converged.
func (r *ExperimentReport) FitSucceeded() bool {
	return r.Fit != nil && r.Fit.Success
}

// MaxSignificance returns the largest local significance value, or 0 when
// none were computed.
func (r *ExperimentReport) MaxSignificance() float64 {
	maxSig := 0.0
	for _, s := range r.LocalSignificances {
		if s.Value > maxSig {
			maxSig = s.Value
		}
	}
	return maxSig
}

// MatchFor returns the match for the named prediction, if one exists.
func (r *ExperimentReport) MatchFor(prediction string) (PeakMatch, bool) {
	for _, m := range r.Matches {
		if m.Prediction == prediction {
			return m, true
		}
	}
	return PeakMatch{}, false
}
