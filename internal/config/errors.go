package config

import "errors"

// Configuration validation errors.
// These errors are returned by the Validate methods and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrInvalidAxis is returned when an axis maximum does not exceed its
	// minimum. An empty or inverted axis cannot be sampled.
	ErrInvalidAxis = errors.New("invalid axis: maximum must exceed minimum")

	// ErrInvalidPoints is returned when the sample count cannot span an
	// axis. Generators need at least two points.
	ErrInvalidPoints = errors.New("invalid point count: need at least two samples")

	// ErrNoPredictions is returned when an experiment has no predictions
	// configured. Detection and matching need at least one predicted feature.
	ErrNoPredictions = errors.New("no predictions configured")

	// ErrInvalidNoise is returned when a noise level is negative.
	// Zero is valid and produces a noiseless dataset.
	ErrInvalidNoise = errors.New("invalid noise level: must be non-negative")

	// ErrInvalidProtocol is returned when a measurement repetition count
	// (pulses, scans) is not positive. The noise scaling divides by its
	// square root.
	ErrInvalidProtocol = errors.New("invalid protocol: repetition count must be positive")

	// ErrInvalidWindow is returned when a significance or matching window
	// is not positive.
	ErrInvalidWindow = errors.New("invalid window: must be positive")

	// ErrInvalidFitVectors is returned when the fit initial guess and bounds
	// do not share the model's parameter count.
	ErrInvalidFitVectors = errors.New("invalid fit vectors: initial guess and bounds must match the model parameter count")

	// ErrInvalidTemperature is returned when the sample temperature is not
	// positive. The thermal occupation factor divides by kT.
	ErrInvalidTemperature = errors.New("invalid temperature: must be positive")

	// ErrInvalidResolution is returned when the instrument resolution is
	// negative. Zero disables resolution smoothing.
	ErrInvalidResolution = errors.New("invalid resolution: must be non-negative")

	// ErrInvalidConcurrency is returned when the batch concurrency is not
	// positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
