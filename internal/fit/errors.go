package fit

import "errors"

// Problem validation errors.
// These are returned by Curve before any solver work starts; they mark a
// malformed problem rather than a fit that ran and failed.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances per call so callers can branch with
// errors.Is() while the messages stay human-readable.
var (
	// ErrNilModel is returned when the problem has no model function.
	ErrNilModel = errors.New("fit: model function must not be nil")

	// ErrMismatchedData is returned when x, y, and noise differ in length
	// or no data points were provided.
	ErrMismatchedData = errors.New("fit: x, y, and noise must share a nonzero length")

	// ErrNonPositiveNoise is returned when any uncertainty is zero,
	// negative, or NaN. Residual weighting divides by these values.
	ErrNonPositiveNoise = errors.New("fit: noise values must be strictly positive")

	// ErrMismatchedBounds is returned when the initial guess and the two
	// bound vectors differ in length or no parameters were provided.
	ErrMismatchedBounds = errors.New("fit: initial guess and bounds must share a nonzero length")

	// ErrMismatchedNames is returned when parameter names are provided but
	// do not label every parameter.
	ErrMismatchedNames = errors.New("fit: parameter names must label every parameter")

	// ErrInvalidBounds is returned when a bound is not finite or a lower
	// bound does not lie strictly below its upper bound. The bounding
	// transform needs a finite box.
	ErrInvalidBounds = errors.New("fit: bounds must be finite with lower strictly below upper")

	// ErrInitialOutOfBounds is returned when the starting guess lies
	// outside the box bounds.
	ErrInitialOutOfBounds = errors.New("fit: initial guess must lie within the bounds")

	// ErrInsufficientData is returned when there are no more data points
	// than parameters, leaving no degrees of freedom.
	ErrInsufficientData = errors.New("fit: need more data points than parameters")
)
