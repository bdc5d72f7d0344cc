// Package fit runs the bounded nonlinear least-squares fits of the
// analysis pipelines. It wraps a Levenberg-Marquardt solver with a sine
// transform that keeps parameters inside finite box bounds, weights
// residuals by per-point uncertainties, and derives parameter errors from
// the pseudo-inverse of the normal matrix scaled by the reduced
// chi-square.
//
// Design decision: Numerical failure is data, not control flow. Curve
// returns an error only for malformed problems; a diverging or degenerate
// fit comes back as a FitResult with Success false and a message, so
// pipelines can report the failure and keep going.
package fit
