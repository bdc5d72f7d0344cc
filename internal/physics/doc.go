// Package physics provides the closed-form line shapes and composite
// spectrum models shared by the simulation and fitting stages.
//
// This package contains the following building blocks:
//   - Peak shapes: BreitWigner, Gaussian, Lorentzian, PseudoVoigt
//   - Backgrounds: DijetBackground, QuadraticBackground
//   - Composite models: DijetModel, CorrelationModel, InfraredModel
//   - Width conversions between sigma and FWHM
//
// Design decision: Everything here is a pure function of float64 inputs
// with no internal state. The generators evaluate the same composite
// models the fitter optimizes, which keeps the generation/fit round-trip
// exact by construction and makes every shape trivially testable.
package physics
