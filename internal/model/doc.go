// Package model defines the core data structures used throughout utep.
//
// This package contains the following main types:
//   - Experiment: Identifies one of the three analysis pipelines
//   - Dataset/Truth: A simulated measurement and its noiseless components
//   - FitResult: The outcome of a bounded least-squares fit
//   - Peak/PeakMatch/LocalSignificance: Detection results
//   - ExperimentReport: The main analysis result structure
//   - SummaryReport: A summarized, human-readable report
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (simulate, fit, detect, render, report) need
// to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
