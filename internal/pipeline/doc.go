// Package pipeline provides a framework for executing analysis stages in
// sequence.
//
// The pipeline pattern is used to carry each experiment through the
// measurement protocol: simulation, feature detection, model fitting, figure
// rendering, and text export. Each stage is implemented as a Step that
// receives the current report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of stages without modifying core logic
// 2. It provides consistent error handling and logging across stages
// 3. It supports cancellation via context for long-running analyses
// 4. It keeps outcome state (fit results, detected peaks, output files) in
// one report that every stage shares
//
// Detection runs before the fit on purpose: peak finding and local
// significance work on the raw trace, so their results never depend on
// whether the fit converged. A diverged fit is recorded in the report and
// the remaining stages degrade to their fit-free output.
//
// The package supports both individual analyses and batch processing with
// concurrency control using errgroup.
package pipeline
