// Package log provides structured logging for analysis runs, built on top
// of the standard slog package.
//
// This package extends slog to provide:
//   - Compact scientific notation for floating point attributes
//   - Optional dual output: text on stderr plus a JSON log file
//   - Configurable log levels with verbose mode support
//
// # Float Formatting
//
// The ScientificHandler reformats every float64 attribute to a fixed number
// of significant digits before the record reaches the underlying handler.
// Without it, text logs render physics quantities with full float64
// precision:
//
//	t0=2.0400000000000002e-14    instead of    t0=2.04e-14
//	noise=0.30000000000000004    instead of    noise=0.3
//
// The JSON file output deliberately bypasses this handler so that stored
// values keep their raw precision for downstream tools.
//
// # Usage
//
//	// Stderr only
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("peak detected",
//	    "t0", 2.04e-14, // rendered as t0=2.04e-14
//	    "amplitude", 0.2,
//	)
//
//	// Stderr plus JSON file, as wired by the CLI
//	logger, cleanup := log.Setup("run.log.json", verbose)
//	defer cleanup()
package log
