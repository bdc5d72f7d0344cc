package log

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// Setup creates the process logger: human-readable text on stderr, with an
// optional JSON copy appended to logFile for machine parsing.
// Returns the logger and a cleanup function to close the file.
//
// An empty logFile disables the file output. If the file cannot be opened,
// Setup falls back to stderr-only logging rather than failing the run.
func Setup(logFile string, verbose bool) (*slog.Logger, func() error) {
	level := levelFor(verbose)

	// Stderr handler (text for readability, floats in scientific notation)
	stderrHandler := NewScientificHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if logFile == "" {
		return slog.New(stderrHandler), func() error { return nil }
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		// Fall back to stderr-only if file fails
		slog.Error("failed to open log file, using stderr only", "error", err, "file", logFile)
		return slog.New(stderrHandler), func() error { return nil }
	}

	// File handler (JSON with raw float values for machine parsing)
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: level,
	})

	// Fanout to both handlers
	logger := slog.New(slogmulti.Fanout(stderrHandler, fileHandler))

	cleanup := func() error {
		return file.Close()
	}

	return logger, cleanup
}

// SetupWithWriters creates a dual-output logger with custom writers (for testing).
func SetupWithWriters(stderr, file io.Writer, verbose bool) *slog.Logger {
	level := levelFor(verbose)
	stderrHandler := NewScientificHandler(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
}

// NewLogger creates a text logger writing to w, with float attributes
// rendered in compact scientific notation.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewScientificHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFor(verbose),
	})))
}

// levelFor maps the verbose flag to a log level. Non-verbose runs only
// surface warnings so the analysis protocol on stdout stays clean.
func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
