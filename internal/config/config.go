package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default application-level values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "utep"

	// DefaultOutputDir is where plots, data files, and analysis files are
	// written. The current directory mirrors how the analysis protocols
	// are run from a working directory per campaign.
	DefaultOutputDir = "."

	// DefaultConcurrency is the number of experiment pipelines run in
	// parallel by the batch command. Three covers the full experiment set.
	DefaultConcurrency = 3
)

// Config holds all configuration options for utep.
// This struct is populated from CLI flags and the optional YAML file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: Application-level options stay flat, but each
// experiment gets its own sub-struct. The three experiments carry large,
// disjoint constant sets (axes, protocol counts, fit bounds), and a single
// flat struct would mix three unrelated vocabularies.
type Config struct {
	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for utep.yaml in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// OutputDir is the directory where plots, data files, and analysis
	// files are written. Created if it does not exist.
	OutputDir string

	// JSONReport enables JSON report output instead of the human-readable
	// console summary. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable console summary. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// NoSave disables writing the run to the history database.
	NoSave bool

	// DBDir is the directory holding the run-history SQLite database.
	// Defaults to the XDG data directory (~/.local/share/utep on Linux).
	DBDir string

	// LogFile, when set, adds a JSON log handler writing to this path in
	// addition to the stderr handler.
	LogFile string

	// Concurrency is the number of pipelines run in parallel by the
	// batch command.
	Concurrency int

	// Dijet, PumpProbe, and Infrared hold the per-experiment constants.
	Dijet     *DijetConfig
	PumpProbe *PumpProbeConfig
	Infrared  *InfraredConfig
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (axis bounds, protocol
// counts, fit bounds). This also serves as documentation of the defaults.
func NewConfig() *Config {
	return &Config{
		OutputDir:   DefaultOutputDir,
		DBDir:       XDGDataDir(),
		Concurrency: DefaultConcurrency,
		Dijet:       NewDijetConfig(),
		PumpProbe:   NewPumpProbeConfig(),
		Infrared:    NewInfraredConfig(),
	}
}

// XDGDataDir returns the XDG data directory for utep.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/utep
// On macOS: ~/Library/Application Support/utep
// On Windows: %LOCALAPPDATA%\utep
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// SetSeed overrides the random seed of all three experiments.
// Used by the --seed flag to pin an entire batch to one seed.
func (c *Config) SetSeed(seed uint64) {
	c.Dijet.Seed = seed
	c.PumpProbe.Seed = seed
	c.Infrared.Seed = seed
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any pipeline begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// Concurrency must be positive; zero would mean no pipelines run
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if err := c.Dijet.Validate(); err != nil {
		return err
	}
	if err := c.PumpProbe.Validate(); err != nil {
		return err
	}
	return c.Infrared.Validate()
}
