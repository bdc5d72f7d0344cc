package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = "utep.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the utep.yaml configuration file.
// Every field is optional; absent fields keep their protocol defaults.
//
// Design decision: Scalar overrides are pointers so the loader can tell
// "not set" from a deliberate zero. Zero is meaningful for several fields
// (a zero noise level runs the noiseless protocol), so zero-value merging
// would silently discard valid settings.
type File struct {
	// Dijet overrides a subset of the dijet search configuration.
	Dijet *FileDijet `yaml:"dijet,omitempty"`

	// PumpProbe overrides a subset of the pump-probe configuration.
	PumpProbe *FilePumpProbe `yaml:"pumpprobe,omitempty"`

	// Infrared overrides a subset of the infrared search configuration.
	Infrared *FileInfrared `yaml:"infrared,omitempty"`
}

// FileDijet holds the dijet overrides accepted from the config file.
type FileDijet struct {
	Seed               *uint64      `yaml:"seed,omitempty"`
	Points             *int         `yaml:"points,omitempty"`
	MassMin            *float64     `yaml:"massMin,omitempty"`
	MassMax            *float64     `yaml:"massMax,omitempty"`
	SignificanceWindow *float64     `yaml:"significanceWindow,omitempty"`
	Predictions        []Prediction `yaml:"predictions,omitempty"`
}

// FilePumpProbe holds the pump-probe overrides accepted from the config file.
type FilePumpProbe struct {
	Seed       *uint64     `yaml:"seed,omitempty"`
	Points     *int        `yaml:"points,omitempty"`
	TimeRange  *float64    `yaml:"timeRange,omitempty"`
	LaserWidth *float64    `yaml:"laserWidth,omitempty"`
	NoiseLevel *float64    `yaml:"noiseLevel,omitempty"`
	Pulses     *float64    `yaml:"pulses,omitempty"`
	Background *float64    `yaml:"background,omitempty"`
	Prediction *Prediction `yaml:"prediction,omitempty"`
}

// FileInfrared holds the infrared overrides accepted from the config file.
type FileInfrared struct {
	Seed           *uint64      `yaml:"seed,omitempty"`
	Points         *int         `yaml:"points,omitempty"`
	EnergyMin      *float64     `yaml:"energyMin,omitempty"`
	EnergyMax      *float64     `yaml:"energyMax,omitempty"`
	Temperature    *float64     `yaml:"temperature,omitempty"`
	Resolution     *float64     `yaml:"resolution,omitempty"`
	Scans          *float64     `yaml:"scans,omitempty"`
	NoiseLevel     *float64     `yaml:"noiseLevel,omitempty"`
	MatchTolerance *float64     `yaml:"matchTolerance,omitempty"`
	Predictions    []Prediction `yaml:"predictions,omitempty"`
}

// LoadConfigFile loads experiment overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for utep.yaml in the current directory
// 3. Look for utep.yaml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply merges the file overrides into the configuration.
// Only fields present in the file are touched.
func (f *File) Apply(cfg *Config) {
	if f.Dijet != nil {
		f.Dijet.apply(cfg.Dijet)
	}
	if f.PumpProbe != nil {
		f.PumpProbe.apply(cfg.PumpProbe)
	}
	if f.Infrared != nil {
		f.Infrared.apply(cfg.Infrared)
	}
}

func (f *FileDijet) apply(cfg *DijetConfig) {
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	if f.Points != nil {
		cfg.Points = *f.Points
	}
	if f.MassMin != nil {
		cfg.MassMin = *f.MassMin
	}
	if f.MassMax != nil {
		cfg.MassMax = *f.MassMax
	}
	if f.SignificanceWindow != nil {
		cfg.SignificanceWindow = *f.SignificanceWindow
	}
	if len(f.Predictions) > 0 {
		cfg.Predictions = f.Predictions
	}
}

func (f *FilePumpProbe) apply(cfg *PumpProbeConfig) {
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	if f.Points != nil {
		cfg.Points = *f.Points
	}
	if f.TimeRange != nil {
		cfg.TimeRange = *f.TimeRange
	}
	if f.LaserWidth != nil {
		cfg.LaserWidth = *f.LaserWidth
	}
	if f.NoiseLevel != nil {
		cfg.NoiseLevel = *f.NoiseLevel
	}
	if f.Pulses != nil {
		cfg.Pulses = *f.Pulses
	}
	if f.Background != nil {
		cfg.Background = *f.Background
	}
	if f.Prediction != nil {
		cfg.Prediction = *f.Prediction
	}
}

func (f *FileInfrared) apply(cfg *InfraredConfig) {
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	if f.Points != nil {
		cfg.Points = *f.Points
	}
	if f.EnergyMin != nil {
		cfg.EnergyMin = *f.EnergyMin
	}
	if f.EnergyMax != nil {
		cfg.EnergyMax = *f.EnergyMax
	}
	if f.Temperature != nil {
		cfg.Temperature = *f.Temperature
	}
	if f.Resolution != nil {
		cfg.Resolution = *f.Resolution
	}
	if f.Scans != nil {
		cfg.Scans = *f.Scans
	}
	if f.NoiseLevel != nil {
		cfg.NoiseLevel = *f.NoiseLevel
	}
	if f.MatchTolerance != nil {
		cfg.MatchTolerance = *f.MatchTolerance
	}
	if len(f.Predictions) > 0 {
		cfg.Predictions = f.Predictions
	}
}
