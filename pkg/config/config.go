// Package config provides configuration management for biodb.
//
// This package has no I/O dependencies (no file operations, no database calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: path, busy_timeout
//   - Log: level, format, destination
//   - Report: format
//   - Study: patient_id, systolic_threshold, sample_id, sample_location,
//     delete_patient_id
//
// Runtime-only fields (CLI flags only):
//   - SeedFile (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use BIODB_ prefix with underscores for nesting:
//
//	BIODB_DATABASE_PATH=biomed_study.db
//	BIODB_LOG_LEVEL=info
//	BIODB_REPORT_FORMAT=tuple
//	BIODB_STUDY_SYSTOLIC_THRESHOLD=140
package config

// Config represents the complete biodb configuration.
type Config struct {
	// Database contains SQLite connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Report determines how query results are printed.
	Report ReportConfig `mapstructure:"report" yaml:"report"`

	// Study holds parameters of the demonstration sequence. Defaults
	// reproduce the fixed values of the reference walkthrough.
	Study StudyConfig `mapstructure:"study" yaml:"study"`

	// SeedFile is a YAML file with seed rows. When empty, the embedded
	// default seed is used.
	SeedFile string

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains SQLite connection parameters.
type DatabaseConfig struct {
	// Path is the location of the SQLite database file.
	// Relative paths are resolved against the working directory.
	Path string `mapstructure:"path" yaml:"path"`

	// BusyTimeout is the number of milliseconds SQLite waits for a lock
	// held by another process before giving up.
	BusyTimeout int `mapstructure:"busy_timeout" yaml:"busy_timeout"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// ReportConfig sets up console output of query results.
type ReportConfig struct {
	// Format can be 'tuple', 'json' (compact) or 'pretty' (indented JSON).
	Format string `mapstructure:"format" yaml:"format"`
}

// StudyConfig contains parameters of the named study operations used by
// the demonstration sequence.
type StudyConfig struct {
	// PatientID selects the patient whose visits are listed.
	PatientID int `mapstructure:"patient_id" yaml:"patient_id"`

	// SystolicThreshold is the exclusive lower bound of systolic pressure
	// for the hypertensive patients query.
	SystolicThreshold int `mapstructure:"systolic_threshold" yaml:"systolic_threshold"`

	// SampleID selects the sample that is moved to SampleLocation.
	SampleID int `mapstructure:"sample_id" yaml:"sample_id"`

	// SampleLocation is the new storage location of the sample.
	SampleLocation string `mapstructure:"sample_location" yaml:"sample_location"`

	// DeletePatientID is the patient removed at the end of the sequence.
	DeletePatientID int `mapstructure:"delete_patient_id" yaml:"delete_patient_id"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Path:        DefaultDatabasePath,
			BusyTimeout: 5000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		Report: ReportConfig{
			Format: "tuple",
		},
		Study: StudyConfig{
			PatientID:         1,
			SystolicThreshold: 140,
			SampleID:          1,
			SampleLocation:    "Biobank Rack 7",
			DeletePatientID:   2,
		},
	}

	return res
}
