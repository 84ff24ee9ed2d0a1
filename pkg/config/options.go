package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabasePath sets the location of the SQLite database file.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseBusyTimeout sets how long (in milliseconds) SQLite waits
// for a locked database.
func OptDatabaseBusyTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Busy Timeout", i) {
			c.Database.BusyTimeout = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptReportFormat sets how query results are printed.
// Valid values: "tuple", "json", "pretty".
func OptReportFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Report.Format", s) {
			c.Report.Format = s
		}
	}
}

// OptStudyPatientID sets the patient whose visits are listed.
func OptStudyPatientID(i int) Option {
	return func(c *Config) {
		if isValidInt("Study Patient ID", i) {
			c.Study.PatientID = i
		}
	}
}

// OptStudySystolicThreshold sets the systolic pressure above which a
// patient is reported as hypertensive.
func OptStudySystolicThreshold(i int) Option {
	return func(c *Config) {
		if isValidInt("Systolic Threshold", i) {
			c.Study.SystolicThreshold = i
		}
	}
}

// OptStudySampleID sets the sample that gets a new storage location.
func OptStudySampleID(i int) Option {
	return func(c *Config) {
		if isValidInt("Study Sample ID", i) {
			c.Study.SampleID = i
		}
	}
}

// OptStudySampleLocation sets the new storage location of the sample.
func OptStudySampleLocation(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sample Location", s) {
			c.Study.SampleLocation = s
		}
	}
}

// OptStudyDeletePatientID sets the patient removed by the sequence.
func OptStudyDeletePatientID(i int) Option {
	return func(c *Config) {
		if isValidInt("Delete Patient ID", i) {
			c.Study.DeletePatientID = i
		}
	}
}

// OptSeedFile sets a YAML file with seed rows.
// Runtime-only field - not in ToOptions().
func OptSeedFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Seed File", s) {
			c.SeedFile = s
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
