/*
Copyright © 2026 biodb authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/biomed-study/biodb/internal/iofs"
	"github.com/biomed-study/biodb/internal/iologger"
	app "github.com/biomed-study/biodb/pkg"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "biodb",
		Short:   "biodb manages a de-identified biomedical study database",
		Long: `biodb keeps a small SQLite database of a biomedical study: patients,
their clinical visits and collected biological samples.

Patient names are never stored, only their SHA-256 hashes. Visits and
samples are removed together with their patient.

Commands:
  run              reset, seed and walk through all study operations
  reset            drop and recreate the study tables
  seed             insert seed rows into empty tables
  patients         list patients
  visits           list visits of a patient
  hypertensive     list readings above a systolic threshold
  relocate-sample  change storage location of a sample
  delete-patient   delete a patient with visits and samples
  status           show database file and row counts
  optimize         check and compact the database file

Configuration precedence (highest to lowest):
  1. CLI flags (--db, --format, ...)
  2. Environment variables (BIODB_*)
  3. Config file (~/.config/biodb/config.yaml)
  4. Built-in defaults

Examples:
  biodb run
  biodb --db /tmp/study.db run
  BIODB_REPORT_FORMAT=pretty biodb patients`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "biodb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for biodb")

	addPersistentFlags(rootCmd)

	rootCmd.AddCommand(
		getRunCmd(),
		getResetCmd(),
		getSeedCmd(),
		getPatientsCmd(),
		getVisitsCmd(),
		getHypertensiveCmd(),
		getRelocateSampleCmd(),
		getDeletePatientCmd(),
		getStatusCmd(),
		getOptimizeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update(flagOptions(cmd))

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"database", cfg.Database.Path,
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// The log file started by bootstrap is appended to.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("BIODB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.path", "BIODB_DATABASE_PATH")
	v.BindEnv("database.busy_timeout", "BIODB_DATABASE_BUSY_TIMEOUT")

	// Log configuration
	v.BindEnv("log.level", "BIODB_LOG_LEVEL")
	v.BindEnv("log.format", "BIODB_LOG_FORMAT")
	v.BindEnv("log.destination", "BIODB_LOG_DESTINATION")

	// Report configuration
	v.BindEnv("report.format", "BIODB_REPORT_FORMAT")

	// Study parameters
	v.BindEnv("study.patient_id", "BIODB_STUDY_PATIENT_ID")
	v.BindEnv("study.systolic_threshold", "BIODB_STUDY_SYSTOLIC_THRESHOLD")
	v.BindEnv("study.sample_id", "BIODB_STUDY_SAMPLE_ID")
	v.BindEnv("study.sample_location", "BIODB_STUDY_SAMPLE_LOCATION")
	v.BindEnv("study.delete_patient_id", "BIODB_STUDY_DELETE_PATIENT_ID")

	v.AutomaticEnv()
}
