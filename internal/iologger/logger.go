// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/biomed-study/biodb/pkg/config"
	"github.com/lmittmann/tint"
)

// LogFileName is the name of the log file in the log directory.
const LogFileName = "biodb.log"

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file".
// If append is true, appends to existing log file; otherwise creates fresh file.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	var writer io.Writer
	var isFile bool

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, LogFileName)
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}

		file, err := os.OpenFile(logPath, flags, 0644)
		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		writer = file
		isFile = true
	default:
		writer = os.Stderr
	}

	slog.SetDefault(slog.New(NewHandler(writer, cfg, isFile)))
	return nil
}

// NewHandler creates a slog handler for the configured format.
// Colors of the tint format are disabled when writing to a file.
func NewHandler(w io.Writer, cfg config.LogConfig, noColor bool) slog.Handler {
	level := parseLevel(cfg.Level)

	switch cfg.Format {
	case "text":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case "tint":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    noColor,
		})
	default:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
