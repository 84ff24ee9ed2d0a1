package iologger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/biomed-study/biodb/pkg/config"
	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		res   slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.input), v.input)
	}
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		format string
		has    string
	}{
		{"json", `"msg":"Patient deleted"`},
		{"text", `msg="Patient deleted"`},
		{"tint", "Patient deleted"},
	}

	for _, v := range tests {
		t.Run(v.format, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := config.LogConfig{Format: v.format, Level: "info"}
			log := slog.New(NewHandler(&buf, cfg, true))

			log.Debug("hidden")
			log.Info("Patient deleted", "patient_id", 2)

			assert.Contains(t, buf.String(), v.has)
			assert.Contains(t, buf.String(), "patient_id")
			assert.NotContains(t, buf.String(), "hidden")
		})
	}

	t.Run("debug level", func(t *testing.T) {
		h := NewHandler(&bytes.Buffer{}, config.LogConfig{Level: "debug"}, true)
		assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	})
}

func TestInit_File(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	path := filepath.Join(dir, LogFileName)

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("first")
	require.NoError(t, Init(dir, cfg, true))
	slog.Info("second")

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bs), "first")
	assert.Contains(t, string(bs), "second")

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("third")
	bs, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(bs), "first")
	assert.Contains(t, string(bs), "third")
}

func TestInit_MissingDir(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	err := Init(filepath.Join(t.TempDir(), "none"), cfg, false)
	require.Error(t, err)
	assert.Equal(t, errcode.CreateLogFileError, err.(*gn.Error).Code)
}
