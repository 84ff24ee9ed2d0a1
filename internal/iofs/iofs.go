// Package iofs prepares directories and files the application needs in
// the user's home directory.
package iofs

import (
	"os"

	"github.com/biomed-study/biodb/pkg/config"
	"github.com/biomed-study/biodb/pkg/templates"
)

// EnsureDirs creates the config and log directories if they are missing.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless the user
// already has one.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	err := os.WriteFile(configPath, []byte(templates.ConfigYAML), 0644)
	if err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// FileSize returns the size of a file in bytes.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, ReadFileError(path, err)
	}
	return info.Size(), nil
}
