package settings

import (
	"os"
	"path/filepath"
)

const appDir = "dpui"

// Dir returns ~/.config/dpui (or the working directory as a fallback).
func Dir() string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", appDir)
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, "."+appDir)
}

// DefaultFile returns the settings file path inside Dir.
func DefaultFile() string {
	return filepath.Join(Dir(), "settings.yaml")
}

// DefaultPresetsPath returns the presets file path inside Dir.
func DefaultPresetsPath() string {
	return filepath.Join(Dir(), "presets.json")
}
