package utils

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetAppDataDir returns the appropriate application data directory for the current operating system
func GetAppDataDir() string {
	var appDataDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\AsgFlow
		appData := os.Getenv("APPDATA")
		if appData != "" {
			appDataDir = filepath.Join(appData, "AsgFlow")
		}
	case "darwin":
		// macOS: ~/Library/Application Support/AsgFlow
		homeDir, err := os.UserHomeDir()
		if err == nil {
			appDataDir = filepath.Join(homeDir, "Library", "Application Support", "AsgFlow")
		}
	}

	if appDataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			appDataDir = filepath.Join(homeDir, ".AsgFlow")
		} else {
			appDataDir = "."
		}
	}

	return appDataDir
}

// GetPresetsDir returns the directory where saved workflows are stored
func GetPresetsDir() string {
	return filepath.Join(GetAppDataDir(), "presets")
}
