package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	consts "github.com/khanhnv2901/seca-host/internal/shared/constants"
)

// dataDirEnvVar overrides the per-user data directory
const dataDirEnvVar = "SECA_HOST_DATA_DIR"

const appDirName = "seca-host"

// getDataDir returns the appropriate data directory for the current OS
// following the XDG Base Directory layout on Linux/Unix
func getDataDir() (string, error) {
	baseDir := os.Getenv(dataDirEnvVar)

	if baseDir == "" {
		switch runtime.GOOS {
		case "windows":
			baseDir = os.Getenv("LOCALAPPDATA")
			if baseDir == "" {
				baseDir = os.Getenv("APPDATA")
			}
			if baseDir == "" {
				return "", fmt.Errorf("could not determine Windows data directory")
			}
			baseDir = filepath.Join(baseDir, appDirName)

		case "darwin":
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("could not determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, "Library", "Application Support", appDirName)

		default:
			if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
				baseDir = filepath.Join(xdgDataHome, appDirName)
			} else {
				homeDir, err := os.UserHomeDir()
				if err != nil {
					return "", fmt.Errorf("could not determine home directory: %w", err)
				}
				baseDir = filepath.Join(homeDir, ".local", "share", appDirName)
			}
		}
	}

	if err := os.MkdirAll(baseDir, consts.DefaultDirPerm); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return baseDir, nil
}

// resolveReportsDir returns configured when set, otherwise <data dir>/reports.
// The result is absolute.
func resolveReportsDir(configured string) (string, error) {
	dir := configured
	if dir == "" {
		dataDir, err := getDataDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(dataDir, "reports")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir, nil
}

// configFilePath is the default config location
func configFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "~/.seca-host.yaml"
	}
	return filepath.Join(homeDir, ".seca-host.yaml")
}
