// Package paths resolves where the curate CLI keeps its configuration and
// its catalog data.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDir is the directory name used under the platform base directories.
const AppDir = "curation"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CURATION_CONFIG_DIR"
	EnvDataDir   = "CURATION_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgBase returns $env when set, or home joined with fallback.
func xdgBase(env string, fallback ...string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/curation (fallback ~/.config/curation)
// macOS:   ~/Library/Application Support/curation
// Windows: %APPDATA%/curation
func DefaultConfigDir() (string, error) {
	var (
		base string
		err  error
	)
	if platformDir.goos == "linux" {
		base, err = xdgBase("XDG_CONFIG_HOME", ".config")
	} else {
		base, err = platformDir.userConfigDir()
	}
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDir), nil
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/curation (fallback ~/.local/share/curation)
// macOS and Windows share the configuration directory.
func DefaultDataDir() (string, error) {
	if platformDir.goos != "linux" {
		return DefaultConfigDir()
	}
	base, err := xdgBase("XDG_DATA_HOME", ".local", "share")
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDir), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > CURATION_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > data_dir from config.yaml > CURATION_DATA_DIR > DefaultDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	return firstAbs(DefaultDataDir, flag, configValue, os.Getenv(EnvDataDir))
}

// firstAbs returns the first non-empty candidate as an absolute path, or the
// result of fallback when every candidate is empty.
func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
