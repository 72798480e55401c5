package config

import (
	"os"
	"path/filepath"
)

const appName = "wordmatch"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDBPath returns the default path for the SQLite database. WORDMATCH_DB
// overrides it.
func DefaultDBPath() string {
	if v := os.Getenv("WORDMATCH_DB"); v != "" {
		return v
	}
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultLogPath returns the path of the log file.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".log")
}

// DefaultUnitsPath returns the units file named by WORDMATCH_UNITS, or the
// user's units.toml when it exists. An empty result selects the bundled units.
func DefaultUnitsPath() string {
	if v := os.Getenv("WORDMATCH_UNITS"); v != "" {
		return v
	}
	path := filepath.Join(XDGConfigHome(), appName, "units.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
