package datapath

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "lofidesk"

// ConfigDir returns the directory holding config.yaml. Priority:
// 1) $XDG_CONFIG_HOME/lofidesk (if set)
// 2) ~/.config/lofidesk
func ConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the directory used for logs. Priority:
// 1) $XDG_DATA_HOME/lofidesk (if set)
// 2) ~/.local/share/lofidesk
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// LogPath returns the default log file path.
func LogPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lofidesk.log"), nil
}

func xdgDir(env string, homeRel string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appDir), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, homeRel, appDir), nil
}
