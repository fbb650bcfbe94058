package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "shot"

// Paths holds the filesystem locations shot reads and writes
type Paths struct {
	ConfigDir  string
	ConfigPath string
}

// New resolves XDG-compliant paths for the current user
func New() (*Paths, error) {
	dir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	return &Paths{
		ConfigDir:  dir,
		ConfigPath: filepath.Join(dir, "config.yaml"),
	}, nil
}

// getConfigDir follows the XDG Base Directory specification on Unix
// and uses AppData on Windows
func getConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Fall back to ~/.config/shot (Unix-like systems)
	return filepath.Join(homeDir, ".config", appName), nil
}

// ConfigExists reports whether the config file is present on disk
func (p *Paths) ConfigExists() bool {
	info, err := os.Stat(p.ConfigPath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
