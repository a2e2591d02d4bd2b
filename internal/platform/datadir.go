package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir returns the per-user directory holding appName's preferences and
// logs. It prefers the OS config directory and falls back to a path under
// the home directory.
func DataDir(appName string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("data dir: app name is empty")
	}

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, appName), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("data dir: %w", err)
		}
		return "", fmt.Errorf("data dir: %w", homeErr)
	}
	return filepath.Join(fallbackConfigDir(homeDir), appName), nil
}
