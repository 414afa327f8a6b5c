// ABOUTME: Standard filesystem paths for nova-router configuration
// ABOUTME: Resolves ~/.nova-router/ for global and .nova-router/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".nova-router"
	projectDirName = ".nova-router"
	configFileName = "config.yaml"
)

// GlobalDir returns the user-global config directory (~/.nova-router/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.nova-router/ under projectRoot).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// AuthFile returns the path to the auth credentials file.
func AuthFile() string {
	return filepath.Join(GlobalDir(), "auth.json")
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configFileName)
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), configFileName)
}

// EnsureDir creates a directory and all parents if they don't exist.
// Uses 0o700 since the global dir holds API keys.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
