package utils

import (
	"os"
	"path/filepath"
)

// DefaultConfigName is looked up at the project root when no -config flag is given.
const DefaultConfigName = "ordercode.yaml"

// GetProjectRoot returns the absolute path to the project root directory.
func GetProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "." // fallback
	}
	return findRoot(dir)
}

func findRoot(dir string) string {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root
		}
		dir = parent
	}
	return "." // fallback
}

// ResolveConfigPath picks the settings file: the explicit flag value if set,
// otherwise ordercode.yaml at the project root when it exists, otherwise "".
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	candidate := filepath.Join(GetProjectRoot(), DefaultConfigName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
