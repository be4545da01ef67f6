package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath is usable before any config is parsed, e.g. to find the .env file.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("AITALK_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".aitalk"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
