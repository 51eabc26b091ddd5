package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("RAIDER_RUNTIME_PATH"))
}

func GetEnvPath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".raider"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
