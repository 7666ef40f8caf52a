package util

import (
	"os"
	"path/filepath"
)

// snapshotFileName is the single document holding the whole library
const snapshotFileName = "library.json"

// GetDataDirectory figures out where the library file lives
func GetDataDirectory() string {
	// explicit override first
	dataDir := os.Getenv("DATA_DIR")
	if dataDir != "" {
		return dataDir
	}

	// fall back to the platform config dir
	configDir, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(configDir, "video-player")
	}

	// last resort - current directory
	return "."
}

// EnsureDirectoryExists creates directory if it doesn't exist
func EnsureDirectoryExists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// try to create it
		err = os.MkdirAll(path, 0755)
		if err != nil {
			return false
		}
	}
	return true
}

// SnapshotPath resolves the library file inside the data directory
func SnapshotPath(dataDir string) string {
	return filepath.Join(dataDir, snapshotFileName)
}
