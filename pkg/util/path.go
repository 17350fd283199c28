package util

import (
	"os"
	"path/filepath"
)

// GetStateDirectory figures out where the client keeps its local state file
func GetStateDirectory() string {
	// explicit override wins
	stateDir := os.Getenv("STATE_DIR")
	if stateDir != "" {
		return stateDir
	}

	// default to a dot directory under the user's home
	home, err := os.UserHomeDir()
	if err != nil {
		// last resort - current directory
		return "."
	}

	return filepath.Join(home, ".learnsphere")
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

// StateFilePath resolves the full path of the SQLite state file
func StateFilePath(stateDir string) string {
	if stateDir == "" {
		stateDir = GetStateDirectory()
	}
	return filepath.Join(stateDir, "state.db")
}
