// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory name used under the home and config directories.
const AppName = "requisite"

// DataDir returns ~/.requisite, or ".requisite" if the home directory is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, "."+AppName)
}

// ConfigDir returns ~/.config/requisite, or "" if the home directory is unavailable.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// UserManifestDir returns the directory scanned for user checklists.
func UserManifestDir() string {
	return filepath.Join(DataDir(), "checklists")
}

// StatePath returns the default SQLite state database path.
func StatePath() string {
	return filepath.Join(DataDir(), "state.db")
}

// TracesFile returns the default JSONL trace export path.
func TracesFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// ExpandHome replaces a leading "~" with the user's home directory.
//
//   - "~/checklists" -> "/home/me/checklists"
//   - "~" -> "/home/me"
//   - "/abs/path" and "rel/path" are returned cleaned
//   - "" stays ""
func ExpandHome(path string) string {
	if path == "" {
		return ""
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
