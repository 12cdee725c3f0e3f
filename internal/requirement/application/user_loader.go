package requirement

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zjrosen/requisite/internal/log"
)

// LoadUserManifests loads manifests from the user overlay directory.
// Returns nil if the directory doesn't exist (graceful fallback).
// Invalid manifest files are logged and skipped.
func LoadUserManifests(dir string) []*Manifest {
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		// Directory doesn't exist - not an error, just no user checklists
		return nil
	}

	var manifests []*Manifest
	fsys := os.DirFS(dir)
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn(log.CatRegistry, "Skipping unreadable user manifest path", "path", path, "error", err.Error())
			return nil
		}
		if d.IsDir() || !isManifestFile(d.Name()) {
			return nil
		}

		source := filepath.Join(dir, filepath.FromSlash(path))
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			log.Warn(log.CatRegistry, "Skipping unreadable user manifest", "path", source, "error", err.Error())
			return nil
		}

		m, err := ParseManifest(source, content)
		if err != nil {
			// Log warning but don't fail - user may have partial/invalid manifests
			log.Warn(log.CatRegistry, "Skipping invalid user manifest", "path", source, "error", err.Error())
			return nil
		}
		manifests = append(manifests, m)
		return nil
	})
	if err != nil {
		log.Warn(log.CatRegistry, "Scanning user manifests", "dir", dir, "error", err.Error())
	}

	return manifests
}
