package requirement

import (
	"fmt"
	"io/fs"
	"os"
	stdpath "path"
	"path/filepath"
	"strings"

	"github.com/zjrosen/requisite/internal/log"
)

// isManifestFile reports whether name looks like a manifest file.
func isManifestFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// LoadManifests loads every *.yaml and *.yml manifest under root in fsys.
// Files are visited in lexical order. Any invalid file fails the whole load.
func LoadManifests(fsys fs.FS, root, sourcePrefix string) ([]*Manifest, error) {
	var manifests []*Manifest

	// Use path (not filepath) since fs.FS always uses forward slashes
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isManifestFile(d.Name()) {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		m, err := ParseManifest(sourcePrefix+stdpath.Clean(path), content)
		if err != nil {
			return err
		}
		manifests = append(manifests, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan manifests: %w", err)
	}

	if len(manifests) == 0 {
		return nil, fmt.Errorf("%w in %s%s", ErrNoManifests, sourcePrefix, root)
	}

	log.Debug(log.CatRegistry, "Loaded manifests", "root", sourcePrefix+root, "count", len(manifests))
	return manifests, nil
}

// LoadManifestPath loads an explicitly named manifest file or directory.
// Every error is returned.
func LoadManifestPath(path string) ([]*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("manifest path: %w", err)
	}

	if info.IsDir() {
		return LoadManifests(os.DirFS(path), ".", filepath.Clean(path)+string(filepath.Separator))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := ParseManifest(filepath.Clean(path), content)
	if err != nil {
		return nil, err
	}
	return []*Manifest{m}, nil
}
