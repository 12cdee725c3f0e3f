package requirement

import (
	"testing"
	"testing/fstest"
)

// mapFS wraps manifest contents keyed by file name under checklists/.
func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys["checklists/"+name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func mustParse(t *testing.T, content string) *Manifest {
	t.Helper()
	m, err := ParseManifest("test.yaml", []byte(content))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	return m
}

const basicManifest = `
version: "1.0"
groups:
  - id: basics
    label: Basics
requirements:
  - id: name
    group: basics
    label: Name the site
    form:
      - key: site.name
        label: Name
        required: true
  - id: url
    group: basics
    label: Set the URL
    depends_on: [name]
    form:
      - key: site.url
        label: URL
        type: url
        required: true
  - id: search
    label: Configure search
    applicable: '"search" in capabilities'
    completed: '"search.backend" in settings'
    form:
      - key: search.backend
        label: Backend
        type: select
        options: [database, solr]
`
