// Package manifests embeds the checklists shipped with requisite.
package manifests

import (
	"embed"
	"io/fs"
)

// Root is the directory inside FS that holds the manifests.
const Root = "checklists"

// builtin embeds every checklists/*.yaml manifest.
//
//go:embed checklists
var builtin embed.FS

// FS returns the embedded filesystem containing the built-in manifests.
func FS() fs.FS {
	return builtin
}
