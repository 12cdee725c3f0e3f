// Package requirement loads checklist manifests and exposes the checklist to
// presentation layers.
package requirement

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest errors
var (
	ErrNoManifests        = errors.New("no manifests found")
	ErrUnsupportedVersion = errors.New("unsupported manifest version")
	ErrSchema             = errors.New("manifest does not match schema")
)

// ManifestFile is the root structure of a manifest YAML file.
type ManifestFile struct {
	Version      string           `yaml:"version"`
	Groups       []GroupDef       `yaml:"groups"`
	Requirements []RequirementDef `yaml:"requirements"`
}

// GroupDef defines a presentation group.
type GroupDef struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Weight      int    `yaml:"weight"`
}

// RequirementDef defines a single requirement in YAML.
type RequirementDef struct {
	ID          string   `yaml:"id"`
	Group       string   `yaml:"group"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description"`  // Markdown
	Severity    string   `yaml:"severity"`     // info (default), warning, error
	DependsOn   []string `yaml:"depends_on"`   // Requirement ids that must complete first
	ActionLabel string   `yaml:"action_label"` // e.g. "Configure mail"

	// CEL expressions over `settings` and `capabilities`. Empty means default.
	Applicable string `yaml:"applicable"`
	Completed  string `yaml:"completed"`
	Resolvable string `yaml:"resolvable"`

	Form []FieldDef `yaml:"form"`
}

// FieldDef defines one configuration form field.
type FieldDef struct {
	Key         string   `yaml:"key"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"` // text (default), textarea, number, boolean, email, url, select, multi-select
	Required    bool     `yaml:"required"`
	Default     string   `yaml:"default"`
	Options     []string `yaml:"options"`
	Pattern     string   `yaml:"pattern"`
	Rule        string   `yaml:"rule"`    // CEL over `value` and `values`
	Message     string   `yaml:"message"` // Shown when Rule is false
}

// Manifest is a parsed and validated manifest file.
type Manifest struct {
	// Source names where the manifest came from, e.g. "builtin:site.yaml".
	Source string
	File   ManifestFile
}

// ParseManifest validates data against the manifest schema and version
// constraint, then decodes it.
func ParseManifest(source string, data []byte) (*Manifest, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var file ManifestFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	if err := checkVersion(file.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	return &Manifest{Source: source, File: file}, nil
}
