// Package flags provides feature flag support for controlled feature rollout.
// Flags are read-only after initialization and provide safe defaults for unknown flags.
package flags

import (
	"maps"

	"github.com/zjrosen/requisite/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagStateCache wraps the state store in a read-through cache.
	FlagStateCache = "state-cache"

	// FlagManifestWatch reloads manifests when files change while serving.
	FlagManifestWatch = "manifest-watch"

	// FlagUserManifests loads checklists from the user manifest directory.
	FlagUserManifests = "user-manifests"
)

// Defaults returns the flag values written to a new config file.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagStateCache:    true,
		FlagManifestWatch: true,
		FlagUserManifests: true,
	}
}

// Registry holds feature flag state loaded from configuration.
// Flags are read-only after initialization.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map.
// If flags is nil, an empty registry is created (all flags disabled).
func New(flags map[string]bool) *Registry {
	if flags == nil {
		flags = make(map[string]bool)
	}
	r := &Registry{flags: maps.Clone(flags)}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Returns false for unknown flags and on a nil registry.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name, "result", false)
		return false
	}
	return value
}

// All returns a copy of all flags (for debugging/logging).
// Returns an empty map if the registry is nil.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}
