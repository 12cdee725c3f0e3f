// Package testutil provides fluent fixture builders for checklist tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
	"github.com/zjrosen/requisite/internal/state"
)

// Builder accumulates groups, requirements and state, then builds a registry
// backed by an in-memory store.
type Builder struct {
	t        *testing.T
	store    state.Store
	groups   []groupData
	reqs     []requirementData
	settings map[string]string
	caps     []string
}

// NewBuilder creates a builder backed by a fresh MemoryStore.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t, store: state.NewMemoryStore(), settings: make(map[string]string)}
}

// WithStore replaces the backing store.
func (b *Builder) WithStore(s state.Store) *Builder {
	b.store = s
	return b
}

// WithGroup adds a group with optional configuration.
func (b *Builder) WithGroup(id string, opts ...GroupOption) *Builder {
	g := groupData{id: id, label: id}
	for _, opt := range opts {
		opt(&g)
	}
	b.groups = append(b.groups, g)
	return b
}

// WithRequirement adds a requirement with optional configuration.
func (b *Builder) WithRequirement(id string, opts ...RequirementOption) *Builder {
	r := defaultRequirement(id)
	for _, opt := range opts {
		opt(&r)
	}
	b.reqs = append(b.reqs, r)
	return b
}

// WithSetting stores a setting before the registry is returned.
func (b *Builder) WithSetting(key, value string) *Builder {
	b.settings[key] = value
	return b
}

// WithCapability enables a capability before the registry is returned.
func (b *Builder) WithCapability(name string) *Builder {
	b.caps = append(b.caps, name)
	return b
}

// Build seeds the store and registers everything in order: groups, then
// requirements. The registry is validated before it is returned.
func (b *Builder) Build() (*requirement.Registry, state.Store) {
	b.t.Helper()
	ctx := context.Background()

	for k, v := range b.settings {
		require.NoError(b.t, b.store.SetSetting(ctx, k, v))
	}
	require.NoError(b.t, state.Seed(ctx, b.store, b.caps))

	reg := requirement.NewRegistry()
	for _, g := range b.groups {
		group, err := requirement.NewGroup(g.id, g.label,
			requirement.WithGroupDescription(g.description),
			requirement.WithGroupWeight(g.weight))
		require.NoError(b.t, err)
		require.NoError(b.t, reg.RegisterGroup(group))
	}
	for _, r := range b.reqs {
		require.NoError(b.t, reg.Register(b.buildRequirement(r)))
	}
	require.NoError(b.t, reg.Validate())
	return reg, b.store
}

func (b *Builder) buildRequirement(r requirementData) *requirement.Definition {
	b.t.Helper()
	builder := requirement.NewBuilder(r.id).
		Label(r.label).
		Description(r.description).
		Group(r.group).
		Severity(r.severity).
		DependsOn(r.deps...).
		Environment(b.store).
		Recorder(b.store)
	if r.actionLabel != "" {
		builder.ActionLabel(r.actionLabel)
	}
	if r.applicable != nil {
		builder.Applicable(r.applicable)
	}
	if r.completed != nil {
		builder.Completed(r.completed)
	}
	if r.resolvable != nil {
		builder.Resolvable(r.resolvable)
	}
	if len(r.fields) > 0 {
		fields := make([]*requirement.Field, 0, len(r.fields))
		for _, fd := range r.fields {
			opts := []requirement.FieldOption{}
			if fd.Required {
				opts = append(opts, requirement.Required())
			}
			if len(fd.Options) > 0 {
				opts = append(opts, requirement.WithOptions(fd.Options...))
			}
			if fd.Default != "" {
				opts = append(opts, requirement.WithDefault(fd.Default))
			}
			f, err := requirement.NewField(fd.Key, fd.Label, fd.Type, opts...)
			require.NoError(b.t, err)
			fields = append(fields, f)
		}
		form, err := requirement.NewForm(fields...)
		require.NoError(b.t, err)
		builder.Form(form)
	}

	def, err := builder.Build()
	require.NoError(b.t, err)
	return def
}
