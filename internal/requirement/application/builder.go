package requirement

import (
	"fmt"

	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
)

// BuildOption configures how manifests are turned into a registry.
type BuildOption func(*buildConfig)

type buildConfig struct {
	onError requirement.ErrorHandler
}

// WithErrorHandler sets the handler for predicate failures on every built requirement.
func WithErrorHandler(h requirement.ErrorHandler) BuildOption {
	return func(c *buildConfig) {
		c.onError = h
	}
}

// Build converts the manifest into a registry of its own.
func (m *Manifest) Build(env requirement.Environment, recorder requirement.Recorder, opts ...BuildOption) (*requirement.Registry, error) {
	return BuildRegistry([]*Manifest{m}, env, recorder, opts...)
}

// BuildRegistry converts manifests into one registry. Groups from every manifest
// are registered before any requirement, so a requirement may use a group
// defined in another manifest. The resulting graph is validated.
func BuildRegistry(manifests []*Manifest, env requirement.Environment, recorder requirement.Recorder, opts ...BuildOption) (*requirement.Registry, error) {
	cfg := buildConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := requirement.NewRegistry()

	for _, m := range manifests {
		for _, def := range m.File.Groups {
			g, err := requirement.NewGroup(def.ID, def.Label,
				requirement.WithGroupDescription(def.Description),
				requirement.WithGroupWeight(def.Weight),
			)
			if err != nil {
				return nil, fmt.Errorf("%s: group %s: %w", m.Source, def.ID, err)
			}
			if err := reg.RegisterGroup(g); err != nil {
				return nil, fmt.Errorf("%s: %w", m.Source, err)
			}
		}
	}

	for _, m := range manifests {
		for _, def := range m.File.Requirements {
			d, err := buildDefinition(def, env, recorder, cfg)
			if err != nil {
				return nil, fmt.Errorf("%s: requirement %s: %w", m.Source, def.ID, err)
			}
			if err := reg.Register(d); err != nil {
				return nil, fmt.Errorf("%s: %w", m.Source, err)
			}
		}
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// buildDefinition converts a RequirementDef into a domain definition.
func buildDefinition(def RequirementDef, env requirement.Environment, recorder requirement.Recorder, cfg buildConfig) (*requirement.Definition, error) {
	severity, err := requirement.ParseSeverity(def.Severity)
	if err != nil {
		return nil, err
	}

	b := requirement.NewBuilder(def.ID).
		Group(def.Group).
		Label(def.Label).
		Description(def.Description).
		Severity(severity).
		DependsOn(def.DependsOn...).
		ActionLabel(def.ActionLabel).
		Environment(env).
		OnError(cfg.onError)

	for _, p := range []struct {
		expr string
		set  func(requirement.Predicate) *requirement.Builder
	}{
		{def.Applicable, b.Applicable},
		{def.Completed, b.Completed},
		{def.Resolvable, b.Resolvable},
	} {
		if p.expr == "" {
			continue
		}
		pred, err := CompilePredicate(p.expr)
		if err != nil {
			return nil, err
		}
		p.set(pred)
	}

	if len(def.Form) > 0 {
		form, err := buildForm(def.Form)
		if err != nil {
			return nil, err
		}
		b.Form(form).Recorder(recorder)
	}

	return b.Build()
}

func buildForm(defs []FieldDef) (*requirement.Form, error) {
	fields := make([]*requirement.Field, 0, len(defs))
	for _, def := range defs {
		field, err := buildField(def)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return requirement.NewForm(fields...)
}

// buildField converts a FieldDef into FieldOption functions.
func buildField(def FieldDef) (*requirement.Field, error) {
	fieldType := requirement.FieldType(def.Type)
	if def.Type == "" {
		fieldType = requirement.FieldTypeText
	}

	var opts []requirement.FieldOption
	if def.Description != "" {
		opts = append(opts, requirement.WithDescription(def.Description))
	}
	if def.Required {
		opts = append(opts, requirement.Required())
	}
	if def.Default != "" {
		opts = append(opts, requirement.WithDefault(def.Default))
	}
	if len(def.Options) > 0 {
		opts = append(opts, requirement.WithOptions(def.Options...))
	}
	if def.Pattern != "" {
		opts = append(opts, requirement.WithPattern(def.Pattern))
	}
	if def.Rule != "" {
		rule, err := CompileRule(def.Rule, def.Message)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", def.Key, err)
		}
		opts = append(opts, requirement.WithRule(rule))
	}

	return requirement.NewField(def.Key, def.Label, fieldType, opts...)
}
