package testutil

import (
	"context"

	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
)

// FieldData describes a form field to attach to a requirement.
type FieldData struct {
	Key      string
	Label    string
	Type     requirement.FieldType
	Required bool
	Options  []string
	Default  string
}

// Text creates a text FieldData.
func Text(key string, required bool) FieldData {
	return FieldData{Key: key, Label: key, Type: requirement.FieldTypeText, Required: required}
}

// Select creates a select FieldData.
func Select(key string, options ...string) FieldData {
	return FieldData{Key: key, Label: key, Type: requirement.FieldTypeSelect, Options: options}
}

// requirementData holds everything needed to build one Definition.
type requirementData struct {
	id          string
	group       string
	label       string
	description string
	severity    requirement.Severity
	deps        []string
	actionLabel string
	fields      []FieldData
	applicable  requirement.Predicate
	completed   requirement.Predicate
	resolvable  requirement.Predicate
}

// defaultRequirement returns requirementData with sensible defaults.
func defaultRequirement(id string) requirementData {
	return requirementData{
		id:       id,
		label:    id, // Default label is the ID
		severity: requirement.SeverityWarning,
	}
}

// RequirementOption configures a requirement during builder setup.
type RequirementOption func(*requirementData)

// Label sets the requirement label.
func Label(l string) RequirementOption {
	return func(r *requirementData) { r.label = l }
}

// Description sets the requirement description.
func Description(d string) RequirementOption {
	return func(r *requirementData) { r.description = d }
}

// InGroup places the requirement in a group registered with WithGroup.
func InGroup(id string) RequirementOption {
	return func(r *requirementData) { r.group = id }
}

// Severity sets the requirement severity.
func Severity(s requirement.Severity) RequirementOption {
	return func(r *requirementData) { r.severity = s }
}

// DependsOn adds prerequisite requirement ids.
func DependsOn(ids ...string) RequirementOption {
	return func(r *requirementData) { r.deps = append(r.deps, ids...) }
}

// ActionLabel sets the resolution action label.
func ActionLabel(l string) RequirementOption {
	return func(r *requirementData) { r.actionLabel = l }
}

// Fields attaches a configuration form.
func Fields(fields ...FieldData) RequirementOption {
	return func(r *requirementData) { r.fields = append(r.fields, fields...) }
}

// Applicable fixes the applicability answer.
func Applicable(v bool) RequirementOption {
	return func(r *requirementData) { r.applicable = requirement.Always(v) }
}

// Completed fixes the completion answer.
func Completed(v bool) RequirementOption {
	return func(r *requirementData) { r.completed = requirement.Always(v) }
}

// Resolvable fixes the resolvability answer.
func Resolvable(v bool) RequirementOption {
	return func(r *requirementData) { r.resolvable = requirement.Always(v) }
}

// WhenCapability makes the requirement applicable only while capability c is enabled.
func WhenCapability(c string) RequirementOption {
	return func(r *requirementData) {
		r.applicable = requirement.PredicateFunc(func(ctx context.Context, env requirement.Environment) (bool, error) {
			caps, err := env.Capabilities(ctx)
			if err != nil {
				return false, err
			}
			for _, have := range caps {
				if have == c {
					return true, nil
				}
			}
			return false, nil
		})
	}
}

// CompletedWhenSet makes the requirement completed once setting key exists.
func CompletedWhenSet(key string) RequirementOption {
	return func(r *requirementData) {
		r.completed = requirement.PredicateFunc(func(ctx context.Context, env requirement.Environment) (bool, error) {
			_, ok, err := env.Setting(ctx, key)
			return ok, err
		})
	}
}

// groupData holds data for a group to be registered.
type groupData struct {
	id          string
	label       string
	description string
	weight      int
}

// GroupOption configures a group during builder setup.
type GroupOption func(*groupData)

// GroupLabel sets the group label.
func GroupLabel(l string) GroupOption {
	return func(g *groupData) { g.label = l }
}

// GroupDescription sets the group description.
func GroupDescription(d string) GroupOption {
	return func(g *groupData) { g.description = d }
}

// Weight sets the group sort weight.
func Weight(w int) GroupOption {
	return func(g *groupData) { g.weight = w }
}
