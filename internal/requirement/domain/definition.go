package requirement

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Builder errors
var (
	ErrEmptyID        = errors.New("requirement id cannot be empty")
	ErrInvalidID      = errors.New("requirement id cannot contain whitespace")
	ErrEmptyLabel     = errors.New("requirement label cannot be empty")
	ErrSelfDependency = errors.New("requirement cannot depend on itself")
	ErrNilRecorder    = errors.New("requirement with a form requires a recorder")
)

// Predicate names passed to ErrorHandler.
const (
	CheckApplicable = "applicable"
	CheckCompleted  = "completed"
	CheckResolvable = "resolvable"
)

// Definition is a data-driven Requirement. Unset predicates fall back to:
//   - applicable: true
//   - completed: every required form field has a non-empty setting, or when no
//     field is required, at least one field does; false without a form
//   - resolvable: true iff the requirement has a form
type Definition struct {
	id          string
	groupID     string
	label       string
	description string
	severity    Severity
	deps        []string
	actionLabel string
	form        *Form

	applicable Predicate
	completed  Predicate
	resolvable Predicate

	env      Environment
	recorder Recorder
	onError  ErrorHandler

	// mu keeps IsCompleted from observing a partially applied Configure.
	mu sync.RWMutex
}

// Builder provides a fluent API for creating definitions.
type Builder struct {
	id          string
	groupID     string
	label       string
	description string
	severity    Severity
	deps        []string
	actionLabel string
	form        *Form
	applicable  Predicate
	completed   Predicate
	resolvable  Predicate
	env         Environment
	recorder    Recorder
	onError     ErrorHandler
}

// NewBuilder creates a new definition builder.
func NewBuilder(id string) *Builder {
	return &Builder{id: id, severity: SeverityInfo}
}

// Group sets the owning group id.
func (b *Builder) Group(id string) *Builder {
	b.groupID = id
	return b
}

// Label sets the display label.
func (b *Builder) Label(l string) *Builder {
	b.label = l
	return b
}

// Description sets the display description.
func (b *Builder) Description(d string) *Builder {
	b.description = d
	return b
}

// Severity sets the severity.
func (b *Builder) Severity(s Severity) *Builder {
	b.severity = s
	return b
}

// DependsOn adds prerequisite requirement ids.
func (b *Builder) DependsOn(ids ...string) *Builder {
	b.deps = append(b.deps, ids...)
	return b
}

// ActionLabel sets the label of the resolution action.
func (b *Builder) ActionLabel(l string) *Builder {
	b.actionLabel = l
	return b
}

// Form sets the configuration step.
func (b *Builder) Form(f *Form) *Builder {
	b.form = f
	return b
}

// Applicable sets the applicability predicate.
func (b *Builder) Applicable(p Predicate) *Builder {
	b.applicable = p
	return b
}

// Completed sets the completion predicate.
func (b *Builder) Completed(p Predicate) *Builder {
	b.completed = p
	return b
}

// Resolvable sets the resolvability predicate.
func (b *Builder) Resolvable(p Predicate) *Builder {
	b.resolvable = p
	return b
}

// Environment sets the state the predicates read.
func (b *Builder) Environment(env Environment) *Builder {
	b.env = env
	return b
}

// Recorder sets where accepted configuration is committed.
func (b *Builder) Recorder(r Recorder) *Builder {
	b.recorder = r
	return b
}

// OnError sets the handler for predicate failures.
func (b *Builder) OnError(h ErrorHandler) *Builder {
	b.onError = h
	return b
}

// Build creates the definition, validating required fields.
func (b *Builder) Build() (*Definition, error) {
	if b.id == "" {
		return nil, ErrEmptyID
	}
	if strings.ContainsFunc(b.id, isSpace) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, b.id)
	}
	if b.label == "" {
		return nil, fmt.Errorf("%s: %w", b.id, ErrEmptyLabel)
	}
	if !b.severity.IsValid() {
		return nil, fmt.Errorf("%s: %w: %q", b.id, ErrInvalidSeverity, b.severity)
	}
	if slices.Contains(b.deps, b.id) {
		return nil, fmt.Errorf("%w: %s", ErrSelfDependency, b.id)
	}
	if b.form != nil && b.recorder == nil {
		return nil, fmt.Errorf("%s: %w", b.id, ErrNilRecorder)
	}

	deps := slices.Clone(b.deps)
	slices.Sort(deps)
	deps = slices.Compact(deps)

	env := b.env
	if env == nil {
		env = emptyEnvironment{}
	}

	return &Definition{
		id:          b.id,
		groupID:     b.groupID,
		label:       b.label,
		description: b.description,
		severity:    b.severity,
		deps:        deps,
		actionLabel: b.actionLabel,
		form:        b.form,
		applicable:  b.applicable,
		completed:   b.completed,
		resolvable:  b.resolvable,
		env:         env,
		recorder:    b.recorder,
		onError:     b.onError,
	}, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// ID returns the requirement id.
func (d *Definition) ID() string { return d.id }

// GroupID returns the group id, or "" when ungrouped.
func (d *Definition) GroupID() string { return d.groupID }

// Label returns the display label.
func (d *Definition) Label() string { return d.label }

// Description returns the display description.
func (d *Definition) Description() string { return d.description }

// Severity returns the severity.
func (d *Definition) Severity() Severity { return d.severity }

// Dependencies returns the sorted prerequisite ids.
func (d *Definition) Dependencies() []string { return slices.Clone(d.deps) }

// ActionLabel returns the action label and whether one is set.
func (d *Definition) ActionLabel() (string, bool) {
	return d.actionLabel, d.actionLabel != ""
}

// Form returns the configuration form, or nil.
func (d *Definition) Form() *Form { return d.form }

// IsApplicable reports whether the requirement is relevant at all.
func (d *Definition) IsApplicable(ctx context.Context) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.check(ctx, CheckApplicable, d.applicable, func(context.Context) (bool, error) {
		return true, nil
	})
}

// IsCompleted reports whether the requirement's condition currently holds.
func (d *Definition) IsCompleted(ctx context.Context) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.isCompletedLocked(ctx)
}

// IsResolvable reports whether configuration can bring the requirement to completion.
func (d *Definition) IsResolvable(ctx context.Context) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.check(ctx, CheckResolvable, d.resolvable, func(context.Context) (bool, error) {
		return d.form != nil, nil
	})
}

// Configure validates input against the form and commits it through the recorder.
func (d *Definition) Configure(ctx context.Context, input Values) (ConfigurationResult, error) {
	if d.form == nil {
		return ConfigurationResult{}, fmt.Errorf("%w: %s", ErrNoConfigurationStep, d.id)
	}

	values, fieldErrs := d.form.Validate(input)
	if len(fieldErrs) > 0 {
		return ConfigurationResult{}, &ValidationError{RequirementID: d.id, Fields: fieldErrs}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.recorder.Commit(ctx, d.id, values); err != nil {
		return ConfigurationResult{}, fmt.Errorf("commit configuration for %s: %w", d.id, err)
	}

	return ConfigurationResult{
		RequirementID: d.id,
		Values:        values,
		Completed:     d.isCompletedLocked(ctx),
	}, nil
}

func (d *Definition) isCompletedLocked(ctx context.Context) bool {
	return d.check(ctx, CheckCompleted, d.completed, d.formCompleted)
}

// formCompleted is the default completion check over the form's setting keys.
func (d *Definition) formCompleted(ctx context.Context) (bool, error) {
	if d.form == nil {
		return false, nil
	}
	keys := d.form.RequiredKeys()
	all := len(keys) > 0
	if !all {
		keys = d.form.Keys()
	}
	for _, key := range keys {
		v, ok, err := d.env.Setting(ctx, key)
		if err != nil {
			return false, fmt.Errorf("read setting %s: %w", key, err)
		}
		set := ok && strings.TrimSpace(v) != ""
		if all && !set {
			return false, nil
		}
		if !all && set {
			return true, nil
		}
	}
	return all, nil
}

// check evaluates p, or fallback when p is nil. Errors and panics become false.
func (d *Definition) check(ctx context.Context, name string, p Predicate, fallback func(context.Context) (bool, error)) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.report(name, fmt.Errorf("predicate panicked: %v", r))
			ok = false
		}
	}()

	var err error
	if p != nil {
		ok, err = p.Evaluate(ctx, d.env)
	} else {
		ok, err = fallback(ctx)
	}
	if err != nil {
		d.report(name, err)
		return false
	}
	return ok
}

func (d *Definition) report(name string, err error) {
	if d.onError != nil {
		d.onError(d.id, name, err)
	}
}
