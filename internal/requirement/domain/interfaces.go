package requirement

import "context"

// Requirement is a single checklist item.
//
// The three predicates are side-effect free and never fail: when the data needed
// to answer them is unavailable they return false.
type Requirement interface {
	ID() string
	// GroupID returns the owning group id, or "" when ungrouped.
	GroupID() string
	Label() string
	Description() string
	Severity() Severity
	// Dependencies returns the sorted ids of prerequisite requirements.
	Dependencies() []string
	// ActionLabel returns the label of the resolution action, if there is one.
	ActionLabel() (string, bool)

	IsApplicable(ctx context.Context) bool
	IsCompleted(ctx context.Context) bool
	IsResolvable(ctx context.Context) bool
}

// Configurable is implemented by requirements that can be resolved through a
// configuration step.
type Configurable interface {
	// Form describes the fields needed to resolve the requirement. Nil means the
	// requirement has no configuration step.
	Form() *Form
	// Configure validates the submitted values and commits them atomically.
	// Invalid input returns a *ValidationError and stores nothing.
	Configure(ctx context.Context, input Values) (ConfigurationResult, error)
}

// ConfigurationStep returns the requirement's configuration step if it has one.
func ConfigurationStep(r Requirement) (Configurable, bool) {
	c, ok := r.(Configurable)
	if !ok || c.Form() == nil {
		return nil, false
	}
	return c, true
}

// Environment is the read-only view of system state used by predicates.
type Environment interface {
	// Setting returns the value stored under key and whether it exists.
	Setting(ctx context.Context, key string) (string, bool, error)
	// Settings returns a copy of all stored settings.
	Settings(ctx context.Context) (map[string]string, error)
	// Capabilities returns the sorted names of enabled capabilities.
	Capabilities(ctx context.Context) ([]string, error)
}

// Recorder persists accepted configuration. Commit stores every value or none.
type Recorder interface {
	Commit(ctx context.Context, requirementID string, values map[string]string) error
}

// Predicate answers one boolean question about the environment.
type Predicate interface {
	Evaluate(ctx context.Context, env Environment) (bool, error)
}

// PredicateFunc adapts a function to the Predicate interface.
type PredicateFunc func(ctx context.Context, env Environment) (bool, error)

// Evaluate calls f(ctx, env).
func (f PredicateFunc) Evaluate(ctx context.Context, env Environment) (bool, error) {
	return f(ctx, env)
}

// Always returns a Predicate with a constant answer.
func Always(v bool) Predicate {
	return PredicateFunc(func(context.Context, Environment) (bool, error) {
		return v, nil
	})
}

// ErrorHandler receives predicate failures that were turned into false.
type ErrorHandler func(requirementID, check string, err error)

// RegistryProvider defines the read interface for requirement registries.
type RegistryProvider interface {
	Get(id string) (Requirement, error)
	List() []Requirement
	Len() int
	Group(id string) (*Group, bool)
	GroupOf(r Requirement) (*Group, bool)
	Groups() []*Group
	AllApplicable(ctx context.Context) ([]Requirement, error)
	IsFullyResolved(ctx context.Context) (bool, error)
	NextUnresolved(ctx context.Context) (Requirement, bool, error)
	Evaluate(ctx context.Context) (*Report, error)
	Validate() error
}

// Compile-time check that Registry implements RegistryProvider.
var _ RegistryProvider = (*Registry)(nil)

// Compile-time checks that Definition is a configurable Requirement.
var (
	_ Requirement  = (*Definition)(nil)
	_ Configurable = (*Definition)(nil)
)

// emptyEnvironment is used when a Definition is built without an Environment.
type emptyEnvironment struct{}

func (emptyEnvironment) Setting(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (emptyEnvironment) Settings(context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func (emptyEnvironment) Capabilities(context.Context) ([]string, error) {
	return nil, nil
}
