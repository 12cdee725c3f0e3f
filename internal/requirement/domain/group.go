package requirement

import "errors"

// Group errors
var (
	ErrEmptyGroupID    = errors.New("group id cannot be empty")
	ErrEmptyGroupLabel = errors.New("group label cannot be empty")
)

// Group clusters related requirements for presentation. It owns nothing;
// requirements reference groups by id.
type Group struct {
	id          string
	label       string
	description string
	weight      int
}

// GroupOption configures optional Group fields.
type GroupOption func(*Group)

// WithGroupDescription sets the group's help text.
func WithGroupDescription(d string) GroupOption {
	return func(g *Group) {
		g.description = d
	}
}

// WithGroupWeight sets the sort weight. Lower weights are listed first.
func WithGroupWeight(w int) GroupOption {
	return func(g *Group) {
		g.weight = w
	}
}

// NewGroup creates a new Group with validation.
func NewGroup(id, label string, opts ...GroupOption) (*Group, error) {
	if id == "" {
		return nil, ErrEmptyGroupID
	}
	if label == "" {
		return nil, ErrEmptyGroupLabel
	}
	g := &Group{id: id, label: label}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// ID returns the group's unique identifier.
func (g *Group) ID() string {
	return g.id
}

// Label returns the display label.
func (g *Group) Label() string {
	return g.label
}

// Description returns the help text, which may be empty.
func (g *Group) Description() string {
	return g.description
}

// Weight returns the sort weight.
func (g *Group) Weight() int {
	return g.weight
}
