package requirement

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry holds requirements and groups. It is safe for concurrent use.
// Predicates are always evaluated outside the registry lock.
type Registry struct {
	mu           sync.RWMutex
	requirements map[string]Requirement
	groups       map[string]*Group
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		requirements: make(map[string]Requirement),
		groups:       make(map[string]*Group),
	}
}

// RegisterGroup adds a group.
func (r *Registry) RegisterGroup(g *Group) error {
	if g == nil {
		return ErrNilGroup
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.groups[g.ID()]; exists {
		return fmt.Errorf("%w: group %s", ErrDuplicateID, g.ID())
	}
	r.groups[g.ID()] = g
	return nil
}

// UnregisterGroup removes a group that no requirement references.
func (r *Registry) UnregisterGroup(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.groups[id]; !exists {
		return fmt.Errorf("%w: group %s", ErrNotFound, id)
	}
	for _, req := range r.requirements {
		if req.GroupID() == id {
			return fmt.Errorf("%w: %s used by %s", ErrGroupInUse, id, req.ID())
		}
	}
	delete(r.groups, id)
	return nil
}

// Register adds a requirement. A failed call leaves the registry unchanged.
func (r *Registry) Register(req Requirement) error {
	if req == nil {
		return ErrNilRequirement
	}
	id := req.ID()
	if id == "" {
		return ErrEmptyID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.requirements[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	if gid := req.GroupID(); gid != "" {
		if _, ok := r.groups[gid]; !ok {
			return fmt.Errorf("%w: %s references %s", ErrUnknownGroup, id, gid)
		}
	}
	r.requirements[id] = req
	return nil
}

// Unregister removes a requirement. Dependencies on it from other requirements
// are left in place and ignored by ordering until it is registered again.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.requirements[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.requirements, id)
	return nil
}

// Get returns the requirement with the given id.
func (r *Registry) Get(id string) (Requirement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requirements[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return req, nil
}

// List returns all requirements ordered by id.
func (r *Registry) List() []Requirement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

// Len returns the number of registered requirements.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.requirements)
}

// Group returns the group with the given id.
func (r *Registry) Group(id string) (*Group, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.groups[id]
	return g, ok
}

// GroupOf resolves the group a requirement belongs to. Ungrouped requirements
// return false.
func (r *Registry) GroupOf(req Requirement) (*Group, bool) {
	if req == nil || req.GroupID() == "" {
		return nil, false
	}
	return r.Group(req.GroupID())
}

// Groups returns all groups ordered by weight, then id.
func (r *Registry) Groups() []*Group {
	r.mu.RLock()
	groups := slices.Collect(maps.Values(r.groups))
	r.mu.RUnlock()

	slices.SortFunc(groups, func(a, b *Group) int {
		if c := cmp.Compare(a.Weight(), b.Weight()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	return groups
}

// AllApplicable returns the applicable requirements in dependency order. Each
// requirement appears after all of its applicable dependencies; unrelated
// requirements are ordered by id. A cycle among applicable requirements
// returns an error matching ErrCyclicDependency.
func (r *Registry) AllApplicable(ctx context.Context) ([]Requirement, error) {
	all := r.List()

	applicable := make([]Requirement, 0, len(all))
	for _, req := range all {
		if req.IsApplicable(ctx) {
			applicable = append(applicable, req)
		}
	}
	return topoOrder(applicable)
}

// IsFullyResolved reports whether every applicable requirement is completed.
func (r *Registry) IsFullyResolved(ctx context.Context) (bool, error) {
	_, found, err := r.NextUnresolved(ctx)
	if err != nil {
		return false, err
	}
	return !found, nil
}

// NextUnresolved returns the first applicable requirement, in dependency order,
// that is not completed.
func (r *Registry) NextUnresolved(ctx context.Context) (Requirement, bool, error) {
	ordered, err := r.AllApplicable(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, req := range ordered {
		if !req.IsCompleted(ctx) {
			return req, true, nil
		}
	}
	return nil, false, nil
}

// Validate checks the whole dependency graph regardless of applicability:
// every dependency must be registered and there must be no cycle.
func (r *Registry) Validate() error {
	all := r.List()

	known := make(map[string]bool, len(all))
	for _, req := range all {
		known[req.ID()] = true
	}
	for _, req := range all {
		for _, dep := range req.Dependencies() {
			if !known[dep] {
				return fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, req.ID(), dep)
			}
		}
	}

	_, err := topoOrder(all)
	return err
}

// snapshot returns the registered requirements sorted by id. Caller holds mu.
func (r *Registry) snapshot() []Requirement {
	out := slices.Collect(maps.Values(r.requirements))
	slices.SortFunc(out, func(a, b Requirement) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}
