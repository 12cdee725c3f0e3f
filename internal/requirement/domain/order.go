package requirement

import (
	"fmt"
	"slices"
	"strings"
)

// CycleError reports a dependency cycle. Path starts and ends with the same id.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicDependency, strings.Join(e.Path, " -> "))
}

// Unwrap returns ErrCyclicDependency.
func (e *CycleError) Unwrap() error {
	return ErrCyclicDependency
}

// topoOrder sorts reqs with Kahn's algorithm. Dependencies outside reqs are
// ignored. Among requirements that are ready at the same time the smallest id
// goes first.
func topoOrder(reqs []Requirement) ([]Requirement, error) {
	byID := make(map[string]Requirement, len(reqs))
	inDegree := make(map[string]int, len(reqs))
	for _, req := range reqs {
		byID[req.ID()] = req
		inDegree[req.ID()] = 0
	}

	dependents := make(map[string][]string, len(reqs))
	for _, req := range reqs {
		for _, dep := range req.Dependencies() {
			if _, ok := byID[dep]; !ok {
				continue
			}
			inDegree[req.ID()]++
			dependents[dep] = append(dependents[dep], req.ID())
		}
	}

	var ready []string
	for id, n := range inDegree {
		if n == 0 {
			ready = append(ready, id)
		}
	}
	slices.Sort(ready)

	out := make([]Requirement, 0, len(reqs))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		out = append(out, byID[id])

		for _, next := range dependents[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				pos, _ := slices.BinarySearch(ready, next)
				ready = slices.Insert(ready, pos, next)
			}
		}
	}

	if len(out) != len(reqs) {
		remaining := make(map[string]Requirement)
		for id, n := range inDegree {
			if n > 0 {
				remaining[id] = byID[id]
			}
		}
		return nil, &CycleError{Path: findCycle(remaining)}
	}
	return out, nil
}

// findCycle returns one cycle among reqs, which must contain at least one.
// Traversal is in id order so the reported path is deterministic.
func findCycle(reqs map[string]Requirement) []string {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(reqs))
	var stack []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = visiting
		stack = append(stack, id)
		for _, dep := range reqs[id].Dependencies() {
			if _, ok := reqs[dep]; !ok {
				continue
			}
			switch state[dep] {
			case visiting:
				start := slices.Index(stack, dep)
				cycle = append(slices.Clone(stack[start:]), dep)
				return true
			case unvisited:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return false
	}

	ids := make([]string, 0, len(reqs))
	for id := range reqs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if state[id] == unvisited && visit(id) {
			return cycle
		}
	}
	return nil
}
