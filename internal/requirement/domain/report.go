package requirement

import "context"

// State classifies an applicable requirement for presentation.
type State string

const (
	// StateCompleted means the requirement's condition holds.
	StateCompleted State = "completed"
	// StateActionable means the requirement can be resolved now.
	StateActionable State = "actionable"
	// StateWaiting means the requirement is resolvable once its dependencies complete.
	StateWaiting State = "waiting"
	// StateBlocked means the requirement is unmet and cannot be resolved.
	StateBlocked State = "blocked"
)

// Status is the evaluated state of one applicable requirement.
type Status struct {
	Requirement Requirement
	State       State
	Resolvable  bool
	// WaitingOn lists applicable dependencies that are not completed.
	WaitingOn []string
}

// Summary counts statuses by state.
type Summary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Actionable int `json:"actionable"`
	Waiting    int `json:"waiting"`
	Blocked    int `json:"blocked"`
}

// Report is one consistent evaluation of a registry.
type Report struct {
	// Statuses are in dependency order.
	Statuses []Status
	// NotApplicable lists ids of requirements excluded from the checklist.
	NotApplicable []string
	Summary       Summary
	FullyResolved bool
	// Next is the id of the first unresolved requirement, or "".
	Next string
}

// Status returns the status of the requirement with the given id.
func (rep *Report) Status(id string) (Status, bool) {
	for _, s := range rep.Statuses {
		if s.Requirement.ID() == id {
			return s, true
		}
	}
	return Status{}, false
}

// Evaluate evaluates every requirement once and classifies it. Each predicate is
// called at most once per requirement so the report is internally consistent.
func (r *Registry) Evaluate(ctx context.Context) (*Report, error) {
	all := r.List()

	rep := &Report{}
	applicable := make([]Requirement, 0, len(all))
	for _, req := range all {
		if req.IsApplicable(ctx) {
			applicable = append(applicable, req)
		} else {
			rep.NotApplicable = append(rep.NotApplicable, req.ID())
		}
	}

	ordered, err := topoOrder(applicable)
	if err != nil {
		return nil, err
	}

	completed := make(map[string]bool, len(ordered))
	for _, req := range ordered {
		completed[req.ID()] = req.IsCompleted(ctx)
	}

	rep.Statuses = make([]Status, 0, len(ordered))
	for _, req := range ordered {
		st := Status{Requirement: req, Resolvable: req.IsResolvable(ctx)}
		for _, dep := range req.Dependencies() {
			if done, ok := completed[dep]; ok && !done {
				st.WaitingOn = append(st.WaitingOn, dep)
			}
		}

		switch {
		case completed[req.ID()]:
			st.State = StateCompleted
			rep.Summary.Completed++
		case !st.Resolvable:
			st.State = StateBlocked
			rep.Summary.Blocked++
		case len(st.WaitingOn) > 0:
			st.State = StateWaiting
			rep.Summary.Waiting++
		default:
			st.State = StateActionable
			rep.Summary.Actionable++
		}

		if st.State != StateCompleted && rep.Next == "" {
			rep.Next = req.ID()
		}
		rep.Statuses = append(rep.Statuses, st)
	}

	rep.Summary.Total = len(rep.Statuses)
	rep.FullyResolved = rep.Summary.Completed == rep.Summary.Total
	return rep, nil
}
