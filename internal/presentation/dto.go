package presentation

import (
	"sort"

	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
	"github.com/zjrosen/requisite/internal/state"
)

// StateNotApplicable marks a requirement that is excluded from the checklist.
const StateNotApplicable = "not_applicable"

// ReportDTO is one evaluated checklist for presentation.
type ReportDTO struct {
	FullyResolved bool                `json:"fully_resolved"`
	Next          string              `json:"next,omitempty"`
	Summary       requirement.Summary `json:"summary"`
	Requirements  []RequirementDTO    `json:"requirements"`
	NotApplicable []string            `json:"not_applicable"`
}

// RequirementDTO represents an evaluated requirement.
type RequirementDTO struct {
	ID           string   `json:"id"`
	Group        string   `json:"group,omitempty"`
	GroupLabel   string   `json:"group_label,omitempty"`
	Label        string   `json:"label"`
	Description  string   `json:"description,omitempty"`
	Severity     string   `json:"severity"`
	State        string   `json:"state"`
	Resolvable   bool     `json:"resolvable"`
	Configurable bool     `json:"configurable"`
	ActionLabel  string   `json:"action_label,omitempty"`
	DependsOn    []string `json:"depends_on"` // always present
	WaitingOn    []string `json:"waiting_on,omitempty"`
}

// GroupDTO represents a group and the ids of its requirements.
type GroupDTO struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Description  string   `json:"description,omitempty"`
	Weight       int      `json:"weight"`
	Requirements []string `json:"requirements"`
}

// FormDTO describes a configuration step.
type FormDTO struct {
	RequirementID string     `json:"requirement_id"`
	ActionLabel   string     `json:"action_label,omitempty"`
	Fields        []FieldDTO `json:"fields"`
}

// FieldDTO describes one form field and its stored value, if any.
type FieldDTO struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Default     string   `json:"default,omitempty"`
	Options     []string `json:"options,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	Current     string   `json:"current,omitempty"`
}

// PreviewDTO is the outcome of a dry-run configuration.
type PreviewDTO struct {
	RequirementID string                   `json:"requirement_id"`
	Valid         bool                     `json:"valid"`
	Changes       []ChangeDTO              `json:"changes"`
	Errors        []requirement.FieldError `json:"errors,omitempty"`
}

// ChangeDTO is one setting a configuration would write.
type ChangeDTO struct {
	Key      string `json:"key"`
	Current  string `json:"current"`
	Proposed string `json:"proposed"`
	Changed  bool   `json:"changed"`
}

// groupLookup is the subset of the registry needed to label requirements.
type groupLookup interface {
	GroupOf(r requirement.Requirement) (*requirement.Group, bool)
}

// FromDomainRequirement converts a requirement to a DTO without evaluated state.
func FromDomainRequirement(r requirement.Requirement, groups groupLookup) RequirementDTO {
	dto := RequirementDTO{
		ID:          r.ID(),
		Group:       r.GroupID(),
		Label:       r.Label(),
		Description: r.Description(),
		Severity:    r.Severity().String(),
		DependsOn:   r.Dependencies(),
	}
	if dto.DependsOn == nil {
		dto.DependsOn = []string{}
	}
	if g, ok := groups.GroupOf(r); ok {
		dto.GroupLabel = g.Label()
	}
	if label, ok := r.ActionLabel(); ok {
		dto.ActionLabel = label
	}
	_, dto.Configurable = requirement.ConfigurationStep(r)
	return dto
}

// FromDomainStatus converts an evaluated status to a DTO.
func FromDomainStatus(s requirement.Status, groups groupLookup) RequirementDTO {
	dto := FromDomainRequirement(s.Requirement, groups)
	dto.State = string(s.State)
	dto.Resolvable = s.Resolvable
	dto.WaitingOn = s.WaitingOn
	return dto
}

// FromDomainReport converts a report to a DTO.
func FromDomainReport(rep *requirement.Report, groups groupLookup) ReportDTO {
	reqs := make([]RequirementDTO, len(rep.Statuses))
	for i, s := range rep.Statuses {
		reqs[i] = FromDomainStatus(s, groups)
	}
	notApplicable := rep.NotApplicable
	if notApplicable == nil {
		notApplicable = []string{}
	}
	return ReportDTO{
		FullyResolved: rep.FullyResolved,
		Next:          rep.Next,
		Summary:       rep.Summary,
		Requirements:  reqs,
		NotApplicable: notApplicable,
	}
}

// FromDomainGroups converts groups to DTOs listing every registered
// requirement in each, sorted by id.
func FromDomainGroups(groups []*requirement.Group, reqs []requirement.Requirement) []GroupDTO {
	members := make(map[string][]string)
	for _, r := range reqs {
		members[r.GroupID()] = append(members[r.GroupID()], r.ID())
	}
	out := make([]GroupDTO, len(groups))
	for i, g := range groups {
		ids := members[g.ID()]
		sort.Strings(ids)
		if ids == nil {
			ids = []string{}
		}
		out[i] = GroupDTO{
			ID:           g.ID(),
			Label:        g.Label(),
			Description:  g.Description(),
			Weight:       g.Weight(),
			Requirements: ids,
		}
	}
	return out
}

// FromDomainForm converts a form to a DTO. current holds stored values by key.
func FromDomainForm(r requirement.Requirement, form *requirement.Form, current map[string]string) FormDTO {
	dto := FormDTO{RequirementID: r.ID(), Fields: make([]FieldDTO, 0, len(form.Fields()))}
	if label, ok := r.ActionLabel(); ok {
		dto.ActionLabel = label
	}
	for _, f := range form.Fields() {
		dto.Fields = append(dto.Fields, FieldDTO{
			Key:         f.Key(),
			Label:       f.Label(),
			Description: f.Description(),
			Type:        string(f.Type()),
			Required:    f.IsRequired(),
			Default:     f.DefaultValue(),
			Options:     f.Options(),
			Pattern:     f.Pattern(),
			Current:     current[f.Key()],
		})
	}
	return dto
}

// FromPreview builds a PreviewDTO. Changes cover every key in current or
// proposed, sorted.
func FromPreview(id string, current, proposed requirement.Values, errs []requirement.FieldError) PreviewDTO {
	dto := PreviewDTO{RequirementID: id, Valid: len(errs) == 0, Errors: errs, Changes: []ChangeDTO{}}
	if !dto.Valid {
		return dto
	}
	keys := make(map[string]struct{}, len(current)+len(proposed))
	for k := range current {
		keys[k] = struct{}{}
	}
	for k := range proposed {
		keys[k] = struct{}{}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	for _, k := range sorted {
		p, ok := proposed[k]
		if !ok {
			// Keys the submission leaves out keep their stored value.
			p = current[k]
		}
		dto.Changes = append(dto.Changes, ChangeDTO{
			Key:      k,
			Current:  current[k],
			Proposed: p,
			Changed:  current[k] != p,
		})
	}
	return dto
}

// HistoryDTO wraps accepted submissions for output.
type HistoryDTO struct {
	Submissions []state.Submission `json:"submissions"`
}
