package presentation

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/requisite/internal/state"
)

// Indent for wrapped description lines under an item.
const bodyIndent = 4

func (f *Formatter) reportText(rep ReportDTO) string {
	var sb strings.Builder
	p := f.styles

	sb.WriteString(p.title.Render("Checklist"))
	fmt.Fprintf(&sb, "  %d/%d completed\n", rep.Summary.Completed, rep.Summary.Total)

	idWidth := 0
	for _, r := range rep.Requirements {
		idWidth = max(idWidth, runewidth.StringWidth(r.ID))
	}
	// marker, two spaces, id column, two spaces
	labelWidth := max(f.width-idWidth-6, 10)

	for _, sec := range sectionsByGroup(rep.Requirements) {
		sb.WriteString("\n")
		sb.WriteString(p.heading.Render(sec.label))
		sb.WriteString("\n")
		for _, r := range sec.reqs {
			glyph, style := p.stateMarker(r.State)
			sb.WriteString(style.Render(glyph))
			sb.WriteString("  ")
			sb.WriteString(p.id.Render(runewidth.FillRight(r.ID, idWidth)))
			sb.WriteString("  ")
			sb.WriteString(runewidth.Truncate(r.Label, labelWidth, "…"))
			sb.WriteString("\n")
			if len(r.WaitingOn) > 0 {
				note := "waiting on " + strings.Join(r.WaitingOn, ", ")
				sb.WriteString(p.muted.Render(f.body(note)))
				sb.WriteString("\n")
			}
			if r.State == "blocked" {
				sb.WriteString(p.muted.Render(f.body("cannot be resolved by configuration")))
				sb.WriteString("\n")
			}
		}
	}

	if len(rep.NotApplicable) > 0 {
		sb.WriteString("\n")
		sb.WriteString(p.muted.Render("Not applicable: " + strings.Join(rep.NotApplicable, ", ")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	switch {
	case rep.FullyResolved:
		sb.WriteString(p.completed.Render("All requirements are resolved."))
	case rep.Next != "":
		sb.WriteString("Next: ")
		sb.WriteString(p.actionable.Render(rep.Next))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (f *Formatter) requirementText(req RequirementDTO, form *FormDTO) string {
	var sb strings.Builder
	p := f.styles

	sb.WriteString(p.title.Render(req.Label))
	sb.WriteString("  ")
	sb.WriteString(p.id.Render(req.ID))
	sb.WriteString("\n")

	meta := []string{"severity: " + req.Severity}
	if req.State != "" {
		meta = append(meta, "state: "+req.State)
	}
	if req.GroupLabel != "" {
		meta = append(meta, "group: "+req.GroupLabel)
	}
	sb.WriteString(p.muted.Render(strings.Join(meta, "  ")))
	sb.WriteString("\n")

	if req.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(p.description.Render(f.wrap(strings.TrimSpace(req.Description), 0)))
		sb.WriteString("\n")
	}
	if len(req.DependsOn) > 0 {
		sb.WriteString("\nDepends on: ")
		sb.WriteString(strings.Join(req.DependsOn, ", "))
		sb.WriteString("\n")
	}
	if len(req.WaitingOn) > 0 {
		sb.WriteString("Waiting on: ")
		sb.WriteString(strings.Join(req.WaitingOn, ", "))
		sb.WriteString("\n")
	}

	if form != nil {
		sb.WriteString("\n")
		title := "Configuration"
		if form.ActionLabel != "" {
			title = form.ActionLabel
		}
		sb.WriteString(p.heading.Render(title))
		sb.WriteString("\n")
		for _, fd := range form.Fields {
			sb.WriteString(f.fieldText(fd))
		}
	}
	return sb.String()
}

func (f *Formatter) fieldText(fd FieldDTO) string {
	var sb strings.Builder
	p := f.styles

	line := fmt.Sprintf("  %s (%s)", fd.Key, fd.Type)
	if fd.Required {
		line += " *"
	}
	sb.WriteString(line)
	sb.WriteString("  ")
	sb.WriteString(fd.Label)
	sb.WriteString("\n")

	var details []string
	if fd.Current != "" {
		details = append(details, "current: "+fd.Current)
	}
	if fd.Default != "" {
		details = append(details, "default: "+fd.Default)
	}
	if len(fd.Options) > 0 {
		details = append(details, "options: "+strings.Join(fd.Options, ", "))
	}
	if len(details) > 0 {
		sb.WriteString(p.muted.Render(f.body(strings.Join(details, "; "))))
		sb.WriteString("\n")
	}
	if fd.Description != "" {
		sb.WriteString(p.description.Render(f.body(fd.Description)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (f *Formatter) groupsText(groups []GroupDTO) string {
	var sb strings.Builder
	p := f.styles
	for i, g := range groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.heading.Render(g.Label))
		sb.WriteString("  ")
		sb.WriteString(p.id.Render(g.ID))
		sb.WriteString("\n")
		if g.Description != "" {
			sb.WriteString(p.description.Render(f.body(g.Description)))
			sb.WriteString("\n")
		}
		if len(g.Requirements) > 0 {
			sb.WriteString(f.body(strings.Join(g.Requirements, ", ")))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (f *Formatter) historyText(subs []state.Submission) string {
	if len(subs) == 0 {
		return f.styles.muted.Render("No configurations recorded.") + "\n"
	}
	var sb strings.Builder
	for _, s := range subs {
		sb.WriteString(s.SubmittedAt.Format("2006-01-02 15:04:05"))
		sb.WriteString("  ")
		sb.WriteString(f.styles.title.Render(s.RequirementID))
		sb.WriteString("\n")
		for _, k := range sortedKeys(s.Values) {
			fmt.Fprintf(&sb, "    %s = %s\n", k, s.Values[k])
		}
	}
	return sb.String()
}

// body wraps text and indents it under an item line.
func (f *Formatter) body(text string) string {
	return f.wrap(text, bodyIndent)
}

func (f *Formatter) wrap(text string, by uint) string {
	wrapped := wordwrap.String(text, max(f.width-int(by), 20))
	if by == 0 {
		return wrapped
	}
	return indent.String(wrapped, by)
}
