package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// MarkdownRenderer wraps glamour with the checklist's configuration.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a renderer with the given width and style.
// style is a glamour standard style name; empty means "dark". A fixed style
// is used instead of WithAutoStyle so rendering never queries the terminal.
func NewMarkdownRenderer(width int, style string) (*MarkdownRenderer, error) {
	if style == "" {
		style = "dark"
	}
	if width <= 0 {
		width = DefaultWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *MarkdownRenderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *MarkdownRenderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// groupSection is a run of requirements sharing a group, in report order.
type groupSection struct {
	label string
	reqs  []RequirementDTO
}

// sectionsByGroup groups requirements by group label keeping first-seen order.
// Ungrouped requirements are collected under "Other" at the end.
func sectionsByGroup(reqs []RequirementDTO) []groupSection {
	var sections []groupSection
	index := make(map[string]int)
	var other []RequirementDTO
	for _, r := range reqs {
		if r.Group == "" {
			other = append(other, r)
			continue
		}
		label := r.GroupLabel
		if label == "" {
			label = r.Group
		}
		i, ok := index[r.Group]
		if !ok {
			i = len(sections)
			index[r.Group] = i
			sections = append(sections, groupSection{label: label})
		}
		sections[i].reqs = append(sections[i].reqs, r)
	}
	if len(other) > 0 {
		sections = append(sections, groupSection{label: "Other", reqs: other})
	}
	return sections
}

func reportMarkdown(rep ReportDTO) string {
	var sb strings.Builder
	sb.WriteString("# Checklist\n\n")
	fmt.Fprintf(&sb, "**%d of %d completed.**", rep.Summary.Completed, rep.Summary.Total)
	if rep.Next != "" {
		fmt.Fprintf(&sb, " Next: `%s`", rep.Next)
	}
	sb.WriteString("\n\n")

	for _, sec := range sectionsByGroup(rep.Requirements) {
		fmt.Fprintf(&sb, "## %s\n\n", sec.label)
		for _, r := range sec.reqs {
			box := " "
			if r.State == "completed" {
				box = "x"
			}
			fmt.Fprintf(&sb, "- [%s] **%s** (`%s`)", box, r.Label, r.ID)
			if r.State != "completed" {
				fmt.Fprintf(&sb, " _%s_", r.State)
			}
			if len(r.WaitingOn) > 0 {
				fmt.Fprintf(&sb, ", waiting on %s", codeList(r.WaitingOn))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(rep.NotApplicable) > 0 {
		fmt.Fprintf(&sb, "Not applicable: %s\n", codeList(rep.NotApplicable))
	}
	return sb.String()
}

func requirementMarkdown(req RequirementDTO, form *FormDTO) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", req.Label)
	fmt.Fprintf(&sb, "`%s` · %s", req.ID, req.Severity)
	if req.State != "" {
		fmt.Fprintf(&sb, " · %s", req.State)
	}
	sb.WriteString("\n\n")
	if req.Description != "" {
		sb.WriteString(strings.TrimSpace(req.Description))
		sb.WriteString("\n\n")
	}
	if len(req.DependsOn) > 0 {
		fmt.Fprintf(&sb, "Depends on %s.\n\n", codeList(req.DependsOn))
	}
	if form != nil {
		title := "Configuration"
		if form.ActionLabel != "" {
			title = form.ActionLabel
		}
		fmt.Fprintf(&sb, "## %s\n\n", title)
		for _, fd := range form.Fields {
			fmt.Fprintf(&sb, "- **%s** (`%s`, %s)", fd.Label, fd.Key, fd.Type)
			if fd.Required {
				sb.WriteString(" required")
			}
			if fd.Current != "" {
				fmt.Fprintf(&sb, ": `%s`", fd.Current)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func groupsMarkdown(groups []GroupDTO) string {
	var sb strings.Builder
	sb.WriteString("# Groups\n\n")
	for _, g := range groups {
		fmt.Fprintf(&sb, "## %s\n\n", g.Label)
		if g.Description != "" {
			sb.WriteString(g.Description)
			sb.WriteString("\n\n")
		}
		if len(g.Requirements) > 0 {
			fmt.Fprintf(&sb, "%s\n\n", codeList(g.Requirements))
		}
	}
	return sb.String()
}

func codeList(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "`" + id + "`"
	}
	return strings.Join(quoted, ", ")
}
