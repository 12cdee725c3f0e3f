package presentation

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// inlineDiff renders the change between two values on one line. Deleted text
// is wrapped in [- -] and inserted text in {+ +} so the diff stays readable
// without colors.
func (f *Formatter) inlineDiff(from, to string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString(f.styles.deleted.Render("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(f.styles.inserted.Render("{+" + d.Text + "+}"))
		}
	}
	return sb.String()
}

func (f *Formatter) previewText(p PreviewDTO) string {
	var sb strings.Builder
	s := f.styles

	sb.WriteString(s.title.Render("Dry run"))
	sb.WriteString("  ")
	sb.WriteString(s.id.Render(p.RequirementID))
	sb.WriteString("\n")

	if !p.Valid {
		for _, fe := range p.Errors {
			sb.WriteString(s.fieldError.Render("  ✗ " + fe.Field + " " + fe.Message))
			sb.WriteString("\n")
		}
		sb.WriteString("Nothing would be stored.\n")
		return sb.String()
	}

	changed := 0
	for _, c := range p.Changes {
		if !c.Changed {
			sb.WriteString(s.muted.Render("    " + c.Key + ": " + c.Proposed))
			sb.WriteString("\n")
			continue
		}
		changed++
		sb.WriteString("  ~ ")
		sb.WriteString(c.Key)
		sb.WriteString(": ")
		sb.WriteString(f.inlineDiff(c.Current, c.Proposed))
		sb.WriteString("\n")
	}
	if changed == 0 {
		sb.WriteString("No changes.\n")
	}
	return sb.String()
}
