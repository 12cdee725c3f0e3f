package presentation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/zjrosen/requisite/internal/state"
)

// Format selects how results are written.
type Format string

const (
	FormatText     Format = "text"
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// DefaultWidth is used when no width is configured.
const DefaultWidth = 80

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format name. An empty name is FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON, FormatMarkdown:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithFormat sets the output format.
func WithFormat(f Format) Option {
	return func(fm *Formatter) {
		fm.format = f
	}
}

// WithWidth sets the wrap width. Values <= 0 use DefaultWidth.
func WithWidth(w int) Option {
	return func(fm *Formatter) {
		if w > 0 {
			fm.width = w
		}
	}
}

// WithMarkdownStyle sets the glamour style used for markdown output.
func WithMarkdownStyle(style string) Option {
	return func(fm *Formatter) {
		fm.markdownStyle = style
	}
}

// Formatter handles output formatting
type Formatter struct {
	writer        io.Writer
	format        Format
	width         int
	markdownStyle string
	styles        palette
}

// NewFormatter creates a new formatter. The default format is text.
func NewFormatter(writer io.Writer, opts ...Option) *Formatter {
	f := &Formatter{
		writer: writer,
		format: FormatText,
		width:  DefaultWidth,
		styles: newPalette(writer),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format returns the configured output format.
func (f *Formatter) Format() Format {
	return f.format
}

// FormatJSON writes v as indented JSON regardless of the configured format.
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatReport writes an evaluated checklist.
func (f *Formatter) FormatReport(rep ReportDTO) error {
	switch f.format {
	case FormatJSON:
		return f.FormatJSON(rep)
	case FormatTable:
		return f.writeString(reportTable(rep))
	case FormatMarkdown:
		return f.writeMarkdown(reportMarkdown(rep))
	default:
		return f.writeString(f.reportText(rep))
	}
}

// FormatRequirement writes one requirement and, when it has one, its form.
func (f *Formatter) FormatRequirement(req RequirementDTO, form *FormDTO) error {
	switch f.format {
	case FormatJSON:
		return f.FormatJSON(struct {
			Requirement RequirementDTO `json:"requirement"`
			Form        *FormDTO       `json:"form,omitempty"`
		}{req, form})
	case FormatTable:
		return f.writeString(requirementTable(req, form))
	case FormatMarkdown:
		return f.writeMarkdown(requirementMarkdown(req, form))
	default:
		return f.writeString(f.requirementText(req, form))
	}
}

// FormatGroups writes the group list.
func (f *Formatter) FormatGroups(groups []GroupDTO) error {
	switch f.format {
	case FormatJSON:
		return f.FormatJSON(groups)
	case FormatMarkdown:
		return f.writeMarkdown(groupsMarkdown(groups))
	case FormatTable:
		return f.writeString(groupsTable(groups))
	default:
		return f.writeString(f.groupsText(groups))
	}
}

// FormatHistory writes accepted submissions.
func (f *Formatter) FormatHistory(subs []state.Submission) error {
	if subs == nil {
		subs = []state.Submission{}
	}
	switch f.format {
	case FormatJSON:
		return f.FormatJSON(HistoryDTO{Submissions: subs})
	case FormatText:
		return f.writeString(f.historyText(subs))
	default:
		return f.writeString(historyTable(subs))
	}
}

// FormatPreview writes a dry-run configuration as a per-key diff.
func (f *Formatter) FormatPreview(p PreviewDTO) error {
	if f.format == FormatJSON {
		return f.FormatJSON(p)
	}
	return f.writeString(f.previewText(p))
}

func (f *Formatter) writeString(s string) error {
	_, err := io.WriteString(f.writer, s)
	return err
}

func (f *Formatter) writeMarkdown(md string) error {
	r, err := NewMarkdownRenderer(f.width, f.markdownStyle)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return f.writeString(out)
}
