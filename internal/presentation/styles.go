package presentation

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
)

var (
	successColor     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warningColor     = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	errorColor       = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	infoColor        = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	mutedColor       = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#696969"}
	descriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
)

// palette holds styles bound to one output's color profile, so writing to a
// pipe or buffer produces plain text.
type palette struct {
	title       lipgloss.Style
	heading     lipgloss.Style
	id          lipgloss.Style
	muted       lipgloss.Style
	description lipgloss.Style
	completed   lipgloss.Style
	actionable  lipgloss.Style
	waiting     lipgloss.Style
	blocked     lipgloss.Style
	inserted    lipgloss.Style
	deleted     lipgloss.Style
	fieldError  lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		r.SetColorProfile(termenv.Ascii)
	}
	return palette{
		title:       r.NewStyle().Bold(true),
		heading:     r.NewStyle().Bold(true).Foreground(infoColor),
		id:          r.NewStyle().Foreground(mutedColor),
		muted:       r.NewStyle().Foreground(mutedColor),
		description: r.NewStyle().Foreground(descriptionColor),
		completed:   r.NewStyle().Foreground(successColor),
		actionable:  r.NewStyle().Bold(true).Foreground(infoColor),
		waiting:     r.NewStyle().Foreground(warningColor),
		blocked:     r.NewStyle().Foreground(errorColor),
		inserted:    r.NewStyle().Foreground(successColor),
		deleted:     r.NewStyle().Foreground(errorColor).Strikethrough(true),
		fieldError:  r.NewStyle().Foreground(errorColor),
	}
}

// stateMarker returns the glyph and style for a requirement state.
func (p palette) stateMarker(state string) (string, lipgloss.Style) {
	switch state {
	case string(requirement.StateCompleted):
		return "✓", p.completed
	case string(requirement.StateActionable):
		return "●", p.actionable
	case string(requirement.StateWaiting):
		return "○", p.waiting
	case string(requirement.StateBlocked):
		return "✗", p.blocked
	default:
		return "-", p.muted
	}
}
