package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// maxDots is the longest quiz drawn as one dot per question; longer ones
// get a bar.
const maxDots = 20

// Progress shows how far a learner is through a fixed run of questions.
type Progress struct {
	Label string
	Done  int // questions answered
	Total int
	Width int
}

// NewProgress creates a progress indicator.
func NewProgress(label string, done, total, width int) Progress {
	return Progress{Label: label, Done: done, Total: total, Width: width}
}

// View renders the label followed by a dot per question, or a bar when
// the quiz is long or the width is tight.
func (p Progress) View() string {
	label := ""
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.Total <= 0 {
		return strings.TrimRight(label, " ")
	}

	done := min(max(p.Done, 0), p.Total)
	room := p.Width - lipgloss.Width(label)

	if p.Total <= maxDots && room >= p.Total*2 {
		var b strings.Builder
		for i := range p.Total {
			if i > 0 {
				b.WriteString(" ")
			}
			if i < done {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("●"))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("○"))
			}
		}
		return label + b.String()
	}

	bar := max(room, 4)
	filled := bar * done / p.Total
	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", bar-filled))
}
