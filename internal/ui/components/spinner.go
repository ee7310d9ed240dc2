package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerInterval is the delay between frames.
const SpinnerInterval = 100 * time.Millisecond

// SpinnerTickMsg advances every Spinner by one frame.
type SpinnerTickMsg time.Time

// SpinnerTick schedules the next frame. The app owns the single tick loop so
// replaced screens never leave extra loops running.
func SpinnerTick() tea.Cmd {
	return tea.Tick(SpinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// Spinner is a one-line activity indicator.
type Spinner struct {
	frame int
}

// Update advances on SpinnerTickMsg.
func (s Spinner) Update(msg tea.Msg) Spinner {
	if _, ok := msg.(SpinnerTickMsg); ok {
		s.frame = (s.frame + 1) % len(spinnerFrames)
	}
	return s
}

// View renders the current frame followed by label.
func (s Spinner) View(label string) string {
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinnerFrames[s.frame]) +
		" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
