package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// StartAction names the DoneMsg of the controller's Start call.
const StartAction = "start"

// WelcomeScreen is shown while the session restores the stored profile. If
// that fails the error stays on screen; there is nothing else to do.
type WelcomeScreen struct {
	spinner components.Spinner
	err     error
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen.
func New() *WelcomeScreen {
	return &WelcomeScreen{}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		w.spinner = w.spinner.Update(msg)
	case screen.DoneMsg:
		if msg.Action == StartAction && msg.Err != nil {
			w.err = msg.Err
		}
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	if w.err != nil {
		sections = append(sections,
			theme.Incorrect.Render("Could not load your profile:"),
			lipgloss.NewStyle().Foreground(theme.Text).Render(w.err.Error()),
			"",
			theme.Hint.Render("press ctrl+c to quit"),
		)
	} else {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Your English tutor in the terminal")
		sections = append(sections, tagline, "", w.spinner.View("Loading…"))
	}

	return components.Center(strings.Join(sections, "\n"), width, height)
}
