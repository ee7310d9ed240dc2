package settings

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// SettingsScreen is pushed over home. It toggles the theme and resets the
// profile after a confirmation.
type SettingsScreen struct {
	env        screen.Env
	menu       components.Menu
	confirming bool
	err        error
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a SettingsScreen.
func New(env screen.Env) *SettingsScreen {
	s := &SettingsScreen{env: env}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "theme", Action: s.toggleTheme},
		{Label: "reset", Action: func() tea.Cmd {
			s.confirming = true
			return nil
		}},
	})
	return s
}

func (s *SettingsScreen) toggleTheme() tea.Cmd {
	next := s.env.Ctrl.Session().Profile.Theme.Toggle()
	return s.env.Do("theme", func(ctx context.Context) ([]session.Effect, error) {
		return nil, s.env.Ctrl.SetTheme(ctx, next)
	})
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.DoneMsg:
		if msg.Action == "theme" || msg.Action == "reset" {
			s.err = msg.Err
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.confirming {
			switch msg.String() {
			case "y", "Y":
				s.confirming = false
				return s, s.env.Do("reset", func(ctx context.Context) ([]session.Effect, error) {
					return nil, s.env.Ctrl.ResetProfile(ctx)
				})
			case "n", "N", "esc":
				s.confirming = false
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SettingsScreen) View(width, height int) string {
	lang := s.env.Lang()
	cw := components.ContentWidth(width)
	p := s.env.Ctrl.Session().Profile

	s.menu.Items[0].Label = i18n.T(lang, i18n.ThemeLabel) + ": " + string(p.Theme)
	s.menu.Items[1].Label = i18n.T(lang, i18n.ResetProfile)

	sections := []string{
		theme.Title.Width(cw).Render(i18n.T(lang, i18n.TitleSettings)),
		"",
		lipgloss.NewStyle().Width(cw).Render(s.menu.View()),
	}
	if s.confirming {
		sections = append(sections, components.Banner(i18n.T(lang, i18n.ConfirmReset), cw))
	}
	if s.err != nil && !errors.Is(s.err, session.ErrStale) {
		sections = append(sections, components.Banner(screen.ErrorText(lang, s.err), cw))
	}
	return components.Center(strings.Join(sections, "\n"), width, height)
}

func (s *SettingsScreen) Title() string {
	return i18n.T(s.env.Lang(), i18n.TitleSettings)
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{{Key: "y", Description: "Reset"}, {Key: "n", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}
