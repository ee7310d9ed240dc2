package language

import (
	"context"
	"errors"
	"fmt"
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

// LanguageScreen lets the learner pick the language the app speaks to them
// in. English stays the language being learned.
type LanguageScreen struct {
	env  screen.Env
	menu components.Menu
	err  error
}

var _ screen.Screen = (*LanguageScreen)(nil)
var _ screen.KeyHintProvider = (*LanguageScreen)(nil)

// New creates a LanguageScreen with the current language preselected.
func New(env screen.Env) *LanguageScreen {
	s := &LanguageScreen{env: env}

	items := make([]components.MenuItem, 0, len(i18n.Languages))
	for _, lang := range i18n.Languages {
		label := lang.NativeName
		if lang.NativeName != lang.Name {
			label = fmt.Sprintf("%s (%s)", lang.NativeName, lang.Name)
		}
		items = append(items, components.MenuItem{Label: label, Action: s.choose(lang.Code)})
	}
	s.menu = components.NewMenu(items)
	s.menu.Numbered = true

	current := env.Lang()
	for i, lang := range i18n.Languages {
		if lang.Code == current {
			s.menu.Selected = i
		}
	}
	return s
}

func (s *LanguageScreen) choose(code string) func() tea.Cmd {
	return func() tea.Cmd {
		return s.env.Do("language", func(ctx context.Context) ([]session.Effect, error) {
			return s.env.Ctrl.SelectLanguage(ctx, code)
		})
	}
}

func (s *LanguageScreen) Init() tea.Cmd {
	return nil
}

func (s *LanguageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.DoneMsg:
		if msg.Action == "language" || msg.Action == "back" {
			s.err = msg.Err
		}
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "esc" && s.canGoBack() {
			return s, s.env.Do("back", func(context.Context) ([]session.Effect, error) {
				return s.env.Ctrl.Navigate(session.StateHome)
			})
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// canGoBack reports whether the learner came here from home.
func (s *LanguageScreen) canGoBack() bool {
	return s.env.Ctrl.Session().Profile.HasLevel()
}

func (s *LanguageScreen) View(width, height int) string {
	lang := s.env.Lang()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(i18n.T(lang, i18n.ChooseLanguage)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Render(s.menu.View()))
	if s.err != nil && !errors.Is(s.err, session.ErrStale) {
		b.WriteString("\n")
		b.WriteString(components.Banner(screen.ErrorText(lang, s.err), cw))
	}

	return components.Center(b.String(), width, height)
}

func (s *LanguageScreen) Title() string {
	return i18n.T(s.env.Lang(), i18n.TitleLanguage)
}

func (s *LanguageScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if s.canGoBack() {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return hints
}
