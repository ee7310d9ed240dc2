package onboarding

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

const maxNameLength = 40

// OnboardingScreen asks for the learner's name.
type OnboardingScreen struct {
	env     screen.Env
	input   components.TextInput
	err     error
	pending bool
}

var _ screen.Screen = (*OnboardingScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardingScreen)(nil)

// New creates an OnboardingScreen.
func New(env screen.Env) *OnboardingScreen {
	lang := env.Lang()
	input := components.NewTextInput(i18n.T(lang, i18n.NamePlaceholder), maxNameLength)
	if name := env.Ctrl.Session().Profile.UserName; name != "" {
		input.Model.SetValue(name)
	}
	return &OnboardingScreen{env: env, input: input}
}

func (s *OnboardingScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.DoneMsg:
		if msg.Action == "name" || msg.Action == "back" {
			s.pending = false
			s.err = msg.Err
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "esc":
			return s, s.env.Do("back", func(context.Context) ([]session.Effect, error) {
				return s.env.Ctrl.Navigate(session.StateLanguageSelection)
			})
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *OnboardingScreen) submit() tea.Cmd {
	if s.pending {
		return nil
	}
	name := s.input.Trimmed()
	if name == "" {
		s.err = session.ErrEmptyName
		return nil
	}
	s.pending = true
	s.err = nil
	return s.env.Do("name", func(ctx context.Context) ([]session.Effect, error) {
		return s.env.Ctrl.SubmitName(ctx, name)
	})
}

func (s *OnboardingScreen) View(width, height int) string {
	lang := s.env.Lang()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(i18n.T(lang, i18n.AskName)))
	b.WriteString("\n\n")
	b.WriteString(components.Card(s.input.View(), cw))
	if s.err != nil && !errors.Is(s.err, session.ErrStale) {
		b.WriteString("\n")
		b.WriteString(components.Banner(screen.ErrorText(lang, s.err), cw))
	}

	return components.Center(b.String(), width, height)
}

func (s *OnboardingScreen) Title() string {
	return i18n.T(s.env.Lang(), i18n.TitleOnboarding)
}

func (s *OnboardingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Language"},
	}
}
