package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/dailytips"
	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// HomeScreen is the dashboard: today's tips and challenge plus the menu of
// activities. Tips are fetched by the controller on every visit.
type HomeScreen struct {
	env      screen.Env
	menu     components.Menu
	spinner  components.Spinner
	settings func() screen.Screen
	err      error
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. settings builds the screen pushed by the
// settings menu item.
func New(env screen.Env, settings func() screen.Screen) *HomeScreen {
	h := &HomeScreen{env: env, settings: settings}
	lang := env.Lang()

	items := []components.MenuItem{
		{Label: i18n.T(lang, i18n.MenuChat), Action: h.navigate(session.StateChatting)},
		{Label: i18n.T(lang, i18n.MenuVocab), Action: h.navigate(session.StateVocabularyQuiz)},
		{Label: i18n.T(lang, i18n.MenuRetake), Action: h.navigate(session.StatePlacementTest)},
		{Label: i18n.T(lang, i18n.MenuLanguage), Action: h.navigate(session.StateLanguageSelection)},
		{Label: i18n.T(lang, i18n.MenuSettings), Action: func() tea.Cmd {
			if h.settings == nil {
				return nil
			}
			next := h.settings()
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: next}
			}
		}},
		{Label: i18n.T(lang, i18n.MenuQuit), Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.menu.Numbered = true
	return h
}

func (h *HomeScreen) navigate(to session.AppState) func() tea.Cmd {
	return func() tea.Cmd {
		return h.env.Do("navigate", func(context.Context) ([]session.Effect, error) {
			return h.env.Ctrl.Navigate(to)
		})
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		h.spinner = h.spinner.Update(msg)
		return h, nil

	case screen.DoneMsg:
		if msg.Action == "navigate" || msg.Action == "retry" {
			h.err = msg.Err
		}
		return h, nil

	case tea.KeyPressMsg:
		if msg.String() == "r" && h.env.Ctrl.Home() == nil && h.env.Ctrl.Banner() != nil {
			return h, h.env.Do("retry", func(context.Context) ([]session.Effect, error) {
				return h.env.Ctrl.RetryHome()
			})
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	lang := h.env.Lang()
	p := h.env.Ctrl.Session().Profile
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	greeting := theme.Title.Render(i18n.Tf(lang, i18n.Greeting, p.UserName, p.EnglishLevel))

	var sections []string
	content := h.env.Ctrl.Home()
	banner := h.env.Ctrl.Banner()

	variant := MascotIdle
	switch {
	case banner != nil:
		variant = MascotAlert
	case content == nil:
		variant = MascotThinking
	}
	if compact {
		sections = append(sections, greeting)
	} else {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center, RenderMascot(variant), "   ", greeting))
	}

	switch {
	case banner != nil && content == nil:
		sections = append(sections,
			components.Banner(screen.ErrorText(lang, banner), cw)+"\n"+theme.Hint.Render(i18n.T(lang, i18n.PressRetry)))
	case content == nil:
		sections = append(sections, h.spinner.View(i18n.T(lang, i18n.LoadingTips)))
	default:
		sections = append(sections, components.Card(renderTips(lang, content.Tips, content.Challenge, cw, compact), cw))
	}

	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(h.menu.View()))

	if h.err != nil {
		sections = append(sections, components.Banner(screen.ErrorText(lang, h.err), cw))
	}

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func renderTips(lang string, tips []dailytips.Tip, challenge string, cw int, compact bool) string {
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6)

	var b strings.Builder
	b.WriteString(heading.Render(i18n.T(lang, i18n.DailyTips)))
	for i, tip := range tips {
		b.WriteString("\n")
		b.WriteString(theme.Selected.Render(fmt.Sprintf("%d. %s", i+1, tip.Title)))
		if !compact {
			b.WriteString("\n")
			b.WriteString(body.Render(tip.Description))
		}
	}
	if challenge != "" {
		b.WriteString("\n\n")
		b.WriteString(heading.Render(i18n.T(lang, i18n.Challenge)))
		b.WriteString("\n")
		b.WriteString(body.Render(challenge))
	}
	return b.String()
}

func (h *HomeScreen) Title() string {
	return i18n.T(h.env.Lang(), i18n.TitleHome)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if h.env.Ctrl.Home() == nil && h.env.Ctrl.Banner() != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retry"})
	}
	return hints
}
