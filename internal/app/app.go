package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/logger"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/chat"
	"github.com/abhisek/lingo/internal/screens/home"
	"github.com/abhisek/lingo/internal/screens/language"
	"github.com/abhisek/lingo/internal/screens/onboarding"
	"github.com/abhisek/lingo/internal/screens/placement"
	"github.com/abhisek/lingo/internal/screens/settings"
	"github.com/abhisek/lingo/internal/screens/vocab"
	"github.com/abhisek/lingo/internal/screens/welcome"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	Ctrl *session.Controller
	Log  *logger.Logger
}

// AppModel is the root Bubble Tea model. The controller decides the active
// state; the model swaps the screen stack whenever that state changes.
type AppModel struct {
	env    screen.Env
	log    *logger.Logger
	router *router.Router
	state  session.AppState
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	env := screen.Env{Ctx: ctx, Ctrl: opts.Ctrl}
	theme.Apply(opts.Ctrl.Session().Profile.Theme)
	return AppModel{
		env:    env,
		log:    opts.Log.With("component", "app"),
		router: router.New(welcome.New()),
		state:  session.StateLoading,
	}
}

func (m AppModel) Init() tea.Cmd {
	start := m.env.Do(welcome.StartAction, m.env.Ctrl.Start)
	return tea.Batch(start, components.SpinnerTick())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case components.SpinnerTickMsg:
		return m, tea.Batch(components.SpinnerTick(), m.router.Update(msg))

	case screen.ChangeMsg:
		var cmds []tea.Cmd
		sess := m.env.Ctrl.Session()
		if sess.AppState != m.state {
			m.log.Debug("state changed", "from", m.state.String(), "to", sess.AppState.String())
			m.state = sess.AppState
			cmds = append(cmds, m.router.Reset(m.screenFor(m.state)))
		}
		if sess.Profile.Theme != theme.Current() {
			theme.Apply(sess.Profile.Theme)
		}
		cmds = append(cmds, m.router.Update(msg))
		return m, tea.Batch(cmds...)

	case screen.DoneMsg:
		if msg.Err != nil && !errors.Is(msg.Err, session.ErrStale) {
			m.log.Warn("action failed", "action", msg.Action, "effect", msg.Effect.String(), "error", msg.Err)
		}
		return m, tea.Batch(m.env.Perform(msg.Next...), m.router.Update(msg))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// screenFor builds the root screen of a state.
func (m AppModel) screenFor(state session.AppState) screen.Screen {
	switch state {
	case session.StateLanguageSelection:
		return language.New(m.env)
	case session.StateOnboarding:
		return onboarding.New(m.env)
	case session.StatePlacementTest:
		return placement.New(m.env)
	case session.StateHome:
		return home.New(m.env, func() screen.Screen { return settings.New(m.env) })
	case session.StateChatting:
		return chat.New(m.env)
	case session.StateVocabularyQuiz:
		return vocab.New(m.env)
	}
	return welcome.New()
}

func (m AppModel) status() string {
	p := m.env.Ctrl.Session().Profile
	switch {
	case p.UserName != "" && p.HasLevel():
		return p.UserName + " · " + string(p.EnglishLevel)
	case p.UserName != "":
		return p.UserName
	}
	return ""
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts))

	stop := forward(opts.Ctrl, p.Send)
	defer stop()

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
