package screen

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// DoneMsg reports that a controller call finished. Action names a user
// action; Effect is set instead when the call was an effect. Next holds the
// effects the controller asked for in return.
type DoneMsg struct {
	Action string
	Effect session.Effect
	Next   []session.Effect
	Err    error
}

// ChangeMsg carries a controller Change into the program.
type ChangeMsg struct {
	Change session.Change
}

// Env is what every screen needs to talk to the session.
type Env struct {
	Ctx  context.Context
	Ctrl *session.Controller
}

// Lang returns the learner's UI language.
func (e Env) Lang() string {
	return e.Ctrl.Session().Profile.UILanguage
}

// Do runs fn off the UI goroutine and reports the outcome as a DoneMsg.
func (e Env) Do(action string, fn func(ctx context.Context) ([]session.Effect, error)) tea.Cmd {
	ctx := e.context()
	return func() tea.Msg {
		next, err := fn(ctx)
		return DoneMsg{Action: action, Next: next, Err: err}
	}
}

// Perform runs each effect in its own command.
func (e Env) Perform(effects ...session.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	ctx := e.context()
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, func() tea.Msg {
			next, err := e.Ctrl.Perform(ctx, eff)
			return DoneMsg{Effect: eff, Next: next, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (e Env) context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}

// ErrorText turns a controller error into a message for the learner.
func ErrorText(lang string, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, llm.ErrNotConfigured):
		return i18n.T(lang, i18n.NotConfigured)
	case errors.Is(err, session.ErrEmptyName):
		return i18n.T(lang, i18n.NameRequired)
	}
	return err.Error()
}
