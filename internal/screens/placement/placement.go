package placement

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/i18n"
	pt "github.com/abhisek/lingo/internal/placement"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// PlacementScreen walks the learner through the placement test. All test
// state lives in the controller; the screen only keeps the option cursor.
type PlacementScreen struct {
	env     screen.Env
	spinner components.Spinner

	choice   components.MultiChoice
	question int // index choice was built for, -1 if none
	pending  bool
	err      error
}

var _ screen.Screen = (*PlacementScreen)(nil)
var _ screen.KeyHintProvider = (*PlacementScreen)(nil)

// New creates a PlacementScreen.
func New(env screen.Env) *PlacementScreen {
	s := &PlacementScreen{env: env, question: -1}
	s.sync()
	return s
}

func (s *PlacementScreen) Init() tea.Cmd {
	return nil
}

// sync rebuilds the option list when the controller moved to another
// question, or when a submitted answer was handed back after a failed
// evaluation.
func (s *PlacementScreen) sync() {
	st := s.env.Ctrl.Placement()
	if st == nil || st.Phase() != pt.PhaseTaking {
		return
	}
	q, ok := st.Question()
	if !ok {
		return
	}
	if s.question == st.Current() && !(s.choice.Submitted && !s.pending) {
		return
	}
	s.choice = components.NewMultiChoice(q.Question, q.Options, -1, false)
	s.question = st.Current()
}

func (s *PlacementScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	defer s.sync()

	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		s.spinner = s.spinner.Update(msg)
		return s, nil

	case screen.DoneMsg:
		switch msg.Action {
		case "answer", "retry", "finish":
			s.pending = false
			s.err = msg.Err
		}
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *PlacementScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	st := s.env.Ctrl.Placement()
	if st == nil || s.pending {
		return nil
	}
	key := msg.String()

	switch st.Phase() {
	case pt.PhaseGenerating:
		if key == "r" && s.retryable(st) {
			return s.retry()
		}

	case pt.PhaseTaking:
		if st.Failed() {
			if key == "r" && s.retryable(st) {
				return s.retry()
			}
			return nil
		}
		s.sync()
		s.choice, _ = s.choice.Update(msg)
		if option, ok := s.choice.Chosen(); ok {
			return s.action("answer", func(context.Context) ([]session.Effect, error) {
				return s.env.Ctrl.AnswerPlacement(option)
			})
		}

	case pt.PhaseResults:
		if key == "enter" {
			return s.action("finish", func(context.Context) ([]session.Effect, error) {
				return s.env.Ctrl.FinishPlacement()
			})
		}
	}
	return nil
}

// retryable reports whether the last request failed and can be sent again.
func (s *PlacementScreen) retryable(st *pt.State) bool {
	if !s.env.Ctrl.GatewayReady() {
		return false
	}
	if st.Phase() == pt.PhaseTaking {
		return st.Failed()
	}
	return st.Phase() == pt.PhaseGenerating && s.env.Ctrl.Banner() != nil
}

func (s *PlacementScreen) retry() tea.Cmd {
	return s.action("retry", func(context.Context) ([]session.Effect, error) {
		return s.env.Ctrl.RetryPlacement()
	})
}

func (s *PlacementScreen) action(name string, fn func(context.Context) ([]session.Effect, error)) tea.Cmd {
	s.pending = true
	s.err = nil
	return s.env.Do(name, fn)
}

func (s *PlacementScreen) View(width, height int) string {
	lang := s.env.Lang()
	cw := components.ContentWidth(width)
	st := s.env.Ctrl.Placement()

	var sections []string
	name := s.env.Ctrl.Session().Profile.UserName
	sections = append(sections, theme.Title.Width(cw).Render(i18n.Tf(lang, i18n.PlacementIntro, name)), "")

	if err := s.env.Ctrl.GatewayError(); err != nil {
		sections = append(sections, components.Banner(screen.ErrorText(lang, err), cw))
		return components.Center(strings.Join(sections, "\n"), width, height)
	}

	switch {
	case st == nil:
		sections = append(sections, s.spinner.View(i18n.T(lang, i18n.Loading)))

	case st.Phase() == pt.PhaseGenerating:
		if banner := s.env.Ctrl.Banner(); banner != nil {
			sections = append(sections, components.Banner(screen.ErrorText(lang, banner), cw), "",
				theme.Hint.Render(i18n.T(lang, i18n.PressRetry)))
		} else {
			sections = append(sections, s.spinner.View(i18n.T(lang, i18n.GeneratingTest)))
		}

	case st.Phase() == pt.PhaseTaking && st.Failed():
		total := len(st.Questions())
		progress := components.NewProgress(i18n.T(lang, i18n.Evaluating), total, total, cw)
		sections = append(sections, progress.View(), "")
		if banner := s.env.Ctrl.Banner(); banner != nil {
			sections = append(sections, components.Banner(screen.ErrorText(lang, banner), cw), "")
		}
		sections = append(sections, theme.Hint.Render(i18n.T(lang, i18n.PressRetry)))

	case st.Phase() == pt.PhaseTaking:
		total := len(st.Questions())
		progress := components.NewProgress(
			i18n.Tf(lang, i18n.QuestionNofM, st.Current()+1, total), st.Current(), total, cw)
		choice := s.choice
		if s.question != st.Current() {
			q, _ := st.Question()
			choice = components.NewMultiChoice(q.Question, q.Options, -1, false)
		}
		sections = append(sections, progress.View(), "", components.Card(choice.View(), cw))
		if banner := s.env.Ctrl.Banner(); banner != nil {
			sections = append(sections, components.Banner(screen.ErrorText(lang, banner), cw))
		}

	case st.Phase() == pt.PhaseEvaluating:
		sections = append(sections, s.spinner.View(i18n.T(lang, i18n.Evaluating)))

	case st.Phase() == pt.PhaseResults:
		res, _ := st.Result()
		level := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(i18n.Tf(lang, i18n.YourLevel, res.Level))
		body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(res.Feedback)
		sections = append(sections,
			components.Card(level+"\n\n"+body, cw), "",
			theme.Selected.Render("▸ "+i18n.T(lang, i18n.Continue)))
	}

	if s.err != nil && !errors.Is(s.err, session.ErrStale) {
		sections = append(sections, components.Banner(screen.ErrorText(lang, s.err), cw))
	}

	return components.Center(strings.Join(sections, "\n"), width, height)
}

func (s *PlacementScreen) Title() string {
	return i18n.T(s.env.Lang(), i18n.TitlePlacement)
}

func (s *PlacementScreen) KeyHints() []layout.KeyHint {
	st := s.env.Ctrl.Placement()
	switch {
	case s.env.Ctrl.GatewayError() != nil, st == nil:
	case s.retryable(st):
		return []layout.KeyHint{{Key: "r", Description: "Retry"}}
	case st.Phase() == pt.PhaseTaking:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter/A-D", Description: "Answer"},
		}
	case st.Phase() == pt.PhaseResults:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	}
	return nil
}
