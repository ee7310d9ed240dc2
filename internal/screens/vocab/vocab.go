package vocab

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
	vq "github.com/abhisek/lingo/internal/vocab"
)

// VocabScreen runs the vocabulary quiz. Answers lock as soon as they are
// picked; the right answer is revealed before moving on.
type VocabScreen struct {
	env     screen.Env
	spinner components.Spinner

	choice   components.MultiChoice
	question int // index choice was built for, -1 if none
	pending  bool
	err      error
}

var _ screen.Screen = (*VocabScreen)(nil)
var _ screen.KeyHintProvider = (*VocabScreen)(nil)

// New creates a VocabScreen.
func New(env screen.Env) *VocabScreen {
	s := &VocabScreen{env: env, question: -1}
	s.sync()
	return s
}

func (s *VocabScreen) Init() tea.Cmd {
	return nil
}

// sync rebuilds the option list for a new question, or after a selection
// the controller refused.
func (s *VocabScreen) sync() {
	quiz := s.env.Ctrl.Quiz()
	if quiz == nil || quiz.Phase() != vq.PhaseTaking {
		return
	}
	q, picked, _ := quiz.Question()
	if s.question == quiz.Current() && !(s.choice.Submitted && picked == "" && !s.pending) {
		return
	}
	s.choice = components.NewMultiChoice(q.Question, q.Options, -1, false)
	s.question = quiz.Current()
}

func (s *VocabScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	defer s.sync()

	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		s.spinner = s.spinner.Update(msg)
		return s, nil

	case screen.DoneMsg:
		switch msg.Action {
		case "select", "next", "restart", "back":
			s.pending = false
			s.err = msg.Err
		}
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *VocabScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.pending {
		return nil
	}
	key := msg.String()
	if key == "esc" {
		return s.home()
	}

	quiz := s.env.Ctrl.Quiz()
	if quiz == nil {
		return nil
	}

	switch quiz.Phase() {
	case vq.PhaseTaking:
		_, picked, _ := quiz.Question()
		if picked != "" {
			if key == "enter" || key == "n" {
				return s.action("next", func(context.Context) ([]session.Effect, error) {
					return s.env.Ctrl.NextVocab()
				})
			}
			return nil
		}
		s.sync()
		s.choice, _ = s.choice.Update(msg)
		if option, ok := s.choice.Chosen(); ok {
			return s.action("select", func(context.Context) ([]session.Effect, error) {
				return nil, s.env.Ctrl.SelectVocab(option)
			})
		}

	case vq.PhaseResults:
		switch key {
		case "n":
			return s.action("restart", func(context.Context) ([]session.Effect, error) {
				return s.env.Ctrl.RestartVocab()
			})
		case "enter":
			return s.home()
		}
	}
	return nil
}

func (s *VocabScreen) home() tea.Cmd {
	return s.action("back", func(context.Context) ([]session.Effect, error) {
		return s.env.Ctrl.Navigate(session.StateHome)
	})
}

func (s *VocabScreen) action(name string, fn func(context.Context) ([]session.Effect, error)) tea.Cmd {
	s.pending = true
	s.err = nil
	return s.env.Do(name, fn)
}

func (s *VocabScreen) View(width, height int) string {
	lang := s.env.Lang()
	cw := components.ContentWidth(width)
	quiz := s.env.Ctrl.Quiz()

	var sections []string
	switch {
	case quiz == nil || quiz.Phase() == vq.PhaseGenerating:
		sections = append(sections, s.spinner.View(i18n.T(lang, i18n.QuizGenerate)))

	case quiz.Phase() == vq.PhaseTaking:
		sections = append(sections, s.viewQuestion(lang, quiz, cw)...)

	default:
		sections = append(sections, s.viewResults(lang, quiz, cw)...)
	}

	if s.err != nil && !errors.Is(s.err, session.ErrStale) {
		sections = append(sections, components.Banner(screen.ErrorText(lang, s.err), cw))
	}
	return components.Center(strings.Join(sections, "\n"), width, height)
}

func (s *VocabScreen) viewQuestion(lang string, quiz *vq.Quiz, cw int) []string {
	q, picked, _ := quiz.Question()
	progress := components.NewProgress(
		i18n.Tf(lang, i18n.QuestionNofM, quiz.Current()+1, quiz.Len()), quiz.Current(), quiz.Len(), cw)

	choice := s.choice
	switch {
	case picked != "":
		choice = components.NewMultiChoice(q.Question, q.Options, components.IndexOf(q.Options, q.CorrectAnswer), true)
		choice.Submitted = true
		choice.ChosenIndex = components.IndexOf(q.Options, picked)
		choice.Selected = choice.ChosenIndex
	case s.question != quiz.Current():
		choice = components.NewMultiChoice(q.Question, q.Options, -1, false)
	}

	body := choice.View()
	if picked != "" {
		def := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 6).
			Render(fmt.Sprintf("%s: %s", q.CorrectAnswer, q.Definition))
		body += "\n" + def + "\n\n" + theme.Selected.Render("▸ "+i18n.T(lang, i18n.QuizNext))
	}
	return []string{progress.View(), "", components.Card(body, cw)}
}

func (s *VocabScreen) viewResults(lang string, quiz *vq.Quiz, cw int) []string {
	res, _ := quiz.Result()
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(i18n.Tf(lang, i18n.QuizScore, res.Score, res.Total)))

	if len(res.Review) > 0 {
		b.WriteString("\n\n")
		b.WriteString(heading.Render(i18n.T(lang, i18n.WordsReview)))
		for _, r := range res.Review {
			b.WriteString("\n")
			b.WriteString(theme.Correct.Render(r.Word))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(": " + r.Definition))
			if r.Answer != "" {
				b.WriteString(theme.Incorrect.Render("  ✗ " + r.Answer))
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(heading.Render(i18n.T(lang, i18n.Feedback)))
	b.WriteString("\n")
	switch fb, err := quiz.Feedback(), s.env.Ctrl.FeedbackError(); {
	case err != nil && fb == "":
		b.WriteString(theme.Incorrect.Render("⚠ " + screen.ErrorText(lang, err)))
	case fb == "":
		b.WriteString(s.spinner.View(i18n.T(lang, i18n.Loading)))
	default:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(fb))
	}

	menu := theme.Selected.Render("n ▸ "+i18n.T(lang, i18n.QuizRestart)) + "    " +
		theme.Selected.Render("Enter ▸ "+i18n.T(lang, i18n.BackHome))
	return []string{components.Card(b.String(), cw), "", menu}
}

func (s *VocabScreen) Title() string {
	return i18n.T(s.env.Lang(), i18n.TitleVocab)
}

func (s *VocabScreen) KeyHints() []layout.KeyHint {
	quiz := s.env.Ctrl.Quiz()
	hints := []layout.KeyHint{}
	switch {
	case quiz == nil:
	case quiz.Phase() == vq.PhaseTaking:
		if _, picked, _ := quiz.Question(); picked != "" {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
		} else {
			hints = append(hints,
				layout.KeyHint{Key: "↑↓", Description: "Navigate"},
				layout.KeyHint{Key: "Enter/A-D", Description: "Answer"})
		}
	case quiz.Phase() == vq.PhaseResults:
		hints = append(hints,
			layout.KeyHint{Key: "n", Description: "New quiz"},
			layout.KeyHint{Key: "Enter", Description: "Home"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}
