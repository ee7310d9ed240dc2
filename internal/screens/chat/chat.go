package chat

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	tutor "github.com/abhisek/lingo/internal/chat"
	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

const (
	maxMessageLength = 2000
	scrollStep       = 5
)

// ChatScreen is the conversation with the tutor. The transcript is owned by
// the controller; streamed fragments arrive as change notifications and
// show up on the next render.
type ChatScreen struct {
	env     screen.Env
	input   components.TextInput
	spinner components.Spinner
	md      markdown

	scroll int // lines scrolled up from the bottom
	err    error
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a ChatScreen.
func New(env screen.Env) *ChatScreen {
	return &ChatScreen{
		env:   env,
		input: components.NewTextInput(i18n.T(env.Lang(), i18n.ChatInput), maxMessageLength),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		s.spinner = s.spinner.Update(msg)
		return s, nil

	case screen.ChangeMsg:
		if msg.Change.Kind == session.ChangeChat {
			s.scroll = 0
		}
		return s, nil

	case screen.DoneMsg:
		switch msg.Action {
		case "send", "clear", "translate", "speak", "back":
			s.err = msg.Err
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "esc":
			return s, s.env.Do("back", func(context.Context) ([]session.Effect, error) {
				return s.env.Ctrl.Navigate(session.StateHome)
			})
		case "ctrl+l":
			if s.env.Ctrl.ChatBusy() {
				return s, nil
			}
			s.scroll = 0
			return s, s.env.Do("clear", func(ctx context.Context) ([]session.Effect, error) {
				return s.env.Ctrl.ClearChat(ctx)
			})
		case "ctrl+t":
			return s, s.onLastReply("translate", s.env.Ctrl.TranslateMessage)
		case "ctrl+s":
			if !s.env.Ctrl.SpeechSupported() {
				return s, nil
			}
			return s, s.onLastReply("speak", s.env.Ctrl.SpeakMessage)
		case "pgup":
			s.scroll += scrollStep
			return s, nil
		case "pgdown":
			s.scroll = max(s.scroll-scrollStep, 0)
			return s, nil
		}
	}

	s.input.Disabled = s.env.Ctrl.ChatBusy() || !s.env.Ctrl.ChatReady()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) send() tea.Cmd {
	text := s.input.Trimmed()
	if text == "" || s.env.Ctrl.ChatBusy() || !s.env.Ctrl.ChatReady() {
		return nil
	}
	s.input.Reset()
	s.scroll = 0
	s.err = nil
	return s.env.Do("send", func(ctx context.Context) ([]session.Effect, error) {
		return nil, s.env.Ctrl.SendChat(ctx, text)
	})
}

// onLastReply runs fn on the newest finished tutor message.
func (s *ChatScreen) onLastReply(action string, fn func(context.Context, int) error) tea.Cmd {
	if s.env.Ctrl.ChatBusy() {
		return nil
	}
	i := lastReply(s.env.Ctrl.ChatMessages())
	if i < 0 {
		return nil
	}
	return s.env.Do(action, func(ctx context.Context) ([]session.Effect, error) {
		return nil, fn(ctx, i)
	})
}

func lastReply(msgs []tutor.Message) int {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == tutor.RoleModel && msgs[i].Text != "" {
			return i
		}
	}
	return -1
}

func (s *ChatScreen) View(width, height int) string {
	lang := s.env.Lang()
	cw := components.ContentWidth(width)

	var status string
	switch err := s.visibleError(); {
	case err != nil:
		status = theme.Incorrect.Render("⚠ " + screen.ErrorText(lang, err))
	case s.env.Ctrl.ChatBusy():
		status = s.spinner.View(i18n.T(lang, i18n.ChatTyping))
	case !s.env.Ctrl.ChatReady():
		status = s.spinner.View(i18n.T(lang, i18n.Loading))
	}
	status = lipgloss.NewStyle().Width(cw).Render(status)

	s.input.Disabled = s.env.Ctrl.ChatBusy() || !s.env.Ctrl.ChatReady()
	input := components.Card(s.input.View(), cw)

	lines := s.transcript(lang, cw)
	avail := max(height-lipgloss.Height(input)-lipgloss.Height(status), 1)
	end := len(lines) - min(s.scroll, max(len(lines)-avail, 0))
	start := max(end-avail, 0)
	body := strings.Join(lines[start:end], "\n")
	body = lipgloss.NewStyle().Width(cw).Height(avail).Render(body)

	content := lipgloss.JoinVertical(lipgloss.Left, body, status, input)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// visibleError prefers the controller's inline chat error over the result of
// the last local action. Stale results are never shown.
func (s *ChatScreen) visibleError() error {
	if err := s.env.Ctrl.ChatError(); err != nil {
		return err
	}
	if s.err != nil && !errors.Is(s.err, session.ErrStale) && !errors.Is(s.err, session.ErrBusy) {
		return s.err
	}
	return nil
}

// transcript renders the log as lines, oldest first.
func (s *ChatScreen) transcript(lang string, cw int) []string {
	msgs := s.env.Ctrl.ChatMessages()
	if len(msgs) == 0 {
		return []string{theme.Hint.Render(i18n.T(lang, i18n.ChatEmpty))}
	}

	busy := s.env.Ctrl.ChatBusy()
	var out []string
	for i, m := range msgs {
		if i > 0 {
			out = append(out, "")
		}
		var block string
		switch {
		case m.Role == tutor.RoleUser:
			block = theme.UserBubble.Render(i18n.T(lang, i18n.ChatYou)) + "\n" + plain(m.Text, cw)
		case busy && i == len(msgs)-1:
			block = theme.TutorBubble.Render(i18n.T(lang, i18n.ChatTutor)) + "\n" + plain(m.Text+"▌", cw)
		default:
			block = theme.TutorBubble.Render(i18n.T(lang, i18n.ChatTutor)) + "\n" + s.md.render(m.Text, cw)
		}
		if m.Translation != "" {
			block += "\n" + theme.Hint.Width(cw).Render("↳ "+m.Translation)
		}
		out = append(out, strings.Split(block, "\n")...)
	}
	return out
}

func (s *ChatScreen) Title() string {
	return i18n.T(s.env.Lang(), i18n.TitleChat)
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+T", Description: "Translate"},
	}
	if s.env.Ctrl.SpeechSupported() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Speak"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+L", Description: "Clear"},
		layout.KeyHint{Key: "PgUp/PgDn", Description: "Scroll"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
}
