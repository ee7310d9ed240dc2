package home

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/screentest"
	"github.com/abhisek/lingo/internal/session"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "settings" }
func (s *stubScreen) Title() string                          { return "Settings" }

func newHome(t *testing.T, responses ...llm.MockResponse) (*HomeScreen, screen.Env, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	env := screentest.Env(t, mock, screentest.Returning())
	require.Equal(t, session.StateHome, env.Ctrl.Session().AppState)
	return New(env, func() screen.Screen { return &stubScreen{} }), env, mock
}

func pressDown(s screen.Screen, n int) {
	for i := 0; i < n; i++ {
		s.Update(screentest.Special(tea.KeyDown))
	}
}

func TestHome_ShowsTipsAndGreeting(t *testing.T) {
	h, _, _ := newHome(t, llm.MockResponse{Content: screentest.TipsJSON()})

	view := h.View(110, 34)
	assert.Contains(t, view, "Hello, Lena! Level: Intermediate")
	assert.Contains(t, view, "Read aloud")
	assert.Contains(t, view, "Write three sentences")
	assert.Contains(t, view, "Chat with your tutor")
}

func TestHome_LoadFailureRetry(t *testing.T) {
	h, env, mock := newHome(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})

	assert.Contains(t, h.View(110, 34), "Press r to retry")
	assert.Nil(t, env.Ctrl.Home())

	mock.AddResponse(llm.MockResponse{Content: screentest.TipsJSON()})
	_, cmd := h.Update(screentest.Key('r'))
	require.NotNil(t, cmd)
	_, msgs := screentest.Run(t, env, h, cmd)
	assert.Empty(t, screentest.Errs(msgs))

	require.NotNil(t, env.Ctrl.Home())
	assert.Nil(t, env.Ctrl.Banner())
	assert.Contains(t, h.View(110, 34), "Read aloud")
}

func TestHome_MenuNavigates(t *testing.T) {
	tests := []struct {
		name  string
		downs int
		next  llm.MockResponse
		want  session.AppState
	}{
		{"chat", 0, llm.MockResponse{}, session.StateChatting},
		{"vocab", 1, llm.MockResponse{Content: screentest.QuizJSON()}, session.StateVocabularyQuiz},
		{"retake", 2, llm.MockResponse{Content: screentest.PlacementJSON(5)}, session.StatePlacementTest},
		{"language", 3, llm.MockResponse{}, session.StateLanguageSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, env, _ := newHome(t, llm.MockResponse{Content: screentest.TipsJSON()}, tt.next)
			pressDown(h, tt.downs)
			_, cmd := h.Update(screentest.Special(tea.KeyEnter))
			require.NotNil(t, cmd)
			screentest.Run(t, env, h, cmd)
			assert.Equal(t, tt.want, env.Ctrl.Session().AppState)
		})
	}
}

func TestHome_SettingsPushesScreen(t *testing.T) {
	h, env, _ := newHome(t, llm.MockResponse{Content: screentest.TipsJSON()})
	pressDown(h, 4)
	_, cmd := h.Update(screentest.Special(tea.KeyEnter))
	require.NotNil(t, cmd)

	_, msgs := screentest.Run(t, env, h, cmd)
	require.Len(t, msgs, 1)
	push, ok := msgs[0].(router.PushScreenMsg)
	require.True(t, ok, "got %T", msgs[0])
	assert.Equal(t, "Settings", push.Screen.Title())
}

func TestHome_Quit(t *testing.T) {
	h, _, _ := newHome(t, llm.MockResponse{Content: screentest.TipsJSON()})
	pressDown(h, 5)
	_, cmd := h.Update(screentest.Special(tea.KeyEnter))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestHome_LocalizedMenu(t *testing.T) {
	seed := screentest.Returning()
	seed[session.KeyUILanguage] = "es"
	env := screentest.Env(t, llm.NewMockProvider(llm.MockResponse{Content: screentest.TipsJSON()}), seed)
	h := New(env, nil)

	view := h.View(110, 34)
	assert.True(t, strings.Contains(view, "Hablar con tu tutor"), "menu should follow the UI language")
	assert.Equal(t, "Inicio", h.Title())
}
