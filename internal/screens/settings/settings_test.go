package settings

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/profile"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/screentest"
	"github.com/abhisek/lingo/internal/session"
)

func newSettings(t *testing.T) (*SettingsScreen, screen.Env) {
	t.Helper()
	mock := llm.NewMockProvider(llm.MockResponse{Content: screentest.TipsJSON()})
	env := screentest.Env(t, mock, screentest.Returning())
	return New(env), env
}

func TestSettings_ToggleTheme(t *testing.T) {
	s, env := newSettings(t)
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "Theme: dark")

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	require.NotNil(t, cmd)
	_, msgs := screentest.Run(t, env, s, cmd)
	assert.Empty(t, screentest.Errs(msgs))

	assert.Equal(t, profile.Light, env.Ctrl.Session().Profile.Theme)
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "Theme: light")
}

func TestSettings_ResetNeedsConfirmation(t *testing.T) {
	s, env := newSettings(t)
	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Special(tea.KeyEnter))
	require.True(t, s.confirming)
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "(y/n)")

	_, cmd := s.Update(screentest.Key('n'))
	assert.Nil(t, cmd)
	assert.False(t, s.confirming)
	assert.Equal(t, session.StateHome, env.Ctrl.Session().AppState)

	s.Update(screentest.Special(tea.KeyEnter))
	_, cmd = s.Update(screentest.Key('y'))
	require.NotNil(t, cmd)
	_, msgs := screentest.Run(t, env, s, cmd)
	assert.Empty(t, screentest.Errs(msgs))

	sess := env.Ctrl.Session()
	assert.Equal(t, session.StateLanguageSelection, sess.AppState)
	assert.Empty(t, sess.Profile.UserName)
	assert.False(t, sess.Profile.HasLevel())
}
