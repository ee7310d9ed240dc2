package onboarding

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/screens/screentest"
	"github.com/abhisek/lingo/internal/session"
)

func newLearner() map[string]string {
	return map[string]string{
		session.KeySchemaVersion: "1",
		session.KeyUILanguage:    "fr",
	}
}

func TestOnboarding_EmptyNameStays(t *testing.T) {
	env := screentest.Env(t, nil, newLearner())
	require.Equal(t, session.StateOnboarding, env.Ctrl.Session().AppState)

	s := New(env)
	screentest.Type(s, "   ")
	_, cmd := s.Update(screentest.Special(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.ErrorIs(t, s.err, session.ErrEmptyName)
	assert.Contains(t, s.View(80, 24), "Veuillez")
	assert.Equal(t, session.StateOnboarding, env.Ctrl.Session().AppState)
}

func TestOnboarding_SubmitStartsPlacement(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: screentest.PlacementJSON(5)})
	env := screentest.Env(t, mock, newLearner())

	s := New(env)
	screentest.Type(s, "  Lena ")
	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	require.NotNil(t, cmd)

	_, msgs := screentest.Run(t, env, s, cmd)
	assert.Empty(t, screentest.Errs(msgs))

	sess := env.Ctrl.Session()
	assert.Equal(t, "Lena", sess.Profile.UserName)
	assert.Equal(t, session.StatePlacementTest, sess.AppState)
	require.NotNil(t, env.Ctrl.Placement())
	assert.Len(t, env.Ctrl.Placement().Questions(), 5)
}

func TestOnboarding_EscReturnsToLanguage(t *testing.T) {
	env := screentest.Env(t, nil, newLearner())
	s := New(env)

	_, cmd := s.Update(screentest.Special(tea.KeyEscape))
	require.NotNil(t, cmd)
	screentest.Run(t, env, s, cmd)

	assert.Equal(t, session.StateLanguageSelection, env.Ctrl.Session().AppState)
}
