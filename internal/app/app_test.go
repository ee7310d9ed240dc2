package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/profile"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/home"
	"github.com/abhisek/lingo/internal/screens/language"
	"github.com/abhisek/lingo/internal/screens/screentest"
	"github.com/abhisek/lingo/internal/screens/settings"
	"github.com/abhisek/lingo/internal/screens/welcome"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/theme"
)

func newModel(t *testing.T, seed map[string]string) (AppModel, *session.Controller) {
	t.Helper()
	ctrl := session.New(session.Options{Prefs: screentest.Prefs(t, seed)})
	t.Cleanup(func() { theme.Apply(profile.Dark) })
	return newAppModel(t.Context(), Options{Ctrl: ctrl}), ctrl
}

func changed(t *testing.T, m AppModel) AppModel {
	t.Helper()
	updated, _ := m.Update(screen.ChangeMsg{})
	return updated.(AppModel)
}

func TestAppModel_StartsOnWelcome(t *testing.T) {
	m, _ := newModel(t, nil)
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
	assert.Equal(t, session.StateLoading, m.state)
	assert.NotNil(t, m.Init())
}

func TestAppModel_FollowsControllerState(t *testing.T) {
	m, ctrl := newModel(t, screentest.Returning())

	_, err := ctrl.Start(t.Context())
	require.NoError(t, err)
	m = changed(t, m)

	assert.Equal(t, session.StateHome, m.state)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
	assert.Equal(t, "Lena · Intermediate", m.status())

	require.NoError(t, ctrl.ResetProfile(t.Context()))
	m = changed(t, m)
	assert.Equal(t, session.StateLanguageSelection, m.state)
	assert.IsType(t, &language.LanguageScreen{}, m.router.Active())
	assert.Empty(t, m.status())
}

func TestAppModel_NewUserGoesToLanguageSelection(t *testing.T) {
	m, ctrl := newModel(t, nil)
	_, err := ctrl.Start(t.Context())
	require.NoError(t, err)
	m = changed(t, m)
	assert.IsType(t, &language.LanguageScreen{}, m.router.Active())
}

func TestAppModel_AppliesTheme(t *testing.T) {
	m, ctrl := newModel(t, screentest.Returning())
	_, err := ctrl.Start(t.Context())
	require.NoError(t, err)
	m = changed(t, m)
	require.Equal(t, profile.Dark, theme.Current())

	require.NoError(t, ctrl.SetTheme(t.Context(), profile.Light))
	m = changed(t, m)
	assert.Equal(t, profile.Light, theme.Current())
	assert.IsType(t, &home.HomeScreen{}, m.router.Active(), "a theme change keeps the screen")
}

func TestAppModel_EscPopsOverlay(t *testing.T) {
	m, ctrl := newModel(t, screentest.Returning())
	_, err := ctrl.Start(t.Context())
	require.NoError(t, err)
	m = changed(t, m)

	m.router.Push(settings.New(m.env))
	require.Equal(t, 2, m.router.Depth())

	_, cmd := m.Update(screentest.Special(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m, _ := newModel(t, nil)
	_, cmd := m.Update(screentest.Ctrl('c'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppModel_WindowSize(t *testing.T) {
	m, _ := newModel(t, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(AppModel)
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 30, m.height)
}
