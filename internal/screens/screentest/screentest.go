// Package screentest wires a real controller over a throwaway SQLite store
// for screen tests.
package screentest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/placement"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/store"
	"github.com/abhisek/lingo/internal/vocab"
)

// Returning is the stored profile of a learner who finished placement.
func Returning() map[string]string {
	return map[string]string{
		session.KeySchemaVersion: "1",
		session.KeyUILanguage:    "en",
		session.KeyUserName:      "Lena",
		session.KeyEnglishLevel:  "Intermediate",
	}
}

// Prefs opens a fresh preference store seeded with seed.
func Prefs(t testing.TB, seed map[string]string) *store.Preferences {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "lingo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	prefs := st.Preferences()
	if len(seed) > 0 {
		require.NoError(t, prefs.SetMany(t.Context(), seed))
	}
	return prefs
}

// Env starts a controller over p and seed and performs the effects of the
// first screen. p may be nil for an unconfigured gateway.
func Env(t testing.TB, p llm.Provider, seed map[string]string) screen.Env {
	t.Helper()
	return EnvOptions(t, session.Options{Provider: p}, seed)
}

// EnvOptions is Env with full control over the controller's collaborators.
// opts.Prefs is replaced by a fresh store seeded with seed.
func EnvOptions(t testing.TB, opts session.Options, seed map[string]string) screen.Env {
	t.Helper()
	opts.Prefs = Prefs(t, seed)
	ctrl := session.New(opts)
	env := screen.Env{Ctx: t.Context(), Ctrl: ctrl}

	effects, err := ctrl.Start(t.Context())
	require.NoError(t, err)
	for _, e := range effects {
		// Failures surface on the screen under test; they are not fatal here.
		_, _ = ctrl.Perform(t.Context(), e)
	}
	return env
}

// Run executes cmd, delivers every DoneMsg to s and performs the effects it
// names, until nothing is left. It returns the updated screen and every
// message produced along the way.
func Run(t testing.TB, env screen.Env, s screen.Screen, cmd tea.Cmd) (screen.Screen, []tea.Msg) {
	t.Helper()
	var msgs []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch m := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, m...)
			continue
		case screen.DoneMsg:
			msgs = append(msgs, m)
			var next tea.Cmd
			s, next = s.Update(m)
			queue = append(queue, env.Perform(m.Next...), next)
			continue
		}
		msgs = append(msgs, msg)
	}
	return s, msgs
}

// Errs returns the errors carried by DoneMsgs in msgs.
func Errs(msgs []tea.Msg) []error {
	var errs []error
	for _, m := range msgs {
		if d, ok := m.(screen.DoneMsg); ok && d.Err != nil {
			errs = append(errs, d.Err)
		}
	}
	return errs
}

// Key returns a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special returns a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Ctrl returns r pressed with the control modifier.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Type feeds text to s one key at a time.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(Key(r))
	}
	return s
}

// PlacementJSON is a test of n questions where option A is always right.
func PlacementJSON(n int) json.RawMessage {
	qs := make([]placement.Question, n)
	for i := range qs {
		qs[i] = placement.Question{
			Question:      fmt.Sprintf("Question %d", i+1),
			Options:       []string{fmt.Sprintf("A%d", i+1), fmt.Sprintf("B%d", i+1), fmt.Sprintf("C%d", i+1), fmt.Sprintf("D%d", i+1)},
			CorrectAnswer: fmt.Sprintf("A%d", i+1),
		}
	}
	b, _ := json.Marshal(map[string]any{"questions": qs})
	return b
}

// QuizWords are the answers of QuizJSON, in order.
var QuizWords = []string{"brave", "eager", "vast", "fragile", "swift"}

// QuizJSON is a vocabulary quiz whose first option is always right.
func QuizJSON() json.RawMessage {
	qs := make([]vocab.Question, len(QuizWords))
	for i, w := range QuizWords {
		qs[i] = vocab.Question{
			Question:      "Pick " + w,
			Options:       []string{w, "x", "y", "z"},
			CorrectAnswer: w,
			Definition:    w + " means something",
		}
	}
	b, _ := json.Marshal(map[string]any{"questions": qs})
	return b
}

// TipsJSON is home content with one tip.
func TipsJSON() json.RawMessage {
	return json.RawMessage(`{"tips":[{"title":"Read aloud","description":"Read one page aloud every day."}],"challenge":"Write three sentences about your morning."}`)
}
