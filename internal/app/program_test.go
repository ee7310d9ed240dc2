package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/chat"
	"github.com/abhisek/lingo/internal/llm"
	pt "github.com/abhisek/lingo/internal/placement"
	"github.com/abhisek/lingo/internal/profile"
	"github.com/abhisek/lingo/internal/screen"
	chatscreen "github.com/abhisek/lingo/internal/screens/chat"
	"github.com/abhisek/lingo/internal/screens/home"
	"github.com/abhisek/lingo/internal/screens/language"
	"github.com/abhisek/lingo/internal/screens/onboarding"
	"github.com/abhisek/lingo/internal/screens/placement"
	"github.com/abhisek/lingo/internal/screens/screentest"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/theme"
)

const waitFor = 5 * time.Second

type nudgeMsg struct{}

// observer records what the event loop has processed. It runs as a
// program filter, so it sees the model on the loop's goroutine.
type observer struct {
	mu     sync.Mutex
	active string
	done   map[string]int
}

func (o *observer) filter(m tea.Model, msg tea.Msg) tea.Msg {
	o.mu.Lock()
	defer o.mu.Unlock()
	if am, ok := m.(AppModel); ok {
		o.active = fmt.Sprintf("%T", am.router.Active())
	}
	if d, ok := msg.(screen.DoneMsg); ok {
		o.done[d.Action]++
	}
	return msg
}

func (o *observer) doneCount(action string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.done[action]
}

type harness struct {
	t    *testing.T
	p    *tea.Program
	obs  *observer
	ctrl *session.Controller
	errc chan error
}

// startProgram runs the TUI the way Run does, without a terminal.
func startProgram(t *testing.T, mock llm.Provider) *harness {
	t.Helper()
	ctrl := session.New(session.Options{Prefs: screentest.Prefs(t, nil), Provider: mock})
	t.Cleanup(func() { theme.Apply(profile.Dark) })

	obs := &observer{done: map[string]int{}}
	p := tea.NewProgram(newAppModel(t.Context(), Options{Ctrl: ctrl}),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithWindowSize(100, 30),
		tea.WithoutSignalHandler(),
		tea.WithFilter(obs.filter),
	)
	stop := forward(ctrl, p.Send)
	t.Cleanup(stop)

	h := &harness{t: t, p: p, obs: obs, ctrl: ctrl, errc: make(chan error, 1)}
	go func() {
		_, err := p.Run()
		h.errc <- err
	}()
	t.Cleanup(p.Kill)
	return h
}

// send delivers msg, failing if the event loop stops reading.
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	sent := make(chan struct{})
	go func() {
		h.p.Send(msg)
		close(sent)
	}()
	select {
	case <-sent:
	case <-time.After(waitFor):
		h.t.Fatalf("event loop stopped accepting messages (sending %T)", msg)
	}
}

func (h *harness) typeText(text string) {
	h.t.Helper()
	for _, r := range text {
		h.send(screentest.Key(r))
	}
}

// waitScreen waits until the loop has switched to a screen of want's type.
func (h *harness) waitScreen(want screen.Screen) {
	h.t.Helper()
	name := fmt.Sprintf("%T", want)
	require.Eventually(h.t, func() bool {
		h.p.Send(nudgeMsg{})
		h.obs.mu.Lock()
		defer h.obs.mu.Unlock()
		return h.obs.active == name
	}, waitFor, 10*time.Millisecond, "waiting for %s", name)
}

func (h *harness) waitDone(action string, n int) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		return h.obs.doneCount(action) >= n
	}, waitFor, 5*time.Millisecond, "waiting for %s #%d", action, n)
}

func (h *harness) waitUntil(cond func() bool, what string) {
	h.t.Helper()
	require.Eventually(h.t, cond, waitFor, 5*time.Millisecond, "waiting for %s", what)
}

func TestProgram_NewLearnerReachesChat(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: screentest.PlacementJSON(5)},
		llm.MockResponse{Content: json.RawMessage(`{"level":"Intermediate","feedback":"Solid grammar, keep reading."}`)},
		llm.MockResponse{Content: screentest.TipsJSON()},
		llm.MockResponse{Fragments: []string{"Hi", " Lena", "!"}},
	)
	h := startProgram(t, mock)

	h.waitScreen(&language.LanguageScreen{})
	h.send(screentest.Key('1'))

	h.waitScreen(&onboarding.OnboardingScreen{})
	h.typeText("Lena")
	h.send(screentest.Special(tea.KeyEnter))

	h.waitScreen(&placement.PlacementScreen{})
	h.waitUntil(func() bool {
		st := h.ctrl.Placement()
		return st != nil && st.Phase() == pt.PhaseTaking
	}, "placement questions")

	for i := range 5 {
		h.send(screentest.Key('b'))
		h.waitDone("answer", i+1)
	}
	h.waitUntil(func() bool {
		st := h.ctrl.Placement()
		return st != nil && st.Phase() == pt.PhaseResults
	}, "placement results")
	assert.Equal(t, profile.Intermediate, h.ctrl.Session().Profile.EnglishLevel)

	h.send(screentest.Special(tea.KeyEnter))
	h.waitScreen(&home.HomeScreen{})
	h.waitUntil(func() bool { return h.ctrl.Home() != nil }, "home content")

	h.send(screentest.Key('1'))
	h.waitScreen(&chatscreen.ChatScreen{})
	h.waitUntil(h.ctrl.ChatReady, "chat session")

	h.typeText("Hello")
	h.send(screentest.Special(tea.KeyEnter))
	h.waitUntil(func() bool {
		msgs := h.ctrl.ChatMessages()
		return len(msgs) == 2 && msgs[1].Role == chat.RoleModel && msgs[1].Text == "Hi Lena!" && !h.ctrl.ChatBusy()
	}, "tutor reply")
	assert.Equal(t, "Hello", h.ctrl.ChatMessages()[0].Text)

	// Streaming published a change per fragment; the loop must still be live.
	h.send(nudgeMsg{})

	h.send(screentest.Ctrl('c'))
	select {
	case err := <-h.errc:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("program did not quit")
	}
}

func TestForward_DoesNotBlockPublisher(t *testing.T) {
	ctrl := session.New(session.Options{Prefs: screentest.Prefs(t, screentest.Returning())})

	release := make(chan struct{})
	var (
		mu  sync.Mutex
		got []session.Change
	)
	stop := forward(ctrl, func(msg tea.Msg) {
		<-release
		mu.Lock()
		got = append(got, msg.(screen.ChangeMsg).Change)
		mu.Unlock()
	})
	defer stop()

	started := make(chan struct{})
	go func() {
		_, _ = ctrl.Start(t.Context())
		ctrl.DismissBanner()
		close(started)
	}()
	select {
	case <-started:
	case <-time.After(waitFor):
		t.Fatal("publishing blocked on a receiver that is not reading")
	}

	close(release)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) >= 2
	}, waitFor, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].Epoch, got[i-1].Epoch, "changes arrive in publish order")
	}
	assert.Equal(t, session.ChangeFlow, got[len(got)-1].Kind)
}
