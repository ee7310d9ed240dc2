package session

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/placement"
	"github.com/abhisek/lingo/internal/vocab"
)

// memPrefs is an in-memory Preferences that records every operation.
type memPrefs struct {
	mu   sync.Mutex
	data map[string]string
	ops  []string
}

func newMemPrefs(seed map[string]string) *memPrefs {
	data := make(map[string]string)
	maps.Copy(data, seed)
	return &memPrefs{data: data}
}

func (m *memPrefs) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "get:"+key)
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memPrefs) SetMany(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.ops = append(m.ops, "set:"+k)
		m.data[k] = v
	}
	return nil
}

func (m *memPrefs) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		m.ops = append(m.ops, "delete:"+k)
		delete(m.data, k)
	}
	return nil
}

func (m *memPrefs) All(context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.data), nil
}

func (m *memPrefs) value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memPrefs) opIndex(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.ops {
		if o == op {
			return i
		}
	}
	return -1
}

func (m *memPrefs) lastOpIndex(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.ops) - 1; i >= 0; i-- {
		if m.ops[i] == op {
			return i
		}
	}
	return -1
}

// returningLearner is a profile that starts on the home screen.
func returningLearner() map[string]string {
	return map[string]string{
		KeySchemaVersion: "1",
		KeyUILanguage:    "es",
		KeyUserName:      "Lena",
		KeyEnglishLevel:  "Intermediate",
	}
}

func newController(p llm.Provider, prefs Preferences) *Controller {
	return New(Options{Prefs: prefs, Provider: p})
}

func placementJSON(n int) json.RawMessage {
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

func quizJSON() json.RawMessage {
	words := []string{"brave", "eager", "vast", "fragile", "swift"}
	qs := make([]vocab.Question, len(words))
	for i, w := range words {
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

func tipsJSON() json.RawMessage {
	return json.RawMessage(`{"tips":[{"title":"Lee","description":"Lee en voz alta."}],"challenge":"Escribe tres frases."}`)
}

// perform runs effects and everything they lead to, failing on any error.
func perform(t *testing.T, c *Controller, effects ...Effect) {
	t.Helper()
	for len(effects) > 0 {
		e := effects[0]
		effects = effects[1:]
		next, err := c.Perform(t.Context(), e)
		require.NoError(t, err, "perform %s", e)
		effects = append(effects, next...)
	}
}

// gatedProvider blocks Generate and Stream until released. Generate
// ignores cancellation so late results can be observed.
type gatedProvider struct {
	llm.MockProvider
	started chan struct{}
	release chan struct{}
	content json.RawMessage
}

func newGatedProvider(content json.RawMessage) *gatedProvider {
	return &gatedProvider{started: make(chan struct{}, 8), release: make(chan struct{}), content: content}
}

func (g *gatedProvider) Generate(context.Context, llm.Request) (*llm.Response, error) {
	g.started <- struct{}{}
	<-g.release
	return &llm.Response{Content: g.content, Model: "gated"}, nil
}

func (g *gatedProvider) Stream(ctx context.Context, _ llm.Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		g.started <- struct{}{}
		if !yield("Hi", nil) {
			return
		}
		select {
		case <-g.release:
		case <-ctx.Done():
			yield("", ctx.Err())
		}
	}
}
