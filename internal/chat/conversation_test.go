package chat

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/profile"
)

func TestConversation_StreamedFragmentsConcatenate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Fragments: []string{"Hi", " there", "!"}})
	c := NewConversation(mock, "tutor", DefaultConfig(), nil)

	var seen []string
	err := c.Send(t.Context(), "Hello", func() {
		msgs := c.Messages()
		seen = append(seen, msgs[len(msgs)-1].Text)
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	msgs := c.Messages()
	if len(msgs) != 2 || msgs[1].Text != "Hi there!" {
		t.Fatalf("messages = %+v", msgs)
	}
	want := []string{"", "Hi", "Hi there", "Hi there!", "Hi there!"}
	if strings.Join(seen, "|") != strings.Join(want, "|") {
		t.Fatalf("updates = %q, want %q", seen, want)
	}
}

func TestConversation_FailureStripsPlaceholder(t *testing.T) {
	restored := []Message{{Role: RoleUser, Text: "Hi"}, {Role: RoleModel, Text: "Hello!"}}
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	c := NewConversation(mock, "tutor", DefaultConfig(), restored)

	err := c.Send(t.Context(), "How are you?", nil)
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want rate limit", err)
	}

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("messages = %+v", msgs)
	}
	if msgs[2].Role != RoleUser || msgs[2].Text != "How are you?" {
		t.Fatalf("last = %+v", msgs[2])
	}
	if c.Busy() {
		t.Fatal("still busy after failure")
	}
}

func TestConversation_FailedTurnIsNotSavedOrReplayed(t *testing.T) {
	restored := []Message{{Role: RoleUser, Text: "Hi"}, {Role: RoleModel, Text: "Hello!"}}
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{}},
		llm.MockResponse{Fragments: []string{"Sure."}},
	)
	c := NewConversation(mock, "tutor", DefaultConfig(), restored)

	if err := c.Send(t.Context(), "Lost in transit", nil); err == nil {
		t.Fatal("expected failure")
	}
	if err := c.Send(t.Context(), "Again", nil); err != nil {
		t.Fatal(err)
	}
	if got := len(mock.LastCall().Messages); got != 3 {
		t.Fatalf("sent %d messages, want 3", got)
	}
	if got := len(c.Messages()); got != 5 {
		t.Fatalf("log has %d messages, want 5", got)
	}

	saved, err := EncodeHistory(c.Messages())
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeHistory(saved)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range decoded {
		if m.Text == "Lost in transit" {
			t.Fatalf("failed turn saved: %+v", decoded)
		}
	}

	next := llm.NewMockProvider(llm.MockResponse{Fragments: []string{"Welcome back."}})
	resumed := NewConversation(next, "tutor", DefaultConfig(), decoded)
	if err := resumed.Send(t.Context(), "Hello again", nil); err != nil {
		t.Fatal(err)
	}
	sent := next.LastCall().Messages
	if len(sent) != len(decoded)+1 {
		t.Fatalf("resumed session sent %d messages, want %d", len(sent), len(decoded)+1)
	}
	for i := 1; i < len(sent); i++ {
		if sent[i].Role == sent[i-1].Role {
			t.Fatalf("roles do not alternate: %+v", sent)
		}
	}
}

func TestConversation_RestoredHistoryIsSent(t *testing.T) {
	restored := []Message{{Role: RoleUser, Text: "Hi"}, {Role: RoleModel, Text: "Hello!"}}
	mock := llm.NewMockProvider(llm.MockResponse{Fragments: []string{"Fine."}})
	c := NewConversation(mock, "tutor", DefaultConfig(), restored)

	if err := c.Send(t.Context(), "How are you?", nil); err != nil {
		t.Fatal(err)
	}
	call := mock.LastCall()
	if len(call.Messages) != 3 {
		t.Fatalf("sent %d messages, want 3", len(call.Messages))
	}
	if call.Messages[1].Role != llm.RoleAssistant || call.System != "tutor" {
		t.Fatalf("request = %+v", call)
	}
}

func TestConversation_RejectsEmpty(t *testing.T) {
	c := NewConversation(llm.NewMockProvider(), "tutor", DefaultConfig(), nil)
	if err := c.Send(t.Context(), "   ", nil); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("err = %v", err)
	}
	if len(c.Messages()) != 0 {
		t.Fatal("blank message was logged")
	}
}

// gatedProvider streams one fragment and then waits for release.
type gatedProvider struct {
	llm.MockProvider
	started chan struct{}
	release chan struct{}
}

func (g *gatedProvider) Stream(ctx context.Context, _ llm.Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		close(g.started)
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

func TestConversation_BusyRejectsSecondSend(t *testing.T) {
	g := &gatedProvider{started: make(chan struct{}), release: make(chan struct{})}
	c := NewConversation(g, "tutor", DefaultConfig(), nil)

	done := make(chan error, 1)
	go func() { done <- c.Send(context.Background(), "first", nil) }()
	<-g.started

	if err := c.Send(t.Context(), "second", nil); !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}

	close(g.release)
	if err := <-done; err != nil {
		t.Fatalf("first send: %v", err)
	}
	if got := len(c.Messages()); got != 2 {
		t.Fatalf("messages = %d, want 2", got)
	}
}

func TestConversation_Translation(t *testing.T) {
	c := NewConversation(llm.NewMockProvider(), "tutor", DefaultConfig(), []Message{{Role: RoleModel, Text: "Hello"}})
	if !c.SetTranslation(0, "Hola") {
		t.Fatal("SetTranslation failed")
	}
	if m, _ := c.Message(0); m.Translation != "Hola" {
		t.Fatalf("message = %+v", m)
	}
	if c.SetTranslation(5, "x") {
		t.Fatal("out of range accepted")
	}
}

func TestSystemInstruction(t *testing.T) {
	got := SystemInstruction(profile.Profile{UserName: "Lena", UILanguage: "de", EnglishLevel: profile.Beginner})
	for _, want := range []string{"Lena", "Beginner", "German"} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q", want)
		}
	}
}
