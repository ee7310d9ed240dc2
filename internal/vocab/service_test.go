package vocab

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/profile"
)

func TestService_Generate(t *testing.T) {
	content, _ := json.Marshal(quizOutput{Questions: quizQuestions()})
	mock := llm.NewMockProvider(llm.MockResponse{Content: content})

	qs, err := NewService(mock, DefaultConfig()).Generate(t.Context(), profile.Advanced)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(qs) != 5 || qs[2].Definition != "definition of vast" {
		t.Fatalf("questions = %+v", qs)
	}
	call := mock.LastCall()
	if call.Schema != QuizSchema {
		t.Error("expected quiz schema")
	}
	if !strings.Contains(call.Messages[0].Content, "Advanced") {
		t.Error("prompt missing level")
	}
}

func TestService_GenerateRejectsBadAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[
		{"question":"q","options":["a","b","c","d"],"correct_answer":"z","definition":"d"}]}`)})
	_, err := NewService(mock, DefaultConfig()).Generate(t.Context(), profile.Beginner)
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v", err)
	}
}

func TestService_FeedbackStreams(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Fragments: []string{"¡Bien ", "hecho!"}})
	svc := NewService(mock, DefaultConfig())

	r := Result{Score: 3, Total: 5, Review: []Review{{Word: "eager"}, {Word: "fragile"}}}
	var b strings.Builder
	for frag, err := range svc.Feedback(t.Context(), r, profile.Beginner, "es") {
		if err != nil {
			t.Fatal(err)
		}
		b.WriteString(frag)
	}
	if b.String() != "¡Bien hecho!" {
		t.Fatalf("feedback = %q", b.String())
	}
	prompt := mock.LastCall().Messages[0].Content
	for _, want := range []string{"Score: 3 of 5", "eager", "Spanish"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
