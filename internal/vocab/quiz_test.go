package vocab

import (
	"errors"
	"testing"
)

func quizQuestions() []Question {
	words := []string{"brave", "eager", "vast", "fragile", "swift"}
	qs := make([]Question, len(words))
	for i, w := range words {
		qs[i] = Question{
			Question:      "Which word fits? #" + w,
			Options:       []string{w, "other1", "other2", "other3"},
			CorrectAnswer: w,
			Definition:    "definition of " + w,
		}
	}
	return qs
}

func TestQuiz_ThreeOfFive(t *testing.T) {
	var q Quiz
	if err := q.Begin(quizQuestions()); err != nil {
		t.Fatal(err)
	}
	picks := []string{"brave", "other1", "vast", "", "swift"}
	for i, p := range picks {
		if p != "" {
			if err := q.Select(p); err != nil {
				t.Fatalf("select %d: %v", i, err)
			}
		}
		if err := q.Next(); err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
	}

	if q.Phase() != PhaseResults {
		t.Fatalf("phase = %v", q.Phase())
	}
	r, ok := q.Result()
	if !ok {
		t.Fatal("no result")
	}
	if r.Score != 3 || r.Total != 5 || len(r.Review) != 2 {
		t.Fatalf("result = %+v", r)
	}
	if r.Review[0].Word != "eager" || r.Review[0].Answer != "other1" {
		t.Errorf("review[0] = %+v", r.Review[0])
	}
	if r.Review[1].Word != "fragile" || r.Review[1].Answer != "" || r.Review[1].Definition != "definition of fragile" {
		t.Errorf("review[1] = %+v", r.Review[1])
	}
}

func TestQuiz_ScoreInvariant(t *testing.T) {
	for mask := 0; mask < 1<<5; mask++ {
		var q Quiz
		_ = q.Begin(quizQuestions())
		for i, question := range quizQuestions() {
			if mask&(1<<i) != 0 {
				_ = q.Select(question.CorrectAnswer)
			} else {
				_ = q.Select("other2")
			}
			_ = q.Next()
		}
		r, _ := q.Result()
		if r.Score+len(r.Review) != r.Total {
			t.Fatalf("mask %05b: %d + %d != %d", mask, r.Score, len(r.Review), r.Total)
		}
	}
}

func TestQuiz_SelectionLocks(t *testing.T) {
	var q Quiz
	_ = q.Begin(quizQuestions())
	if err := q.Select("other1"); err != nil {
		t.Fatal(err)
	}
	if err := q.Select("brave"); !errors.Is(err, ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
	_, picked, _ := q.Question()
	if picked != "other1" {
		t.Fatalf("selection changed to %q", picked)
	}
	_ = q.Next()
	if err := q.Select("eager"); err != nil {
		t.Fatalf("next question still locked: %v", err)
	}
}

func TestQuiz_RejectsUnknownOption(t *testing.T) {
	var q Quiz
	_ = q.Begin(quizQuestions())
	if err := q.Select("nope"); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("err = %v", err)
	}
}

func TestQuiz_WrongPhase(t *testing.T) {
	var q Quiz
	if err := q.Select("x"); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("select before begin: %v", err)
	}
	_ = q.Begin(quizQuestions()[:1])
	_ = q.Next()
	if err := q.Next(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("next after results: %v", err)
	}
}
