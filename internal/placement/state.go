package placement

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrWrongPhase is returned when an action does not fit the current phase.
	ErrWrongPhase = errors.New("placement: action not allowed in this phase")

	// ErrUnknownOption is returned when an answer is not one of the options.
	ErrUnknownOption = errors.New("placement: answer is not one of the options")
)

// State tracks one run through the placement test. The zero value is a test
// still being generated.
type State struct {
	phase     Phase
	questions []Question
	answers   []string
	current   int
	result    *Result
	failed    bool
}

// Begin installs freshly generated questions and moves to taking.
func (s *State) Begin(questions []Question) error {
	if s.phase != PhaseGenerating {
		return fmt.Errorf("begin: %w", ErrWrongPhase)
	}
	if len(questions) == 0 {
		return errors.New("placement: no questions")
	}
	s.questions = slices.Clone(questions)
	s.answers = make([]string, 0, len(questions))
	s.current = 0
	s.phase = PhaseTaking
	return nil
}

// Answer records the answer to the current question. The last answer moves
// the test to evaluating.
func (s *State) Answer(option string) error {
	if s.phase != PhaseTaking || s.current >= len(s.questions) {
		return fmt.Errorf("answer: %w", ErrWrongPhase)
	}
	q := s.questions[s.current]
	if !slices.Contains(q.Options, option) {
		return ErrUnknownOption
	}
	s.answers = append(s.answers[:s.current], option)
	s.current++
	if s.current == len(s.questions) {
		s.phase = PhaseEvaluating
	}
	return nil
}

// Answered returns every question with its answer, in question order.
func (s *State) Answered() []Answered {
	out := make([]Answered, len(s.answers))
	for i, a := range s.answers {
		out[i] = Answered{
			Question:      s.questions[i].Question,
			Answer:        a,
			CorrectAnswer: s.questions[i].CorrectAnswer,
		}
	}
	return out
}

// EvaluationFailed returns to taking with every answer kept and no question
// open. RetryEvaluation grades the same answers again.
func (s *State) EvaluationFailed() {
	if s.phase != PhaseEvaluating {
		return
	}
	s.phase = PhaseTaking
	s.failed = true
}

// RetryEvaluation moves a failed test back to evaluating.
func (s *State) RetryEvaluation() error {
	if s.phase != PhaseTaking || !s.failed {
		return fmt.Errorf("retry evaluation: %w", ErrWrongPhase)
	}
	s.failed = false
	s.phase = PhaseEvaluating
	return nil
}

// Failed reports whether the last evaluation attempt failed.
func (s *State) Failed() bool { return s.failed }

// Complete stores the evaluation result.
func (s *State) Complete(r Result) error {
	if s.phase != PhaseEvaluating {
		return fmt.Errorf("complete: %w", ErrWrongPhase)
	}
	s.result = &r
	s.phase = PhaseResults
	return nil
}

func (s *State) Phase() Phase { return s.phase }

// Current returns the index of the question being asked.
func (s *State) Current() int { return s.current }

// Questions returns a copy of the test questions.
func (s *State) Questions() []Question { return slices.Clone(s.questions) }

// Question returns the question being asked, if any.
func (s *State) Question() (Question, bool) {
	if s.phase != PhaseTaking || s.current >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// Result returns the evaluation result once the test is complete.
func (s *State) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Clone returns an independent copy for read-only use by other goroutines.
func (s *State) Clone() *State {
	c := *s
	c.questions = slices.Clone(s.questions)
	c.answers = slices.Clone(s.answers)
	if s.result != nil {
		r := *s.result
		c.result = &r
	}
	return &c
}
