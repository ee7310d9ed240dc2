// Package vocab runs the vocabulary quiz: generation, one locked answer per
// question, scoring and a streamed feedback sentence.
package vocab

import (
	"errors"
	"fmt"
	"slices"
)

// Question is one vocabulary question. Immutable once generated.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Definition    string   `json:"definition"`
}

// Review is a missed word with its definition.
type Review struct {
	Word       string
	Definition string
	Answer     string // empty when skipped
}

// Result summarizes a finished quiz. Score + len(Review) == Total.
type Result struct {
	Score  int
	Total  int
	Review []Review
}

// Phase is the quiz sub-state.
type Phase int

const (
	PhaseGenerating Phase = iota
	PhaseTaking
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseGenerating:
		return "generating"
	case PhaseTaking:
		return "taking"
	case PhaseResults:
		return "results"
	}
	return "unknown"
}

var (
	// ErrLocked is returned when the current question was already answered.
	ErrLocked = errors.New("vocab: answer already selected")

	// ErrWrongPhase is returned when an action does not fit the current phase.
	ErrWrongPhase = errors.New("vocab: action not allowed in this phase")

	// ErrUnknownOption is returned when a selection is not one of the options.
	ErrUnknownOption = errors.New("vocab: selection is not one of the options")
)

// Quiz is one run through a generated quiz. The zero value is a quiz still
// being generated.
type Quiz struct {
	phase     Phase
	questions []Question
	answers   []string
	current   int
	result    *Result
	feedback  string
}

// Begin installs generated questions.
func (q *Quiz) Begin(questions []Question) error {
	if q.phase != PhaseGenerating {
		return fmt.Errorf("begin: %w", ErrWrongPhase)
	}
	if len(questions) == 0 {
		return errors.New("vocab: no questions")
	}
	q.questions = slices.Clone(questions)
	q.answers = make([]string, len(questions))
	q.current = 0
	q.phase = PhaseTaking
	return nil
}

// Select answers the current question. Only one selection is allowed per
// question.
func (q *Quiz) Select(option string) error {
	if q.phase != PhaseTaking {
		return fmt.Errorf("select: %w", ErrWrongPhase)
	}
	if q.answers[q.current] != "" {
		return ErrLocked
	}
	if !slices.Contains(q.questions[q.current].Options, option) {
		return ErrUnknownOption
	}
	q.answers[q.current] = option
	return nil
}

// Next advances to the following question, or scores the quiz after the
// last one. Skipping a question leaves it unanswered.
func (q *Quiz) Next() error {
	if q.phase != PhaseTaking {
		return fmt.Errorf("next: %w", ErrWrongPhase)
	}
	q.current++
	if q.current == len(q.questions) {
		r := q.Score()
		q.result = &r
		q.phase = PhaseResults
	}
	return nil
}

// Score grades the answers given so far by exact match.
func (q *Quiz) Score() Result {
	r := Result{Total: len(q.questions)}
	for i, question := range q.questions {
		if q.answers[i] == question.CorrectAnswer {
			r.Score++
			continue
		}
		r.Review = append(r.Review, Review{
			Word:       question.CorrectAnswer,
			Definition: question.Definition,
			Answer:     q.answers[i],
		})
	}
	return r
}

// SetFeedback stores the streamed feedback text.
func (q *Quiz) SetFeedback(text string) { q.feedback = text }

// AppendFeedback adds a streamed fragment to the feedback text.
func (q *Quiz) AppendFeedback(fragment string) { q.feedback += fragment }

func (q *Quiz) Feedback() string { return q.feedback }

func (q *Quiz) Phase() Phase { return q.phase }

// Current returns the index of the question being asked.
func (q *Quiz) Current() int { return q.current }

// Len returns the number of questions.
func (q *Quiz) Len() int { return len(q.questions) }

// Question returns the current question and the selection made on it.
func (q *Quiz) Question() (Question, string, bool) {
	if q.phase != PhaseTaking {
		return Question{}, "", false
	}
	return q.questions[q.current], q.answers[q.current], true
}

// Result returns the final result once the quiz is over.
func (q *Quiz) Result() (Result, bool) {
	if q.result == nil {
		return Result{}, false
	}
	return *q.result, true
}

// Clone returns an independent copy for read-only use by other goroutines.
func (q *Quiz) Clone() *Quiz {
	c := *q
	c.questions = slices.Clone(q.questions)
	c.answers = slices.Clone(q.answers)
	if q.result != nil {
		r := *q.result
		r.Review = slices.Clone(q.result.Review)
		c.result = &r
	}
	return &c
}
