// Package placement generates and evaluates the English placement test.
package placement

import "github.com/abhisek/lingo/internal/profile"

// OptionCount is the number of choices on every question.
const OptionCount = 4

// Question is one multiple-choice placement question. Immutable once generated.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// Answered pairs a question with the learner's chosen option.
type Answered struct {
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correct_answer"`
}

// Result is the evaluation of a completed test.
type Result struct {
	Level    profile.Level `json:"level"`
	Feedback string        `json:"feedback"`
}

// Phase is the placement sub-state.
type Phase int

const (
	PhaseGenerating Phase = iota
	PhaseTaking
	PhaseEvaluating
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseGenerating:
		return "generating"
	case PhaseTaking:
		return "taking"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseResults:
		return "results"
	}
	return "unknown"
}
