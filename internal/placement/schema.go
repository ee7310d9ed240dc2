package placement

import (
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/profile"
)

// TestSchema defines the JSON schema for a generated placement test.
var TestSchema = &llm.Schema{
	Name:        "placement-test",
	Description: "Multiple-choice English placement test",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, in English",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    OptionCount,
							"maxItems":    OptionCount,
							"description": "Exactly four distinct answer options",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied verbatim from options",
						},
					},
					"required":             []any{"question", "options", "correct_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// EvaluationSchema defines the JSON schema for a placement evaluation.
var EvaluationSchema = &llm.Schema{
	Name:        "placement-evaluation",
	Description: "English level classification with feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"level": map[string]any{
				"type": "string",
				"enum": levelEnum(),
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Two or three encouraging sentences about the result",
			},
		},
		"required":             []any{"level", "feedback"},
		"additionalProperties": false,
	},
}

func levelEnum() []any {
	out := make([]any, len(profile.Levels))
	for i, l := range profile.Levels {
		out[i] = string(l)
	}
	return out
}
