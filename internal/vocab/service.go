package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/profile"
)

// OptionCount is the number of choices on every question.
const OptionCount = 4

// Config holds quiz generation settings.
type Config struct {
	Questions   int
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for the vocabulary quiz.
func DefaultConfig() Config {
	return Config{
		Questions:   5,
		MaxTokens:   2048,
		Temperature: 0.9,
	}
}

// QuizSchema defines the JSON schema for a generated vocabulary quiz.
var QuizSchema = &llm.Schema{
	Name:        "vocabulary-quiz",
	Description: "Multiple-choice English vocabulary quiz",
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
							"description": "A sentence with a blank or a 'which word means' prompt",
						},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": OptionCount,
							"maxItems": OptionCount,
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied verbatim from options",
						},
						"definition": map[string]any{
							"type":        "string",
							"description": "A short English definition of the correct word",
						},
					},
					"required":             []any{"question", "options", "correct_answer", "definition"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

const generateSystemPrompt = `You are an English teacher writing a short vocabulary quiz.`

func buildGenerateUserMessage(level profile.Level, n int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Learner level: %s\n", level))
	b.WriteString(fmt.Sprintf("Number of questions: %d\n", n))

	b.WriteString(`
Instructions:
1. Test one useful word per question, chosen for the level above. Do not repeat words.
2. Each question has exactly four options, all the same part of speech, and exactly one correct answer.
3. correct_answer must be copied character for character from options.
4. The definition explains the correct word in simple English in one sentence.`)

	return b.String()
}

const feedbackSystemPrompt = `You are an encouraging English teacher commenting on a vocabulary quiz result.`

func buildFeedbackUserMessage(r Result, level profile.Level, language string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Score: %d of %d\n", r.Score, r.Total))
	b.WriteString(fmt.Sprintf("Learner level: %s\n", level))
	if len(r.Review) > 0 {
		b.WriteString("Missed words:\n")
		for _, w := range r.Review {
			b.WriteString(fmt.Sprintf("- %s\n", w.Word))
		}
	}

	b.WriteString(fmt.Sprintf(`
Instructions:
Write one or two sentences of feedback in %s. Mention one missed word if there is any. Plain text only.`, language))

	return b.String()
}

// Service talks to the model for quiz generation and feedback.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a vocabulary quiz service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type quizOutput struct {
	Questions []Question `json:"questions"`
}

// Generate asks the model for a quiz suited to level.
func (s *Service) Generate(ctx context.Context, level profile.Level) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "vocab-generate")

	req := llm.UserPrompt(generateSystemPrompt, buildGenerateUserMessage(level, s.cfg.Questions))
	req.Schema = QuizSchema
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vocabulary quiz generation: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse vocabulary quiz: %w", err)
	}
	if len(out.Questions) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("quiz has no questions")}
	}
	for i, q := range out.Questions {
		if len(q.Options) != OptionCount || !slices.Contains(q.Options, q.CorrectAnswer) {
			return nil, &llm.ErrInvalidResponse{
				Content: resp.Content,
				Err:     fmt.Errorf("question %d: correct answer must be one of %d options", i+1, OptionCount),
			}
		}
	}
	if len(out.Questions) > s.cfg.Questions {
		out.Questions = out.Questions[:s.cfg.Questions]
	}
	return out.Questions, nil
}

// Feedback streams a short comment on r in the learner's UI language.
func (s *Service) Feedback(ctx context.Context, r Result, level profile.Level, lang string) iter.Seq2[string, error] {
	ctx = llm.WithPurpose(ctx, "vocab-feedback")

	req := llm.UserPrompt(feedbackSystemPrompt, buildFeedbackUserMessage(r, level, i18n.Name(lang)))
	req.MaxTokens = 256
	req.Temperature = 0.7

	return s.provider.Stream(ctx, req)
}
