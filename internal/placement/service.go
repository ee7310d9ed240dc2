package placement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/profile"
)

// Service talks to the model for test generation and evaluation.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a placement service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Config returns the service settings.
func (s *Service) Config() Config { return s.cfg }

type testOutput struct {
	Questions []Question `json:"questions"`
}

// Generate asks the model for a new test. lang is the learner's UI language
// code. Malformed questions are rejected rather than repaired.
func (s *Service) Generate(ctx context.Context, lang string) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "placement-generate")

	req := llm.UserPrompt(generateSystemPrompt, buildGenerateUserMessage(s.cfg.Questions, i18n.Name(lang)))
	req.Schema = TestSchema
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("placement generation: %w", err)
	}

	var out testOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse placement test: %w", err)
	}
	if len(out.Questions) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("placement test has no questions")}
	}
	for i, q := range out.Questions {
		if err := checkQuestion(q); err != nil {
			return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("question %d: %w", i+1, err)}
		}
	}
	if len(out.Questions) > s.cfg.Questions {
		out.Questions = out.Questions[:s.cfg.Questions]
	}
	return out.Questions, nil
}

func checkQuestion(q Question) error {
	if q.Question == "" {
		return fmt.Errorf("empty question")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("want %d options, got %d", OptionCount, len(q.Options))
	}
	if !slices.Contains(q.Options, q.CorrectAnswer) {
		return fmt.Errorf("correct answer %q is not an option", q.CorrectAnswer)
	}
	return nil
}

// Evaluate sends every answered question, in order, and returns the level.
func (s *Service) Evaluate(ctx context.Context, answered []Answered, lang string) (Result, error) {
	ctx = llm.WithPurpose(ctx, "placement-evaluate")

	req := llm.UserPrompt(evaluateSystemPrompt, buildEvaluateUserMessage(answered, i18n.Name(lang)))
	req.Schema = EvaluationSchema
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = 0.2

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("placement evaluation: %w", err)
	}

	var out Result
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Result{}, fmt.Errorf("parse placement evaluation: %w", err)
	}
	level, err := profile.ParseLevel(string(out.Level))
	if err != nil {
		return Result{}, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	out.Level = level
	return out, nil
}
