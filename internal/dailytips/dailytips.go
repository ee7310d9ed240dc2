// Package dailytips fetches the home screen's tips and daily challenge.
package dailytips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/profile"
)

// Tip is one short study tip.
type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Content is what the home screen shows. It is refetched per visit.
type Content struct {
	Tips      []Tip  `json:"tips"`
	Challenge string `json:"challenge"`
}

// Config holds home content generation settings.
type Config struct {
	Tips        int
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Tips:        3,
		MaxTokens:   1024,
		Temperature: 0.9,
	}
}

// ContentSchema defines the JSON schema for home content.
var ContentSchema = &llm.Schema{
	Name:        "daily-tips",
	Description: "Daily English study tips and a small challenge",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tips": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Short tip title (2-6 words)",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "One or two sentences explaining the tip",
						},
					},
					"required":             []any{"title", "description"},
					"additionalProperties": false,
				},
			},
			"challenge": map[string]any{
				"type":        "string",
				"description": "A small task the learner can do today",
			},
		},
		"required":             []any{"tips", "challenge"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a friendly English coach writing a learner's daily dashboard.`

func buildUserMessage(level profile.Level, language string, n int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Learner level: %s\n", level))
	b.WriteString(fmt.Sprintf("Learner's native language: %s\n", language))
	b.WriteString(fmt.Sprintf("Number of tips: %d\n", n))

	b.WriteString(fmt.Sprintf(`
Instructions:
1. Write practical English study tips suited to the level above. Vary the topics: vocabulary, grammar, listening, speaking.
2. Write one challenge the learner can finish in under ten minutes today.
3. Write titles, descriptions and the challenge in %s. Quote any English example words in English.`, language))

	return b.String()
}

// Service fetches home content.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a daily tips service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Fetch asks the model for today's tips and challenge.
func (s *Service) Fetch(ctx context.Context, level profile.Level, lang string) (*Content, error) {
	ctx = llm.WithPurpose(ctx, "daily-tips")

	req := llm.UserPrompt(systemPrompt, buildUserMessage(level, i18n.Name(lang), s.cfg.Tips))
	req.Schema = ContentSchema
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("daily tips: %w", err)
	}

	var out Content
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse daily tips: %w", err)
	}
	if len(out.Tips) == 0 && out.Challenge == "" {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty home content")}
	}
	return &out, nil
}
