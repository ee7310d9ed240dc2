package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-vocab-question",
		Description: "A multiple-choice vocabulary question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"word":          map[string]any{"type": "string"},
				"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 4, "maxItems": 4},
				"correctAnswer": map[string]any{"type": "string"},
				"level":         map[string]any{"type": "string", "enum": []any{"Beginner", "Intermediate", "Advanced"}},
			},
			"required": []any{"word", "options", "correctAnswer"},
		},
	}
}

func TestDecodeStructured(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "valid",
			raw:  `{"word":"ubiquitous","options":["rare","everywhere","loud","tiny"],"correctAnswer":"everywhere","level":"Advanced"}`,
			want: `{"word":"ubiquitous","options":["rare","everywhere","loud","tiny"],"correctAnswer":"everywhere","level":"Advanced"}`,
		},
		{
			name: "valid without optional",
			raw:  `{"word":"cat","options":["dog","cat","cow","car"],"correctAnswer":"cat"}`,
			want: `{"word":"cat","options":["dog","cat","cow","car"],"correctAnswer":"cat"}`,
		},
		{
			name: "json fence",
			raw:  "```json\n{\"word\":\"cat\",\"options\":[\"dog\",\"cat\",\"cow\",\"car\"],\"correctAnswer\":\"cat\"}\n```\n",
			want: `{"word":"cat","options":["dog","cat","cow","car"],"correctAnswer":"cat"}`,
		},
		{
			name: "bare fence on one line",
			raw:  "```{\"word\":\"cat\",\"options\":[\"dog\",\"cat\",\"cow\",\"car\"],\"correctAnswer\":\"cat\"}```",
			want: `{"word":"cat","options":["dog","cat","cow","car"],"correctAnswer":"cat"}`,
		},
		{
			name:    "missing required",
			raw:     `{"word":"cat","options":["dog","cat","cow","car"]}`,
			wantErr: true,
		},
		{
			name:    "wrong option count",
			raw:     `{"word":"cat","options":["dog","cat"],"correctAnswer":"cat"}`,
			wantErr: true,
		},
		{
			name:    "enum violation",
			raw:     `{"word":"cat","options":["dog","cat","cow","car"],"correctAnswer":"cat","level":"Expert"}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			raw:     `Sure! Here is your question:`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeStructured(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeStructured() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
				if string(invErr.Content) != tt.raw {
					t.Fatalf("expected raw content to be preserved")
				}
				return
			}
			if string(got) != tt.want {
				t.Fatalf("decodeStructured() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecodeStructured_NilSchema(t *testing.T) {
	got, err := decodeStructured(nil, json.RawMessage("```anything```"))
	if err != nil {
		t.Fatalf("expected nil schema to skip validation, got: %v", err)
	}
	if string(got) != "```anything```" {
		t.Fatalf("nil schema must not rewrite content, got %s", got)
	}
}

func TestDecodeStructured_SchemaCached(t *testing.T) {
	s := testSchema()
	raw := json.RawMessage(`{"word":"cat","options":["dog","cat","cow","car"],"correctAnswer":"cat"}`)
	for range 2 {
		if _, err := decodeStructured(s, raw); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, ok := compiled.Load(s.Name); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
