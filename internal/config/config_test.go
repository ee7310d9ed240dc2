package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at an empty temp dir so the developer's own
// config and keys never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"LINGO_LLM_PROVIDER", "LINGO_GEMINI_API_KEY", "LINGO_OPENAI_API_KEY",
		"LINGO_THEME", "LINGO_DEBUG", "LINGO_DB", "LINGO_LOG",
		"LINGO_PLACEMENT_QUESTIONS", "LINGO_VOCAB_QUESTIONS",
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 5, cfg.PlacementQuestions)
	assert.Equal(t, 5, cfg.VocabQuestions)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 1, cfg.LLM.Retry.MaxAttempts)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "lingo", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
theme: light
placement_questions: 8
llm:
  provider: anthropic
  anthropic:
    api_key: sk-ant-file
    model: claude-sonnet
  timeout: 30s
`), 0o644))

	cfg, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 8, cfg.PlacementQuestions)
	assert.Equal(t, 5, cfg.VocabQuestions)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant-file", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "claude-sonnet", cfg.LLM.Anthropic.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	// Untouched sections keep their defaults.
	assert.Equal(t, "gemini-flash", cfg.LLM.Gemini.Model)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: light\nvocab_questions: 3\n"), 0o644))

	t.Setenv("LINGO_THEME", "dark")
	t.Setenv("LINGO_DEBUG", "true")

	cfg, err := Load(Options{Path: path, EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 3, cfg.VocabQuestions)
	assert.True(t, cfg.Debug)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("OPENAI_API_KEY=sk-dotenv\n"), 0o644))
	// godotenv skips variables that are already present, even when empty.
	// t.Setenv in isolate restores the original value afterwards.
	os.Unsetenv("OPENAI_API_KEY")

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-dotenv", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := Load(Options{Path: filepath.Join(dir, "nope.yaml"), EnvFile: filepath.Join(dir, "missing.env")})
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")

	tests := []struct {
		name string
		body string
	}{
		{"bad theme", "theme: purple\n"},
		{"zero questions", "placement_questions: 0\n"},
		{"too many questions", "vocab_questions: 50\n"},
		{"malformed yaml", "theme: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := Load(Options{Path: path, EnvFile: filepath.Join(dir, "missing.env")})
			assert.Error(t, err)
		})
	}
}
