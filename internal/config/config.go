// Package config assembles lingo's runtime configuration from, in increasing
// priority: built-in defaults, an optional YAML file, a .env file, LINGO_*
// environment variables and finally command-line flags (applied by cmd).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/lingo/internal/llm"
)

// Config is the full runtime configuration.
type Config struct {
	LLM llm.Config `yaml:"llm"`

	// Theme is the initial theme ("dark" or "light") until the learner
	// picks one, which is then persisted.
	Theme string `yaml:"theme"`

	PlacementQuestions int `yaml:"placement_questions"`
	VocabQuestions     int `yaml:"vocab_questions"`

	DBPath  string `yaml:"db_path"`
	LogPath string `yaml:"log_path"`
	Debug   bool   `yaml:"debug"`
}

// Options controls where Load looks for files.
type Options struct {
	// Path is the YAML config file. Empty means DefaultPath(), which may be
	// absent; an explicit Path must exist.
	Path string

	// EnvFile is loaded with godotenv before the environment is read.
	// Defaults to ".env" in the working directory; a missing file is fine.
	EnvFile string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM:                llm.DefaultConfig(),
		Theme:              "dark",
		PlacementQuestions: 5,
		VocabQuestions:     5,
	}
}

// Load builds a Config. Missing credentials are not an error here; the
// screens that need the gateway report llm.ErrNotConfigured themselves.
func Load(opts Options) (Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()

	path := opts.Path
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	if err := readFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	llm.Discover(&cfg.LLM)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges. Provider credentials are checked lazily.
func (c Config) Validate() error {
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("theme must be \"dark\" or \"light\", got %q", c.Theme)
	}
	if c.PlacementQuestions < 1 || c.PlacementQuestions > 20 {
		return fmt.Errorf("placement_questions must be between 1 and 20, got %d", c.PlacementQuestions)
	}
	if c.VocabQuestions < 1 || c.VocabQuestions > 20 {
		return fmt.Errorf("vocab_questions must be between 1 and 20, got %d", c.VocabQuestions)
	}
	return nil
}

// DefaultPath is $XDG_CONFIG_HOME/lingo/config.yaml, falling back to
// ~/.config/lingo/config.yaml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "lingo", "config.yaml"), nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	llm.ApplyEnv(&cfg.LLM)

	if v := os.Getenv("LINGO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("LINGO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LINGO_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v, err := strconv.ParseBool(os.Getenv("LINGO_DEBUG")); err == nil {
		cfg.Debug = v
	}
	if n, err := strconv.Atoi(os.Getenv("LINGO_PLACEMENT_QUESTIONS")); err == nil {
		cfg.PlacementQuestions = n
	}
	if n, err := strconv.Atoi(os.Getenv("LINGO_VOCAB_QUESTIONS")); err == nil {
		cfg.VocabQuestions = n
	}
}
