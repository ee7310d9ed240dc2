package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/app"
	"github.com/abhisek/lingo/internal/chat"
	"github.com/abhisek/lingo/internal/config"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/logger"
	"github.com/abhisek/lingo/internal/placement"
	"github.com/abhisek/lingo/internal/profile"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/speech"
	"github.com/abhisek/lingo/internal/store"
	"github.com/abhisek/lingo/internal/vocab"
)

// runtime is everything a command needs, opened from config and flags.
type runtime struct {
	cfg   config.Config
	store *store.Store
	log   *logger.Logger
	ctrl  *session.Controller
}

func (r *runtime) Close() {
	r.log.Sync()
	r.store.Close()
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{Path: path})
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug, _ = cmd.Flags().GetBool("debug")
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file and LINGO_DB env var, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func resolveLogPath(cfg config.Config) (string, error) {
	if cfg.LogPath != "" {
		return cfg.LogPath, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lingo.log"), nil
}

// openStore opens only the database, for commands that never call the model.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// setup opens the store, the log and the model gateway and builds the
// session controller over them. A missing provider is not an error; the
// screens that need it say so.
func setup(cmd *cobra.Command) (*runtime, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logPath, err := resolveLogPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	log, err := logger.New(logger.Options{Path: logPath, Debug: cfg.Debug})
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	opts := session.Options{
		Prefs:      st.Preferences(),
		Translator: chat.GoogleTranslator{},
		Speech:     speech.System(),
		Theme:      profile.Theme(cfg.Theme),
		Log:        log,
	}
	opts.Placement = placement.DefaultConfig()
	opts.Placement.Questions = cfg.PlacementQuestions
	opts.Vocab = vocab.DefaultConfig()
	opts.Vocab.Questions = cfg.VocabQuestions

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.Events(), log)
	switch {
	case err == nil:
		opts.Provider = provider
		log.Info("llm provider ready", "provider", cfg.LLM.Provider, "model", provider.ModelID())
	case errors.Is(err, llm.ErrNotConfigured):
		opts.ProviderErr = err
		log.Warn("llm provider not configured", "error", err)
	default:
		opts.ProviderErr = err
		log.Error("llm provider failed to initialize", "error", err)
	}

	return &runtime{cfg: cfg, store: st, log: log, ctrl: session.New(opts)}, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(cmd.Context(), app.Options{Ctrl: rt.ctrl, Log: rt.log})
}
