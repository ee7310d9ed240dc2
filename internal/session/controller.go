package session

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/abhisek/lingo/internal/chat"
	"github.com/abhisek/lingo/internal/dailytips"
	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/logger"
	"github.com/abhisek/lingo/internal/placement"
	"github.com/abhisek/lingo/internal/profile"
	"github.com/abhisek/lingo/internal/speech"
	"github.com/abhisek/lingo/internal/vocab"
)

// Preferences is the persisted key/value store.
type Preferences interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	All(ctx context.Context) (map[string]string, error)
}

// Options wires the controller's collaborators.
type Options struct {
	Prefs Preferences

	// Provider is nil when no gateway is configured; ProviderErr says why.
	Provider    llm.Provider
	ProviderErr error

	Translator chat.Translator
	Speech     speech.Synthesizer

	Placement placement.Config
	Tips      dailytips.Config
	Chat      chat.Config
	Vocab     vocab.Config

	// Theme is used until the learner picks one.
	Theme profile.Theme

	Log *logger.Logger
}

// Controller owns all session state. Its methods are safe for concurrent
// use; gateway calls run outside the lock.
type Controller struct {
	prefs        Preferences
	provider     llm.Provider
	providerErr  error
	translator   chat.Translator
	synth        speech.Synthesizer
	placementSvc *placement.Service
	tipsSvc      *dailytips.Service
	vocabSvc     *vocab.Service
	chatCfg      chat.Config
	defaultTheme profile.Theme
	log          *logger.Logger

	mu       sync.Mutex
	sess     Session
	epoch    uint64
	epochCtx context.Context
	cancel   context.CancelFunc

	placement   *placement.State
	home        *dailytips.Content
	conv        *chat.Conversation
	chatErr     error
	quiz        *vocab.Quiz
	feedbackErr error
	banner      error

	subs    map[int]func(Change)
	nextSub int
}

// New creates a controller in the loading state. Zero configs fall back to
// each flow's defaults.
func New(opts Options) *Controller {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Speech == nil {
		opts.Speech = speech.Unsupported{}
	}
	if opts.ProviderErr == nil {
		opts.ProviderErr = llm.ErrNotConfigured
	}
	if opts.Placement.Questions == 0 {
		opts.Placement = placement.DefaultConfig()
	}
	if opts.Tips.Tips == 0 {
		opts.Tips = dailytips.DefaultConfig()
	}
	if opts.Chat.MaxTokens == 0 {
		opts.Chat = chat.DefaultConfig()
	}
	if opts.Vocab.Questions == 0 {
		opts.Vocab = vocab.DefaultConfig()
	}
	if !opts.Theme.Valid() {
		opts.Theme = profile.Dark
	}

	c := &Controller{
		prefs:        opts.Prefs,
		provider:     opts.Provider,
		providerErr:  opts.ProviderErr,
		translator:   opts.Translator,
		synth:        opts.Speech,
		chatCfg:      opts.Chat,
		defaultTheme: opts.Theme,
		log:          opts.Log.With("component", "session"),
		sess:         Session{Profile: profile.Profile{Theme: opts.Theme}, AppState: StateLoading},
		subs:         make(map[int]func(Change)),
	}
	if opts.Provider != nil {
		c.placementSvc = placement.NewService(opts.Provider, opts.Placement)
		c.tipsSvc = dailytips.NewService(opts.Provider, opts.Tips)
		c.vocabSvc = vocab.NewService(opts.Provider, opts.Vocab)
	}
	c.epochCtx, c.cancel = context.WithCancel(context.Background())
	return c
}

// Start restores the persisted profile and moves to the first step the
// learner has not completed.
func (c *Controller) Start(ctx context.Context) ([]Effect, error) {
	all, err := c.prefs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	if v, ok := all[KeySchemaVersion]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n > SchemaVersion {
			return nil, fmt.Errorf("%w: %q", ErrSchemaVersion, v)
		}
	} else {
		if err := c.prefs.SetMany(ctx, map[string]string{KeySchemaVersion: strconv.Itoa(SchemaVersion)}); err != nil {
			return nil, fmt.Errorf("write schema version: %w", err)
		}
	}

	p := profile.Profile{UserName: all[KeyUserName], Theme: c.defaultTheme}
	if i18n.Supported(all[KeyUILanguage]) {
		p.UILanguage = all[KeyUILanguage]
	}
	if t, err := profile.ParseTheme(all[KeyTheme]); err == nil {
		p.Theme = t
	}
	if l, err := profile.ParseLevel(all[KeyEnglishLevel]); err == nil {
		p.EnglishLevel = l
	}

	c.mu.Lock()
	if c.sess.AppState != StateLoading {
		c.mu.Unlock()
		return nil, fmt.Errorf("start: %w", ErrNotAvailable)
	}
	c.sess.Profile = p
	effects, err := c.navigateLocked(firstIncomplete(p))
	ch := c.changeLocked(ChangeState)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c.log.Info("session restored", "state", ch.State.String(), "language", p.UILanguage, "level", string(p.EnglishLevel))
	c.publish(ch)
	return effects, nil
}

func firstIncomplete(p profile.Profile) AppState {
	switch {
	case p.UILanguage == "":
		return StateLanguageSelection
	case p.UserName == "":
		return StateOnboarding
	case !p.HasLevel():
		return StatePlacementTest
	}
	return StateHome
}

// Navigate moves to another state and returns the effects its entry needs.
// Any request still running for the old state is cancelled and its result
// will be discarded.
func (c *Controller) Navigate(to AppState) ([]Effect, error) {
	c.mu.Lock()
	effects, err := c.navigateLocked(to)
	ch := c.changeLocked(ChangeState)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	c.publish(ch)
	return effects, nil
}

func (c *Controller) navigateLocked(to AppState) ([]Effect, error) {
	from := c.sess.AppState
	if !slices.Contains(transitions[from], to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if err := c.checkEntryLocked(to); err != nil {
		return nil, err
	}

	c.leaveLocked(from)
	c.bumpEpochLocked()
	c.sess.AppState = to
	c.banner = nil
	c.log.Debug("navigate", "from", from.String(), "to", to.String(), "epoch", c.epoch)
	return c.enterLocked(to), nil
}

func (c *Controller) checkEntryLocked(to AppState) error {
	p := c.sess.Profile
	switch to {
	case StateOnboarding:
		if p.UILanguage == "" {
			return fmt.Errorf("%w: choose a language first", ErrInvalidTransition)
		}
	case StatePlacementTest:
		if p.UserName == "" {
			return fmt.Errorf("%w: enter a name first", ErrInvalidTransition)
		}
	case StateHome, StateChatting, StateVocabularyQuiz:
		if !p.HasLevel() {
			return fmt.Errorf("%w: finish the placement test first", ErrInvalidTransition)
		}
	}
	return nil
}

// leaveLocked drops the sub-state that only belongs to from. The chat
// session survives moves between home and chatting.
func (c *Controller) leaveLocked(from AppState) {
	switch from {
	case StatePlacementTest:
		c.placement = nil
	case StateHome:
		c.home = nil
	case StateVocabularyQuiz:
		c.quiz = nil
		c.feedbackErr = nil
	}
}

func (c *Controller) enterLocked(to AppState) []Effect {
	var effects []Effect
	switch to {
	case StatePlacementTest:
		c.placement = &placement.State{}
		effects = append(effects, GeneratePlacementTest)
	case StateHome:
		if c.home == nil {
			effects = append(effects, LoadHomeContent)
		}
		if c.conv == nil {
			effects = append(effects, InitChatSession)
		}
	case StateChatting:
		if c.conv == nil {
			effects = append(effects, InitChatSession)
		}
	case StateVocabularyQuiz:
		c.quiz = &vocab.Quiz{}
		c.feedbackErr = nil
		effects = append(effects, GenerateVocabQuiz)
	}
	return effects
}

func (c *Controller) bumpEpochLocked() {
	c.cancel()
	c.epoch++
	c.epochCtx, c.cancel = context.WithCancel(context.Background())
}

// Perform runs one effect. It returns follow-up effects, if any. A result
// that arrives after the learner navigated away is dropped with ErrStale.
func (c *Controller) Perform(ctx context.Context, e Effect) ([]Effect, error) {
	c.mu.Lock()
	epoch, ectx := c.epoch, c.epochCtx
	c.mu.Unlock()

	ctx, cancel := bindEpoch(ctx, ectx)
	defer cancel()

	switch e {
	case GeneratePlacementTest:
		return nil, c.generatePlacement(ctx, epoch)
	case EvaluatePlacement:
		return nil, c.evaluatePlacement(ctx, epoch)
	case LoadHomeContent:
		return nil, c.loadHome(ctx, epoch)
	case InitChatSession:
		return nil, c.initChat(ctx, epoch)
	case GenerateVocabQuiz:
		return c.generateQuiz(ctx, epoch)
	case VocabFeedback:
		return nil, c.quizFeedback(ctx, epoch)
	}
	return nil, fmt.Errorf("unknown effect %d", int(e))
}

// bindEpoch returns a context that is also cancelled when the epoch ends.
func bindEpoch(ctx, epochCtx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(epochCtx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// commit applies fn under the lock unless the epoch has moved on, then
// publishes a change of the given kind.
func (c *Controller) commit(epoch uint64, kind ChangeKind, fn func() error) error {
	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return ErrStale
	}
	err := fn()
	ch := c.changeLocked(kind)
	c.mu.Unlock()
	c.publish(ch)
	return err
}

func (c *Controller) changeLocked(kind ChangeKind) Change {
	return Change{Kind: kind, State: c.sess.AppState, Epoch: c.epoch}
}

// Subscribe registers fn for every Change and returns a function that
// removes it. fn is called without the controller's lock held.
func (c *Controller) Subscribe(fn func(Change)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Controller) publish(ch Change) {
	c.mu.Lock()
	fns := slices.Collect(maps.Values(c.subs))
	c.mu.Unlock()
	for _, fn := range fns {
		fn(ch)
	}
}

// Session returns a snapshot of the session.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// Banner returns the error shown above the current screen, if any.
func (c *Controller) Banner() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

// DismissBanner hides the banner.
func (c *Controller) DismissBanner() {
	c.mu.Lock()
	c.banner = nil
	ch := c.changeLocked(ChangeFlow)
	c.mu.Unlock()
	c.publish(ch)
}

// GatewayReady reports whether a model provider is configured.
func (c *Controller) GatewayReady() bool {
	return c.provider != nil
}

// GatewayError explains why the gateway is unavailable.
func (c *Controller) GatewayError() error {
	if c.provider != nil {
		return nil
	}
	return c.providerErr
}
