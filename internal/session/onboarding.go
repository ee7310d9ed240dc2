package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/lingo/internal/i18n"
	"github.com/abhisek/lingo/internal/profile"
)

// SelectLanguage stores the UI language and moves on to the next step the
// learner has not completed: onboarding for a new learner, home otherwise.
func (c *Controller) SelectLanguage(ctx context.Context, code string) ([]Effect, error) {
	if !i18n.Supported(code) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}

	c.mu.Lock()
	if c.sess.AppState != StateLanguageSelection {
		c.mu.Unlock()
		return nil, fmt.Errorf("select language: %w", ErrNotAvailable)
	}
	if err := c.prefs.SetMany(ctx, map[string]string{KeyUILanguage: code}); err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("save language: %w", err)
	}
	if c.sess.Profile.UILanguage != code {
		// The tutor persona names the learner's language.
		c.conv = nil
	}
	c.sess.Profile.UILanguage = code
	effects, err := c.navigateLocked(firstIncomplete(c.sess.Profile))
	ch := c.changeLocked(ChangeState)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	c.publish(ch)
	return effects, nil
}

// SubmitName stores the trimmed name and starts the placement test.
func (c *Controller) SubmitName(ctx context.Context, name string) ([]Effect, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	c.mu.Lock()
	if c.sess.AppState != StateOnboarding {
		c.mu.Unlock()
		return nil, fmt.Errorf("submit name: %w", ErrNotAvailable)
	}
	if err := c.prefs.SetMany(ctx, map[string]string{KeyUserName: name}); err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("save name: %w", err)
	}
	c.sess.Profile.UserName = name
	effects, err := c.navigateLocked(StatePlacementTest)
	ch := c.changeLocked(ChangeState)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	c.publish(ch)
	return effects, nil
}

// SetTheme stores the colour theme.
func (c *Controller) SetTheme(ctx context.Context, t profile.Theme) error {
	if !t.Valid() {
		return fmt.Errorf("unknown theme %q", t)
	}
	c.mu.Lock()
	if err := c.prefs.SetMany(ctx, map[string]string{KeyTheme: string(t)}); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("save theme: %w", err)
	}
	c.sess.Profile.Theme = t
	ch := c.changeLocked(ChangeProfile)
	c.mu.Unlock()
	c.publish(ch)
	return nil
}

// ResetProfile deletes every persisted key, drops all session state and
// returns to language selection. It is allowed from any state.
func (c *Controller) ResetProfile(ctx context.Context) error {
	c.mu.Lock()
	all, err := c.prefs.All(ctx)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("reset: %w", err)
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	if err := c.prefs.Delete(ctx, keys...); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("reset: %w", err)
	}
	if err := c.prefs.SetMany(ctx, map[string]string{KeySchemaVersion: strconv.Itoa(SchemaVersion)}); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("reset: %w", err)
	}

	c.bumpEpochLocked()
	c.placement = nil
	c.home = nil
	c.conv = nil
	c.chatErr = nil
	c.quiz = nil
	c.feedbackErr = nil
	c.banner = nil
	c.sess = Session{
		Profile:  profile.Profile{Theme: c.defaultTheme},
		AppState: StateLanguageSelection,
	}
	ch := c.changeLocked(ChangeState)
	c.mu.Unlock()

	c.log.Info("profile reset", "keys", len(keys))
	c.publish(ch)
	return nil
}
