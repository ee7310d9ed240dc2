package session

import (
	"context"
	"fmt"

	"github.com/abhisek/lingo/internal/dailytips"
)

// Home returns a copy of today's content, or nil while it is loading or
// after it failed.
func (c *Controller) Home() *dailytips.Content {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.home == nil {
		return nil
	}
	out := *c.home
	out.Tips = append([]dailytips.Tip(nil), c.home.Tips...)
	return &out
}

func (c *Controller) loadHome(ctx context.Context, epoch uint64) error {
	c.mu.Lock()
	if c.sess.AppState != StateHome || c.home != nil {
		c.mu.Unlock()
		return nil
	}
	level, lang := c.sess.Profile.EnglishLevel, c.sess.Profile.UILanguage
	c.mu.Unlock()

	var (
		content *dailytips.Content
		err     = c.providerErr
	)
	if c.tipsSvc != nil {
		content, err = c.tipsSvc.Fetch(ctx, level, lang)
	}

	return c.commit(epoch, ChangeFlow, func() error {
		if err != nil {
			c.log.Warn("home content failed", "error", err)
			c.banner = err
			return err
		}
		c.home = content
		return nil
	})
}

// RetryHome re-requests home content after a failure.
func (c *Controller) RetryHome() ([]Effect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess.AppState != StateHome || c.home != nil {
		return nil, fmt.Errorf("retry home: %w", ErrNotAvailable)
	}
	c.banner = nil
	return []Effect{LoadHomeContent}, nil
}
