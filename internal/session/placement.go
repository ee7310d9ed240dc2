package session

import (
	"context"
	"fmt"

	"github.com/abhisek/lingo/internal/placement"
)

// Placement returns a copy of the placement test, or nil outside it.
func (c *Controller) Placement() *placement.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.placement == nil {
		return nil
	}
	return c.placement.Clone()
}

func (c *Controller) generatePlacement(ctx context.Context, epoch uint64) error {
	c.mu.Lock()
	if c.placement == nil || c.placement.Phase() != placement.PhaseGenerating {
		c.mu.Unlock()
		return nil
	}
	lang := c.sess.Profile.UILanguage
	c.mu.Unlock()

	var (
		qs  []placement.Question
		err = c.providerErr
	)
	if c.placementSvc != nil {
		qs, err = c.placementSvc.Generate(ctx, lang)
	}

	return c.commit(epoch, ChangeFlow, func() error {
		if c.placement.Phase() != placement.PhaseGenerating {
			return nil
		}
		if err == nil {
			err = c.placement.Begin(qs)
		}
		if err != nil {
			c.log.Warn("placement generation failed", "error", err)
			c.banner = err
		}
		return err
	})
}

// AnswerPlacement answers the current question. The last answer returns
// EvaluatePlacement.
func (c *Controller) AnswerPlacement(option string) ([]Effect, error) {
	c.mu.Lock()
	if c.sess.AppState != StatePlacementTest || c.placement == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("answer: %w", ErrNotAvailable)
	}
	if err := c.placement.Answer(option); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.banner = nil
	var effects []Effect
	if c.placement.Phase() == placement.PhaseEvaluating {
		effects = append(effects, EvaluatePlacement)
	}
	ch := c.changeLocked(ChangeFlow)
	c.mu.Unlock()
	c.publish(ch)
	return effects, nil
}

// evaluatePlacement grades the test and stores the level. On failure the
// test reverts to taking with every answer kept, and RetryPlacement grades
// the same answers again.
func (c *Controller) evaluatePlacement(ctx context.Context, epoch uint64) error {
	c.mu.Lock()
	if c.placement == nil || c.placement.Phase() != placement.PhaseEvaluating {
		c.mu.Unlock()
		return nil
	}
	answered := c.placement.Answered()
	lang := c.sess.Profile.UILanguage
	c.mu.Unlock()

	var (
		res placement.Result
		err = c.providerErr
	)
	if c.placementSvc != nil {
		res, err = c.placementSvc.Evaluate(ctx, answered, lang)
	}

	return c.commit(epoch, ChangeFlow, func() error {
		if c.placement.Phase() != placement.PhaseEvaluating {
			return nil
		}
		if err == nil {
			if err = c.prefs.SetMany(ctx, map[string]string{KeyEnglishLevel: string(res.Level)}); err != nil {
				err = fmt.Errorf("save level: %w", err)
			}
		}
		if err != nil {
			c.log.Warn("placement evaluation failed", "error", err)
			c.placement.EvaluationFailed()
			c.banner = err
			return err
		}
		c.sess.Profile.EnglishLevel = res.Level
		c.log.Info("placement complete", "level", string(res.Level))
		return c.placement.Complete(res)
	})
}

// RetryPlacement re-requests a test whose generation failed, or grades the
// kept answers again after a failed evaluation.
func (c *Controller) RetryPlacement() ([]Effect, error) {
	c.mu.Lock()
	if c.placement == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("retry placement: %w", ErrNotAvailable)
	}
	var effect Effect
	switch {
	case c.placement.Phase() == placement.PhaseGenerating:
		effect = GeneratePlacementTest
	case c.placement.Failed():
		if err := c.placement.RetryEvaluation(); err != nil {
			c.mu.Unlock()
			return nil, err
		}
		effect = EvaluatePlacement
	default:
		c.mu.Unlock()
		return nil, fmt.Errorf("retry placement: %w", ErrNotAvailable)
	}
	c.banner = nil
	ch := c.changeLocked(ChangeFlow)
	c.mu.Unlock()
	c.publish(ch)
	return []Effect{effect}, nil
}

// FinishPlacement leaves the results screen for home. The level was
// stored when the evaluation succeeded.
func (c *Controller) FinishPlacement() ([]Effect, error) {
	c.mu.Lock()
	if c.placement == nil || c.placement.Phase() != placement.PhaseResults {
		c.mu.Unlock()
		return nil, fmt.Errorf("finish placement: %w", ErrNotAvailable)
	}
	c.mu.Unlock()
	return c.Navigate(StateHome)
}
