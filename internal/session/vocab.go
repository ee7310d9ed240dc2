package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lingo/internal/vocab"
)

// Quiz returns a copy of the vocabulary quiz, or nil outside it.
func (c *Controller) Quiz() *vocab.Quiz {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quiz == nil {
		return nil
	}
	return c.quiz.Clone()
}

// FeedbackError returns why the quiz feedback sentence is missing. The
// score is shown regardless.
func (c *Controller) FeedbackError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feedbackErr
}

// generateQuiz fills the quiz. On failure the learner is sent home with a
// banner, and home's entry effects are returned.
func (c *Controller) generateQuiz(ctx context.Context, epoch uint64) ([]Effect, error) {
	c.mu.Lock()
	if c.quiz == nil || c.quiz.Phase() != vocab.PhaseGenerating {
		c.mu.Unlock()
		return nil, nil
	}
	level := c.sess.Profile.EnglishLevel
	c.mu.Unlock()

	var (
		qs  []vocab.Question
		err = c.providerErr
	)
	if c.vocabSvc != nil {
		qs, err = c.vocabSvc.Generate(ctx, level)
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return nil, ErrStale
	}
	if c.quiz.Phase() != vocab.PhaseGenerating {
		c.mu.Unlock()
		return nil, nil
	}
	if err == nil {
		err = c.quiz.Begin(qs)
	}
	if err == nil {
		ch := c.changeLocked(ChangeFlow)
		c.mu.Unlock()
		c.publish(ch)
		return nil, nil
	}

	c.log.Warn("vocabulary quiz generation failed", "error", err)
	effects, navErr := c.navigateLocked(StateHome)
	c.banner = err
	ch := c.changeLocked(ChangeState)
	c.mu.Unlock()
	c.publish(ch)
	if navErr != nil {
		return nil, errors.Join(err, navErr)
	}
	return effects, err
}

// SelectVocab answers the current question. Later selections on the same
// question return vocab.ErrLocked.
func (c *Controller) SelectVocab(option string) error {
	c.mu.Lock()
	if c.sess.AppState != StateVocabularyQuiz || c.quiz == nil {
		c.mu.Unlock()
		return fmt.Errorf("select: %w", ErrNotAvailable)
	}
	if err := c.quiz.Select(option); err != nil {
		c.mu.Unlock()
		return err
	}
	ch := c.changeLocked(ChangeFlow)
	c.mu.Unlock()
	c.publish(ch)
	return nil
}

// NextVocab moves to the next question. After the last one the quiz is
// scored and VocabFeedback is returned.
func (c *Controller) NextVocab() ([]Effect, error) {
	c.mu.Lock()
	if c.sess.AppState != StateVocabularyQuiz || c.quiz == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("next: %w", ErrNotAvailable)
	}
	if err := c.quiz.Next(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	var effects []Effect
	if c.quiz.Phase() == vocab.PhaseResults {
		effects = append(effects, VocabFeedback)
		if r, ok := c.quiz.Result(); ok {
			c.log.Info("vocabulary quiz scored", "score", r.Score, "total", r.Total)
		}
	}
	ch := c.changeLocked(ChangeFlow)
	c.mu.Unlock()
	c.publish(ch)
	return effects, nil
}

func (c *Controller) quizFeedback(ctx context.Context, epoch uint64) error {
	c.mu.Lock()
	if c.quiz == nil || c.quiz.Phase() != vocab.PhaseResults || c.quiz.Feedback() != "" {
		c.mu.Unlock()
		return nil
	}
	res, _ := c.quiz.Result()
	level, lang := c.sess.Profile.EnglishLevel, c.sess.Profile.UILanguage
	c.mu.Unlock()

	if c.vocabSvc == nil {
		return c.commit(epoch, ChangeFlow, func() error {
			c.feedbackErr = c.providerErr
			return c.providerErr
		})
	}

	for frag, err := range c.vocabSvc.Feedback(ctx, res, level, lang) {
		if err != nil {
			return c.commit(epoch, ChangeFlow, func() error {
				c.log.Warn("quiz feedback failed", "error", err)
				c.feedbackErr = err
				return err
			})
		}
		if err := c.commit(epoch, ChangeFlow, func() error {
			c.quiz.AppendFeedback(frag)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// RestartVocab starts a new quiz from the results screen.
func (c *Controller) RestartVocab() ([]Effect, error) {
	c.mu.Lock()
	if c.sess.AppState != StateVocabularyQuiz || c.quiz == nil || c.quiz.Phase() != vocab.PhaseResults {
		c.mu.Unlock()
		return nil, fmt.Errorf("restart quiz: %w", ErrNotAvailable)
	}
	c.bumpEpochLocked()
	c.quiz = &vocab.Quiz{}
	c.feedbackErr = nil
	c.banner = nil
	ch := c.changeLocked(ChangeFlow)
	c.mu.Unlock()
	c.publish(ch)
	return []Effect{GenerateVocabQuiz}, nil
}
