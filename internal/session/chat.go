package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lingo/internal/chat"
	"github.com/abhisek/lingo/internal/i18n"
)

// ChatMessages returns a copy of the chat log.
func (c *Controller) ChatMessages() []chat.Message {
	c.mu.Lock()
	conv := c.conv
	c.mu.Unlock()
	if conv == nil {
		return nil
	}
	return conv.Messages()
}

// ChatBusy reports whether a reply is streaming.
func (c *Controller) ChatBusy() bool {
	c.mu.Lock()
	conv := c.conv
	c.mu.Unlock()
	return conv != nil && conv.Busy()
}

// ChatError returns the inline error from the last chat action.
func (c *Controller) ChatError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatErr
}

// ChatReady reports whether a chat session exists.
func (c *Controller) ChatReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv != nil
}

func (c *Controller) initChat(ctx context.Context, epoch uint64) error {
	c.mu.Lock()
	if c.conv != nil {
		c.mu.Unlock()
		return nil
	}
	p := c.sess.Profile
	c.mu.Unlock()

	if c.provider == nil {
		return c.commit(epoch, ChangeChat, func() error {
			c.chatErr = c.providerErr
			return c.providerErr
		})
	}

	var restored []chat.Message
	raw, ok, err := c.prefs.Get(ctx, KeyChatHistory)
	if err != nil {
		return fmt.Errorf("load chat history: %w", err)
	}
	if ok {
		if restored, err = chat.DecodeHistory(raw); err != nil {
			c.log.Warn("discarding unreadable chat history", "error", err)
			restored = nil
		}
	}

	conv := chat.NewConversation(c.provider, chat.SystemInstruction(p), c.chatCfg, restored)
	return c.commit(epoch, ChangeChat, func() error {
		if c.conv == nil {
			c.conv = conv
			c.chatErr = nil
			c.log.Debug("chat session created", "session_id", conv.ID(), "restored", len(restored))
		}
		return nil
	})
}

// SendChat sends text to the tutor and streams the reply into the log,
// publishing a ChangeChat per fragment. The history is persisted once the
// reply completes. While a reply streams further sends return ErrBusy.
func (c *Controller) SendChat(ctx context.Context, text string) error {
	c.mu.Lock()
	conv, epoch, ectx := c.conv, c.epoch, c.epochCtx
	if conv == nil {
		c.mu.Unlock()
		return ErrNoChat
	}
	c.mu.Unlock()

	ctx, cancel := bindEpoch(ctx, ectx)
	defer cancel()

	err := conv.Send(ctx, text, func() {
		c.mu.Lock()
		if c.conv == conv && c.epoch == epoch {
			c.chatErr = nil
		}
		ch := c.changeLocked(ChangeChat)
		c.mu.Unlock()
		c.publish(ch)
	})
	if errors.Is(err, chat.ErrBusy) || errors.Is(err, chat.ErrEmptyMessage) {
		return err
	}

	c.mu.Lock()
	if c.conv != conv || c.epoch != epoch {
		c.mu.Unlock()
		return ErrStale
	}
	if err == nil {
		err = c.persistChatLocked(ctx, conv)
	}
	if err != nil {
		c.log.Warn("chat turn failed", "error", err)
		c.chatErr = err
	}
	ch := c.changeLocked(ChangeChat)
	c.mu.Unlock()
	c.publish(ch)
	return err
}

func (c *Controller) persistChatLocked(ctx context.Context, conv *chat.Conversation) error {
	hist, err := chat.EncodeHistory(conv.Messages())
	if err != nil {
		return err
	}
	if err := c.prefs.SetMany(ctx, map[string]string{KeyChatHistory: hist}); err != nil {
		return fmt.Errorf("save chat history: %w", err)
	}
	return nil
}

// ClearChat deletes the persisted history and drops the chat session. The
// returned InitChatSession creates a fresh one; the delete always happens
// first. It is only available on the chat screen.
func (c *Controller) ClearChat(ctx context.Context) ([]Effect, error) {
	c.mu.Lock()
	if c.sess.AppState != StateChatting {
		c.mu.Unlock()
		return nil, fmt.Errorf("clear chat: %w", ErrNotAvailable)
	}
	if c.conv != nil && c.conv.Busy() {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if err := c.prefs.Delete(ctx, KeyChatHistory); err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("clear chat history: %w", err)
	}
	// A session init already in flight read the old history.
	c.bumpEpochLocked()
	c.conv = nil
	c.chatErr = nil
	ch := c.changeLocked(ChangeChat)
	c.mu.Unlock()

	c.publish(ch)
	return []Effect{InitChatSession}, nil
}

// TranslateMessage translates tutor message i into the learner's UI
// language and stores the translation alongside it.
func (c *Controller) TranslateMessage(ctx context.Context, i int) error {
	c.mu.Lock()
	conv, epoch, lang := c.conv, c.epoch, c.sess.Profile.UILanguage
	c.mu.Unlock()
	if conv == nil {
		return ErrNoChat
	}

	msg, ok := conv.Message(i)
	if !ok || msg.Role != chat.RoleModel || msg.Text == "" {
		return fmt.Errorf("translate: message %d is not a tutor reply", i)
	}
	if lang == "" || lang == i18n.Fallback || msg.Translation != "" {
		return nil
	}
	if c.translator == nil {
		return fmt.Errorf("translate: %w", ErrNotAvailable)
	}

	out, err := c.translator.Translate(ctx, msg.Text, lang)

	c.mu.Lock()
	if c.conv != conv || c.epoch != epoch {
		c.mu.Unlock()
		return ErrStale
	}
	if err == nil {
		conv.SetTranslation(i, out)
		err = c.persistChatLocked(ctx, conv)
	}
	if err != nil {
		c.chatErr = err
	}
	ch := c.changeLocked(ChangeChat)
	c.mu.Unlock()
	c.publish(ch)
	return err
}

// SpeechSupported reports whether tutor replies can be read aloud.
func (c *Controller) SpeechSupported() bool {
	return c.synth.Supported()
}

// SpeakMessage reads message i aloud. It blocks until speech ends.
func (c *Controller) SpeakMessage(ctx context.Context, i int) error {
	c.mu.Lock()
	conv := c.conv
	c.mu.Unlock()
	if conv == nil {
		return ErrNoChat
	}
	msg, ok := conv.Message(i)
	if !ok {
		return fmt.Errorf("speak: no message %d", i)
	}
	return c.synth.Speak(ctx, msg.Text, "en")
}
