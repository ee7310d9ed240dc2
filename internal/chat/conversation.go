package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/abhisek/lingo/internal/llm"
)

var (
	// ErrBusy is returned when a message is sent while a reply is streaming.
	ErrBusy = errors.New("chat: a reply is still streaming")

	// ErrEmptyMessage is returned for blank input.
	ErrEmptyMessage = errors.New("chat: message is empty")
)

// Config holds chat generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for tutor replies.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.8,
	}
}

// Conversation is one chat session: the on-screen log plus the model-side
// transcript. Only one message may be in flight at a time.
type Conversation struct {
	mu   sync.Mutex
	log  *Log
	gw   *llm.Chat
	busy bool
}

// NewConversation starts a session seeded with a restored history.
func NewConversation(p llm.Provider, system string, cfg Config, restored []Message) *Conversation {
	gw := llm.NewChat(p, system, toTranscript(restored))
	gw.MaxTokens = cfg.MaxTokens
	gw.Temperature = cfg.Temperature
	return &Conversation{log: NewLog(restored), gw: gw}
}

func toTranscript(msgs []Message) []llm.Message {
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Text == "" || m.Failed {
			continue
		}
		role := llm.RoleUser
		if m.Role == RoleModel {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Text})
	}
	return out
}

// ID identifies the session in request logs.
func (c *Conversation) ID() string { return c.gw.ID() }

// Send posts text and streams the reply into the log, calling onUpdate after
// every change. On failure the user's message stays on screen marked failed
// and a reply that never produced text is removed.
func (c *Conversation) Send(ctx context.Context, text string, onUpdate func()) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if onUpdate == nil {
		onUpdate = func() {}
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.log.Append(Message{Role: RoleUser, Text: text})
	c.log.BeginReply()
	c.mu.Unlock()
	onUpdate()

	ctx = llm.WithPurpose(ctx, "chat")
	var streamErr error
	for frag, err := range c.gw.SendStream(ctx, text) {
		if err != nil {
			streamErr = err
			break
		}
		c.mu.Lock()
		c.log.Grow(frag)
		c.mu.Unlock()
		onUpdate()
	}

	c.mu.Lock()
	if streamErr != nil {
		c.log.FailReply()
	} else {
		c.log.EndReply()
	}
	c.busy = false
	c.mu.Unlock()
	onUpdate()

	return streamErr
}

// Busy reports whether a reply is streaming.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Messages()
}

// Message returns log entry i.
func (c *Conversation) Message(i int) (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.At(i)
}

// SetTranslation attaches a translation to log entry i.
func (c *Conversation) SetTranslation(i int, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.SetTranslation(i, text)
}
