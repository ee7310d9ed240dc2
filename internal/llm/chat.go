package llm

import (
	"context"
	"iter"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Chat is a stateful conversation over a Provider. It keeps the transcript
// and resends it with every turn, so any backend that can Stream can chat.
type Chat struct {
	provider Provider
	system   string
	id       string

	// MaxTokens and Temperature apply to every turn.
	MaxTokens   int
	Temperature float64

	mu      sync.Mutex
	history []Message
}

// NewChat starts a chat session with the given system instruction. history
// seeds the transcript, e.g. when a conversation is restored from disk.
func NewChat(p Provider, system string, history []Message) *Chat {
	return &Chat{
		provider: p,
		system:   system,
		id:       uuid.NewString(),
		history:  append([]Message(nil), history...),
	}
}

// ID identifies the session in request logs.
func (c *Chat) ID() string {
	return c.id
}

// System returns the session's system instruction.
func (c *Chat) System() string {
	return c.system
}

// History returns a copy of the committed transcript.
func (c *Chat) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.history...)
}

// SendStream sends text as the next user turn and yields the reply as it
// streams. The user turn and the reply are committed to the transcript only
// if the stream runs to completion; a failed or abandoned turn leaves the
// transcript untouched.
func (c *Chat) SendStream(ctx context.Context, text string) iter.Seq2[string, error] {
	c.mu.Lock()
	msgs := append(append([]Message(nil), c.history...), Message{Role: RoleUser, Content: text})
	c.mu.Unlock()

	req := Request{
		System:      c.system,
		Messages:    msgs,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	}
	ctx = WithSessionID(ctx, c.id)

	return func(yield func(string, error) bool) {
		var reply strings.Builder
		for frag, err := range c.provider.Stream(ctx, req) {
			if err != nil {
				yield("", err)
				return
			}
			reply.WriteString(frag)
			if !yield(frag, nil) {
				return
			}
		}

		c.mu.Lock()
		c.history = append(c.history,
			Message{Role: RoleUser, Content: text},
			Message{Role: RoleAssistant, Content: reply.String()},
		)
		c.mu.Unlock()
	}
}
