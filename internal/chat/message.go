// Package chat runs the tutor conversation: the message log shown on
// screen, its persisted form and the streaming exchange with the model.
package chat

import "slices"

// Role is who wrote a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry in the conversation.
type Message struct {
	Role        Role   `json:"role"`
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`

	// Failed marks a turn the model never accepted. It stays on screen but
	// is neither saved nor sent as context.
	Failed bool `json:"-"`
}

// Log is the ordered message list. It only grows, except that the reply
// placeholder grows in place while streaming and an empty placeholder is
// removed when its stream fails. Log is not safe for concurrent use.
type Log struct {
	msgs    []Message
	pending int // index of the streaming placeholder, -1 when none
}

// NewLog returns a log seeded with msgs.
func NewLog(msgs []Message) *Log {
	return &Log{msgs: slices.Clone(msgs), pending: -1}
}

// Append adds a complete message.
func (l *Log) Append(m Message) {
	l.msgs = append(l.msgs, m)
}

// BeginReply appends an empty model message to stream into.
func (l *Log) BeginReply() {
	l.msgs = append(l.msgs, Message{Role: RoleModel})
	l.pending = len(l.msgs) - 1
}

// Grow appends a fragment to the streaming placeholder.
func (l *Log) Grow(fragment string) {
	if l.pending < 0 {
		return
	}
	l.msgs[l.pending].Text += fragment
}

// EndReply closes the streaming placeholder.
func (l *Log) EndReply() {
	l.pending = -1
}

// FailReply closes the placeholder after an error, dropping it if nothing
// was streamed into it. The turn that prompted it is marked failed.
func (l *Log) FailReply() {
	if l.pending < 0 {
		return
	}
	if l.pending > 0 && l.msgs[l.pending-1].Role == RoleUser {
		l.msgs[l.pending-1].Failed = true
	}
	if l.msgs[l.pending].Text == "" {
		l.msgs = slices.Delete(l.msgs, l.pending, l.pending+1)
	} else {
		l.msgs[l.pending].Failed = true
	}
	l.pending = -1
}

// Streaming reports whether a reply placeholder is open.
func (l *Log) Streaming() bool { return l.pending >= 0 }

// SetTranslation attaches a translation to message i.
func (l *Log) SetTranslation(i int, text string) bool {
	if i < 0 || i >= len(l.msgs) {
		return false
	}
	l.msgs[i].Translation = text
	return true
}

// At returns message i.
func (l *Log) At(i int) (Message, bool) {
	if i < 0 || i >= len(l.msgs) {
		return Message{}, false
	}
	return l.msgs[i], true
}

// Len returns the number of messages.
func (l *Log) Len() int { return len(l.msgs) }

// Messages returns a copy of the log.
func (l *Log) Messages() []Message { return slices.Clone(l.msgs) }

// Clear empties the log.
func (l *Log) Clear() {
	l.msgs = nil
	l.pending = -1
}
