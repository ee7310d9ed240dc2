package chat

import (
	"encoding/json"
	"fmt"
)

// HistoryVersion is the current persisted history format.
const HistoryVersion = 1

// History is the persisted form of a conversation.
type History struct {
	Version  int       `json:"version"`
	Messages []Message `json:"messages"`
}

// EncodeHistory serializes msgs for storage. Empty model messages are
// dropped so a half-finished reply never lands on disk.
func EncodeHistory(msgs []Message) (string, error) {
	h := History{Version: HistoryVersion, Messages: make([]Message, 0, len(msgs))}
	for _, m := range msgs {
		if m.Failed || (m.Role == RoleModel && m.Text == "") {
			continue
		}
		h.Messages = append(h.Messages, m)
	}
	b, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("encode chat history: %w", err)
	}
	return string(b), nil
}

// DecodeHistory parses a stored history. A missing version is read as the
// current one; newer versions are refused.
func DecodeHistory(s string) ([]Message, error) {
	if s == "" {
		return nil, nil
	}
	var h History
	if err := json.Unmarshal([]byte(s), &h); err != nil {
		return nil, fmt.Errorf("decode chat history: %w", err)
	}
	if h.Version > HistoryVersion {
		return nil, fmt.Errorf("decode chat history: unsupported version %d", h.Version)
	}
	for i, m := range h.Messages {
		if m.Role != RoleUser && m.Role != RoleModel {
			return nil, fmt.Errorf("decode chat history: message %d has role %q", i, m.Role)
		}
	}
	return h.Messages, nil
}
