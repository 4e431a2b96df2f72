package llmrouter

import (
	"bytes"
	"encoding/json"
)

// Role identifies who produced a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a conversation history. The router passes roles
// through verbatim; backends own validation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// SystemMessage creates a system message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// Response is the normalized result of one model query.
//
// ReasoningDetails carries the backend's chain-of-thought payload when the
// backend exposes one. Its shape is backend-defined (DeepSeek returns a
// string, OpenRouter an array of objects) and the router treats it as opaque
// JSON; it is nil for backends without reasoning output.
type Response struct {
	Content          string          `json:"content"`
	ReasoningDetails json.RawMessage `json:"reasoning_details,omitempty"`
}

var jsonNull = []byte("null")

// normalizeRaw maps an absent or JSON-null payload to nil so callers can
// test ReasoningDetails with a plain nil check.
func normalizeRaw(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil
	}
	return raw
}
