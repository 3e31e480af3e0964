package llm

import (
	"context"
	"errors"
)

// Message roles on the wire. Providers with other vocabularies map these.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ErrNoAPIKey is returned by hosted providers constructed without a key.
var ErrNoAPIKey = errors.New("API key not set")

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client sends a system prompt plus the conversation so far to an LLM and returns the reply text.
// Model is provider-specific (e.g. "gpt-4o-mini", "llama-3.1-8b-instant"); empty selects the provider default.
type Client interface {
	Complete(ctx context.Context, model, systemPrompt string, history []Message) (string, error)
}

func withSystem(systemPrompt string, history []Message) []Message {
	out := make([]Message, 0, len(history)+1)
	if systemPrompt != "" {
		out = append(out, Message{Role: RoleSystem, Content: systemPrompt})
	}
	return append(out, history...)
}
