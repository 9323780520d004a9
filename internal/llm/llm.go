package llm

import (
	"context"
	"errors"
)

// Message is a single role-tagged message in a completion request.
type Message struct {
	Role    string
	Content string
}

// Role values accepted by providers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client abstracts the external reasoning service: given a system instruction
// and an ordered list of messages, return generated text.
type Client interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	_ = ctx
	_ = system
	_ = messages
	return "", ErrNotImplemented
}
