package llm

import (
	"context"
	"errors"
)

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// Implementations are asked for a JSON object reply.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ErrNoChoices is returned when the provider answers without any completion.
var ErrNoChoices = errors.New("no choices returned by model")
