package driven

import "context"

// CompletionService produces text completions for the edit pipeline.
//
// Implementations may include:
//   - OpenAI (chat completions API)
//   - Anthropic (messages API)
//
// The only structural contract assumed of the output is that it may embed
// a fenced edit-action block; parsing that block is the extractor's job.
// Retry policy belongs to implementations, not callers, and must be
// bounded.
type CompletionService interface {
	// Complete runs a single completion over the system prompt, prior
	// conversation history, and the new user message.
	Complete(ctx context.Context, systemPrompt string, history []ChatMessage, userMessage string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}
