package types

import "context"

// Provider is the unified chat-completion interface the pipeline depends on.
// Implementations translate to their vendor protocol; the pipeline only ever
// sees OpenAI-shaped requests and responses.
type Provider interface {
	// CreateChatCompletion creates a chat completion (synchronous)
	CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)

	// Name returns the provider name
	Name() string

	// Close releases provider resources
	Close() error
}
