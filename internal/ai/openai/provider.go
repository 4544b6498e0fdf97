package openai

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/eventscope/eventscope/internal/ai/types"
)

// Provider implements the completion interface on top of the official
// OpenAI-compatible client. Any endpoint speaking the OpenAI protocol works
// through BaseURL.
type Provider struct {
	config *types.Config
	client *openai.Client
}

// New creates an OpenAI provider
func New(config *types.Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientCfg.BaseURL = config.BaseURL
	}

	return &Provider{
		config: config,
		client: openai.NewClientWithConfig(clientCfg),
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "openai"
}

// CreateChatCompletion creates a chat completion (synchronous)
func (p *Provider) CreateChatCompletion(ctx context.Context, req types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	if req.Model == "" {
		req.Model = p.config.Model
	}

	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
		Stop:        req.Stop,
	})
	if err != nil {
		return nil, types.NewProviderError(p.Name(), "chat completion failed", err)
	}

	choices := make([]types.Choice, len(resp.Choices))
	for i, c := range resp.Choices {
		choices[i] = types.Choice{
			Index: c.Index,
			Message: types.Message{
				Role:    c.Message.Role,
				Content: c.Message.Content,
			},
			FinishReason: string(c.FinishReason),
		}
	}

	return &types.ChatCompletionResponse{
		ID:      resp.ID,
		Object:  resp.Object,
		Created: resp.Created,
		Model:   resp.Model,
		Choices: choices,
		Usage: types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Close releases provider resources
func (p *Provider) Close() error {
	return nil
}
