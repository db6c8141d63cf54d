// Package llm is the narrow interface to the language-model collaborator:
// assembled prompt in, generated document out, or an error.
package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal surface needed to call a chat model. It mirrors the
// CreateChatCompletion method so any OpenAI-compatible backend can be
// adapted, and tests can swap in a fake.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider adapts *openai.Client to the Client interface.
type OpenAIProvider struct {
	Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}

// NewOpenAIProvider builds a provider against an OpenAI-compatible endpoint.
// An empty baseURL keeps the library default.
func NewOpenAIProvider(baseURL, apiKey string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}
