package aiclient

import (
	"context"
	"fmt"
)

// Provider names accepted in block prompt configs. "anthropic" and "claude"
// are interchangeable spellings for the same provider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderClaude    = "claude"
	ProviderGemini    = "gemini"
)

// TextRequest is a provider-agnostic text generation request
type TextRequest struct {
	Prompt       string
	SystemPrompt string
	Model        string // optional per-block override
	MaxTokens    int
	Temperature  float64
	Provider     string
}

// Invoker is the AI boundary the generation pipeline talks to. Responses are
// normalized to plain strings; anything else is the provider client's problem.
type Invoker interface {
	GenerateText(ctx context.Context, req *TextRequest) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Client dispatches requests to the configured provider clients. Any of the
// provider clients may be nil when not configured; requests routed to a nil
// provider fail with a configuration error rather than a network error.
type Client struct {
	openai    *OpenAIClient
	anthropic *AnthropicClient
	gemini    *GeminiClient
}

func NewClient(openai *OpenAIClient, anthropic *AnthropicClient, gemini *GeminiClient) *Client {
	return &Client{
		openai:    openai,
		anthropic: anthropic,
		gemini:    gemini,
	}
}

func (c *Client) GenerateText(ctx context.Context, req *TextRequest) (string, error) {
	switch req.Provider {
	case ProviderAnthropic, ProviderClaude:
		if c.anthropic == nil {
			return "", fmt.Errorf("anthropic provider is not configured")
		}
		return c.anthropic.GenerateText(ctx, req)
	case ProviderGemini:
		if c.gemini == nil {
			return "", fmt.Errorf("gemini provider is not configured")
		}
		return c.gemini.GenerateText(ctx, req)
	default:
		if c.openai == nil {
			return "", fmt.Errorf("openai provider is not configured")
		}
		return c.openai.GenerateText(ctx, req)
	}
}

// GenerateImage requests one square image and returns its URL
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if c.openai == nil {
		return "", fmt.Errorf("openai provider is not configured")
	}
	return c.openai.GenerateImage(ctx, prompt)
}

func (c *Client) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if c.gemini == nil {
		return nil, fmt.Errorf("gemini provider is not configured")
	}
	return c.gemini.EmbedText(ctx, text)
}
