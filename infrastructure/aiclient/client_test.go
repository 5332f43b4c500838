package aiclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Routing is observable without network access: every provider client is nil,
// so the configuration error names the provider the request was dispatched to.
func TestGenerateTextRoutesByProvider(t *testing.T) {
	client := NewClient(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		provider string
		wantErr  string
	}{
		{ProviderAnthropic, "anthropic provider is not configured"},
		{ProviderClaude, "anthropic provider is not configured"},
		{ProviderGemini, "gemini provider is not configured"},
		{ProviderOpenAI, "openai provider is not configured"},
		{"", "openai provider is not configured"},
		{"unknown-provider", "openai provider is not configured"},
	}

	for _, tt := range tests {
		_, err := client.GenerateText(ctx, &TextRequest{Prompt: "hello", Provider: tt.provider})
		require.Error(t, err, "provider %q", tt.provider)
		assert.EqualError(t, err, tt.wantErr, "provider %q", tt.provider)
	}
}
