package script

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiCompleter calls the Gemini API through the genai SDK
type GeminiCompleter struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiCompleter creates a completer; the SDK client is created on first use
func NewGeminiCompleter(apiKey, model string) *GeminiCompleter {
	return &GeminiCompleter{apiKey: apiKey, model: model}
}

// Name returns the provider name
func (c *GeminiCompleter) Name() string {
	return "gemini"
}

func (c *GeminiCompleter) getClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	c.client = client
	return client, nil
}

// Complete sends prompt as a single request and joins the text parts of the first candidate
func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
