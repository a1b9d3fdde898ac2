package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"

	"docpod/internal/app/audio"
)

// OpenAIEngine uses the speech endpoint with raw PCM output (24 kHz s16le mono)
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

// NewOpenAIEngine creates an engine. baseURL overrides the API endpoint when set.
func NewOpenAIEngine(apiKey, model, baseURL string) *OpenAIEngine {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIEngine{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Name returns the engine name
func (e *OpenAIEngine) Name() string {
	return "openai"
}

// Synthesize requests speech for text and decodes the PCM body
func (e *OpenAIEngine) Synthesize(ctx context.Context, text, voice string) ([]int, error) {
	resp, err := e.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(e.model),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech body: %w", err)
	}
	if len(pcm) < 2 {
		return nil, fmt.Errorf("empty speech response")
	}
	return audio.PCM16ToSamples(pcm), nil
}
