package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"docpod/internal/app/errors"
	"docpod/internal/config"
)

// ErrorPrefix marks a generation failure inside the returned script text
const ErrorPrefix = "Error:"

// Generator turns extracted document text into a two-speaker script.
// Failures are reported in-band as a string starting with ErrorPrefix.
type Generator interface {
	Generate(ctx context.Context, text string) string
}

// Completer sends a single prompt to a generative-language backend
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// IsError reports whether s is a generation failure marker
func IsError(s string) bool {
	return strings.HasPrefix(s, ErrorPrefix)
}

// ErrorMarker formats err as a failure marker
func ErrorMarker(err error) string {
	return fmt.Sprintf("%s Could not generate script. Details: %v", ErrorPrefix, err)
}

// ScriptGenerator builds the prompt and delegates to a Completer
type ScriptGenerator struct {
	completer Completer
	apiKey    string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewScriptGenerator creates a generator around an existing completer
func NewScriptGenerator(completer Completer, apiKey string, timeout time.Duration, logger *zap.Logger) *ScriptGenerator {
	return &ScriptGenerator{
		completer: completer,
		apiKey:    apiKey,
		timeout:   timeout,
		logger:    logger,
	}
}

// NewGenerator builds the generator selected by cfg. A missing API key is a
// fatal configuration error.
func NewGenerator(cfg config.ScriptConfig, timeout time.Duration, logger *zap.Logger) (*ScriptGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.Wrapf(errors.ErrMissingAPIKey, "script provider %s", cfg.Provider)
	}

	var completer Completer
	switch cfg.Provider {
	case config.ProviderGemini:
		completer = NewGeminiCompleter(cfg.APIKey, cfg.Model)
	case config.ProviderOpenAI:
		completer = NewOpenAICompleter(cfg.APIKey, cfg.Model, "")
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown script provider %q", cfg.Provider)
	}

	return NewScriptGenerator(completer, cfg.APIKey, timeout, logger), nil
}

// Generate returns the raw model output, or an ErrorPrefix marker on failure
func (g *ScriptGenerator) Generate(ctx context.Context, text string) string {
	if strings.TrimSpace(g.apiKey) == "" {
		return ErrorMarker(errors.ErrMissingAPIKey)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := g.completer.Complete(ctx, BuildPrompt(text))
	if err != nil {
		g.logger.Error("script generation failed",
			zap.String("provider", g.completer.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return ErrorMarker(err)
	}

	g.logger.Info("script generated",
		zap.String("provider", g.completer.Name()),
		zap.Int("chars", len(out)),
		zap.Duration("elapsed", time.Since(start)))
	return out
}
