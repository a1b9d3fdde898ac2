package tts

import (
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"docpod/internal/app/errors"
	"docpod/internal/config"
)

var lookPath = exec.LookPath

// NewLoader returns the loader for the engine selected by cfg
func NewLoader(cfg config.TTSConfig, tempDir string) Loader {
	return func(ctx context.Context) (Engine, error) {
		switch cfg.Engine {
		case config.EngineOpenAI:
			if strings.TrimSpace(cfg.APIKey) == "" {
				return nil, errors.Wrap(errors.ErrMissingAPIKey, "openai tts engine")
			}
			return NewOpenAIEngine(cfg.APIKey, cfg.Model, ""), nil
		case config.EngineCommand:
			engine := NewCommandEngine(cfg.Command, cfg.Args, tempDir, nil)
			if err := engine.LookPath(); err != nil {
				return nil, err
			}
			return engine, nil
		default:
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown tts engine %q", cfg.Engine)
		}
	}
}

// NewModelFromConfig builds the shared model handle for cfg
func NewModelFromConfig(cfg *config.Config, logger *zap.Logger) *Model {
	return NewModel(NewLoader(cfg.TTS, cfg.Storage.TempDir), logger)
}
