package tts

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Engine synthesizes one sentence in the given voice and returns mono
// 16-bit samples at audio.SampleRate.
type Engine interface {
	Synthesize(ctx context.Context, text, voice string) ([]int, error)
	Name() string
}

// Loader constructs an engine. It may be slow (model download, credential check).
type Loader func(ctx context.Context) (Engine, error)

// Model is a process-wide, load-once handle to the TTS engine. Concurrent
// callers block on the same load; a failed load is retried on the next call.
type Model struct {
	load   Loader
	logger *zap.Logger

	mu     sync.Mutex
	engine Engine
}

// NewModel creates an unloaded handle
func NewModel(load Loader, logger *zap.Logger) *Model {
	return &Model{load: load, logger: logger}
}

// Engine returns the loaded engine, loading it on first use
func (m *Model) Engine(ctx context.Context) (Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.engine != nil {
		return m.engine, nil
	}

	m.logger.Info("loading tts engine")
	engine, err := m.load(ctx)
	if err != nil {
		m.logger.Error("failed to load tts engine", zap.Error(err))
		return nil, err
	}
	m.logger.Info("tts engine loaded", zap.String("engine", engine.Name()))
	m.engine = engine
	return engine, nil
}

// Loaded reports whether the engine has been loaded
func (m *Model) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine != nil
}
