//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"docpod/internal/app/repository"
	"docpod/internal/config"
)

var pipelineSet = wire.NewSet(
	provideStore,
	provideArtifactStore,
	provideRegistry,
	provideMetrics,
	provideExtractor,
	provideScriptGenerator,
	provideTTSModel,
	provideEncoder,
	provideSynthesizer,
	providePipeline,
)

// InitializeApplication wires the HTTP server, worker pool and their dependencies
func InitializeApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Application, func(), error) {
	wire.Build(
		pipelineSet,
		provideQueue,
		provideUploadStore,
		providePool,
		provideServiceContainer,
		provideServer,
		newApplication,
	)
	return nil, nil, nil
}

// InitializeGenerator wires an inline pipeline for single-document runs
func InitializeGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Generator, func(), error) {
	wire.Build(
		pipelineSet,
		provideInlineQueue,
		provideUploadStore,
		newGenerator,
	)
	return nil, nil, nil
}

// InitializeStore opens only the repository
func InitializeStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, func(), error) {
	wire.Build(provideStore)
	return nil, nil, nil
}
