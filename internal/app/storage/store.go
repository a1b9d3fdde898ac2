package storage

import (
	"context"
	"io"

	"go.uber.org/zap"

	"docpod/internal/app/errors"
	"docpod/internal/config"
)

// ArtifactStore persists generated podcasts. Audio is first written to a
// staging path, then committed to its final location.
type ArtifactStore interface {
	// StagingPath returns where the encoder should write the artifact called name
	StagingPath(name string) (string, error)
	// Commit moves a staged file into the store and returns its location
	Commit(ctx context.Context, name, stagedPath string) (string, error)
	// Open streams the artifact at location
	Open(ctx context.Context, location string) (io.ReadCloser, int64, error)
	// Remove deletes the artifact. A missing artifact is not an error.
	Remove(ctx context.Context, location string) error
	Backend() string
}

// NewArtifactStore builds the store selected by cfg
func NewArtifactStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (ArtifactStore, error) {
	switch cfg.Backend {
	case config.StorageLocal, "":
		return NewLocalStore(cfg.GeneratedDir)
	case config.StorageMinio:
		return NewMinioStore(ctx, cfg.Minio, cfg.TempDir, logger)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown storage backend %q", cfg.Backend)
	}
}
