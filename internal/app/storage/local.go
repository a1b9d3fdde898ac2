package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"docpod/internal/app/errors"
)

// LocalStore keeps artifacts in a directory on disk; the location is the file path
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Backend returns the backend name
func (s *LocalStore) Backend() string {
	return "local"
}

// StagingPath writes straight into the artifact directory
func (s *LocalStore) StagingPath(name string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", errors.InvalidField("artifact name", name)
	}
	return filepath.Join(s.dir, name), nil
}

// Commit verifies the staged file is in place
func (s *LocalStore) Commit(ctx context.Context, name, stagedPath string) (string, error) {
	target, err := s.StagingPath(name)
	if err != nil {
		return "", err
	}
	if stagedPath != target {
		if err := os.Rename(stagedPath, target); err != nil {
			return "", fmt.Errorf("failed to move artifact: %w", err)
		}
	}
	if _, err := os.Stat(target); err != nil {
		return "", errors.Wrap(errors.ErrArtifactMissing, target)
	}
	return target, nil
}

// Open returns the file and its size
func (s *LocalStore) Open(ctx context.Context, location string) (io.ReadCloser, int64, error) {
	f, err := os.Open(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, errors.Wrap(errors.ErrArtifactMissing, location)
		}
		return nil, 0, fmt.Errorf("failed to open artifact: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat artifact: %w", err)
	}
	return f, info.Size(), nil
}

// Remove deletes the file
func (s *LocalStore) Remove(ctx context.Context, location string) error {
	if location == "" {
		return nil
	}
	if err := os.Remove(location); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}
