package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"docpod/internal/app/errors"
	"docpod/internal/config"
)

// ObjectPrefix is the key prefix of every generated podcast
const ObjectPrefix = "podcasts"

// MinioStore keeps artifacts in a MinIO bucket; the location is the object key
type MinioStore struct {
	client     *minio.Client
	bucket     string
	stagingDir string
	logger     *zap.Logger
}

// NewMinioStore connects to MinIO and ensures the bucket exists
func NewMinioStore(ctx context.Context, cfg config.MinioConfig, stagingDir string, logger *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("created bucket", zap.String("bucket", cfg.Bucket))
	}

	return NewMinioStoreWithClient(client, cfg.Bucket, stagingDir, logger), nil
}

// NewMinioStoreWithClient wraps an existing client
func NewMinioStoreWithClient(client *minio.Client, bucket, stagingDir string, logger *zap.Logger) *MinioStore {
	return &MinioStore{
		client:     client,
		bucket:     bucket,
		stagingDir: stagingDir,
		logger:     logger,
	}
}

// Backend returns the backend name
func (s *MinioStore) Backend() string {
	return "minio"
}

// StagingPath places the file in the local staging directory
func (s *MinioStore) StagingPath(name string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", errors.InvalidField("artifact name", name)
	}
	return filepath.Join(s.stagingDir, name), nil
}

// ObjectKey returns the key an artifact called name is stored under
func ObjectKey(name string) string {
	return path.Join(ObjectPrefix, name)
}

// Commit uploads the staged file and removes it locally
func (s *MinioStore) Commit(ctx context.Context, name, stagedPath string) (string, error) {
	f, err := os.Open(stagedPath)
	if err != nil {
		return "", errors.Wrap(errors.ErrArtifactMissing, stagedPath)
	}
	defer os.Remove(stagedPath)
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat staged artifact: %w", err)
	}

	key := ObjectKey(name)
	_, err = s.client.PutObject(ctx, s.bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: "audio/mpeg",
		UserMetadata: map[string]string{
			"uploaded-at": time.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact to MinIO: %w", err)
	}

	s.logger.Info("artifact uploaded", zap.String("bucket", s.bucket), zap.String("key", key), zap.Int64("size", info.Size()))
	return key, nil
}

// Open streams the object
func (s *MinioStore) Open(ctx context.Context, location string) (io.ReadCloser, int64, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, location, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get artifact: %w", err)
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, errors.Wrap(errors.ErrArtifactMissing, location)
		}
		return nil, 0, fmt.Errorf("failed to stat artifact: %w", err)
	}
	return obj, info.Size, nil
}

// Remove deletes the object
func (s *MinioStore) Remove(ctx context.Context, location string) error {
	if location == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, location, minio.RemoveObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}
