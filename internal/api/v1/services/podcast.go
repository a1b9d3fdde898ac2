package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path"

	"go.uber.org/zap"

	apierrors "docpod/internal/api/errors"
	"docpod/internal/api/v1/dto"
	apperrors "docpod/internal/app/errors"
	"docpod/internal/app/export"
	"docpod/internal/app/extract"
	"docpod/internal/app/model"
	"docpod/internal/app/repository"
	"docpod/internal/app/storage"
)

// Submitter persists a job and hands it to the workers
type Submitter interface {
	Submit(ctx context.Context, userID int64, originalFilename, sourcePath string) (*model.Podcast, error)
}

// podcastService implements PodcastService
type podcastService struct {
	store     repository.PodcastDAO
	submitter Submitter
	uploads   *storage.UploadStore
	artifacts storage.ArtifactStore
	pageSize  int
	logger    *zap.Logger
}

// NewPodcastService creates a new podcast service
func NewPodcastService(
	store repository.PodcastDAO,
	submitter Submitter,
	uploads *storage.UploadStore,
	artifacts storage.ArtifactStore,
	pageSize int,
	logger *zap.Logger,
) PodcastService {
	if pageSize < 1 {
		pageSize = 5
	}
	return &podcastService{
		store:     store,
		submitter: submitter,
		uploads:   uploads,
		artifacts: artifacts,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// CreatePodcast stores the upload and queues a job for it
func (s *podcastService) CreatePodcast(ctx context.Context, userID int64, filename string, content io.Reader) (*dto.PodcastResponse, error) {
	if !extract.IsSupported(filename) {
		return nil, apierrors.NewValidationError("Unsupported file type", map[string]string{
			"file": fmt.Sprintf("must be one of %v", extract.SupportedExtensions),
		})
	}

	sourcePath, err := s.uploads.Save(filename, content)
	if err != nil {
		s.logger.Error("failed to save upload", zap.String("file", filename), zap.Error(err))
		return nil, apierrors.NewInternalError("Could not store the uploaded file")
	}

	job, err := s.submitter.Submit(ctx, userID, filename, sourcePath)
	if err != nil {
		s.logger.Error("failed to submit podcast", zap.String("file", filename), zap.Error(err))
		if rmErr := s.uploads.Remove(sourcePath); rmErr != nil {
			s.logger.Warn("failed to remove upload", zap.String("path", sourcePath), zap.Error(rmErr))
		}
		return nil, apierrors.NewInternalError("Could not start podcast generation")
	}

	resp := dto.ToPodcastResponse(job)
	return &resp, nil
}

// GetPodcast returns one of the caller's jobs
func (s *podcastService) GetPodcast(ctx context.Context, userID, id int64) (*dto.PodcastResponse, error) {
	job, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToPodcastResponse(job)
	return &resp, nil
}

// ListPodcasts returns one page of the caller's history, newest first
func (s *podcastService) ListPodcasts(ctx context.Context, userID int64, page int) (*dto.PaginatedPodcastsResponse, error) {
	if page < 1 {
		page = 1
	}
	result, err := s.store.ListPodcastsByUser(ctx, userID, page, s.pageSize)
	if err != nil {
		s.logger.Error("failed to list podcasts", zap.Int64("user_id", userID), zap.Error(err))
		return nil, apierrors.NewInternalError("Could not load podcast history")
	}
	return dto.ToPaginatedPodcasts(result), nil
}

// OpenAudio streams the generated MP3 of a completed job
func (s *podcastService) OpenAudio(ctx context.Context, userID, id int64) (*AudioFile, error) {
	job, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if job.Status != model.StatusCompleted || !job.HasAudio() {
		return nil, apierrors.NewNotFoundError("audio file")
	}

	location := *job.GeneratedAudioPath
	content, size, err := s.artifacts.Open(ctx, location)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrArtifactMissing) {
			s.logger.Warn("generated audio is missing", zap.Int64("podcast_id", id), zap.String("location", location))
			return nil, apierrors.NewNotFoundError("audio file")
		}
		s.logger.Error("failed to open generated audio", zap.Int64("podcast_id", id), zap.Error(err))
		return nil, apierrors.NewInternalError("Could not read the generated audio")
	}

	return &AudioFile{Name: path.Base(location), Size: size, Content: content}, nil
}

// DeletePodcast removes the record first and the files only once that succeeded
func (s *podcastService) DeletePodcast(ctx context.Context, userID, id int64) error {
	job, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.store.DeletePodcast(ctx, id); err != nil {
		if stderrors.Is(err, apperrors.ErrNotFound) {
			return apierrors.NewNotFoundError("podcast")
		}
		s.logger.Error("failed to delete podcast", zap.Int64("podcast_id", id), zap.Error(err))
		return apierrors.NewInternalError("Could not delete the podcast")
	}

	if job.HasAudio() {
		if err := s.artifacts.Remove(ctx, *job.GeneratedAudioPath); err != nil {
			s.logger.Warn("failed to remove generated audio", zap.Int64("podcast_id", id), zap.Error(err))
		}
	}
	if err := s.uploads.Remove(job.SourcePath); err != nil {
		s.logger.Warn("failed to remove upload", zap.Int64("podcast_id", id), zap.Error(err))
	}

	s.logger.Info("podcast deleted", zap.Int64("podcast_id", id), zap.Int64("user_id", userID))
	return nil
}

// ExportPodcasts writes the caller's full history in format
func (s *podcastService) ExportPodcasts(ctx context.Context, userID int64, format string, w io.Writer) error {
	podcasts, err := s.store.ListAllPodcastsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load podcasts for export", zap.Int64("user_id", userID), zap.Error(err))
		return apierrors.NewInternalError("Could not load podcast history")
	}
	return export.Write(w, format, podcasts)
}

// owned loads job id and checks it belongs to userID
func (s *podcastService) owned(ctx context.Context, userID, id int64) (*model.Podcast, error) {
	job, err := s.store.GetPodcast(ctx, id)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrNotFound) {
			return nil, apierrors.NewNotFoundError("podcast")
		}
		s.logger.Error("failed to load podcast", zap.Int64("podcast_id", id), zap.Error(err))
		return nil, apierrors.NewInternalError("Could not load the podcast")
	}
	if job.UserID != userID {
		return nil, apierrors.NewForbiddenError("You do not have permission to access this podcast")
	}
	return job, nil
}
