package services

import (
	"context"
	"io"

	"docpod/internal/api/v1/dto"
)

// PodcastService defines the podcast operations available to a signed-in user
type PodcastService interface {
	CreatePodcast(ctx context.Context, userID int64, filename string, content io.Reader) (*dto.PodcastResponse, error)
	GetPodcast(ctx context.Context, userID, id int64) (*dto.PodcastResponse, error)
	ListPodcasts(ctx context.Context, userID int64, page int) (*dto.PaginatedPodcastsResponse, error)
	OpenAudio(ctx context.Context, userID, id int64) (*AudioFile, error)
	DeletePodcast(ctx context.Context, userID, id int64) error
	ExportPodcasts(ctx context.Context, userID int64, format string, w io.Writer) error
}

// AuthService defines account and session operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (int64, error)
}

// AudioFile is an open generated podcast ready to stream
type AudioFile struct {
	Name    string
	Size    int64
	Content io.ReadCloser
}
