package repository

import (
	"context"

	"docpod/internal/app/model"
)

// PodcastDAO persists podcast jobs
type PodcastDAO interface {
	// CreatePodcast inserts p in the processing state and fills ID and timestamps
	CreatePodcast(ctx context.Context, p *model.Podcast) error
	GetPodcast(ctx context.Context, id int64) (*model.Podcast, error)
	// ListPodcastsByUser returns one page, newest first. page is 1-based.
	ListPodcastsByUser(ctx context.Context, userID int64, page, perPage int) (*model.PodcastPage, error)
	ListAllPodcastsByUser(ctx context.Context, userID int64) ([]model.Podcast, error)
	// MarkCompleted and MarkFailed only succeed while the job is processing
	MarkCompleted(ctx context.Context, id int64, audioPath string) error
	MarkFailed(ctx context.Context, id int64, message string) error
	DeletePodcast(ctx context.Context, id int64) error
}

// UserDAO persists users and their login sessions
type UserDAO interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	CreateSession(ctx context.Context, s *model.Session) error
	GetSession(ctx context.Context, tokenHash string) (*model.Session, error)
	DeleteSession(ctx context.Context, tokenHash string) error
}

// Store is the full repository used by the application
type Store interface {
	PodcastDAO
	UserDAO
	Ping(ctx context.Context) error
	Close() error
}
