package dto

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"docpod/internal/app/model"
)

// PodcastResponse is a podcast job as seen by its owner
type PodcastResponse struct {
	ID               int64     `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	Status           string    `json:"status"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	DownloadURL      string    `json:"download_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PaginatedPodcastsResponse is one page of the caller's history
type PaginatedPodcastsResponse struct {
	Podcasts   []PodcastResponse  `json:"podcasts"`
	Pagination PaginationResponse `json:"pagination"`
}

// ListPodcastsQuery selects a history page
type ListPodcastsQuery struct {
	Page int `form:"page" binding:"omitempty,min=1"`
}

// ExportQuery selects the export format
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=xlsx csv"`
}

// DownloadPath is the route serving the audio of podcast id
func DownloadPath(id int64) string {
	return fmt.Sprintf("/api/v1/podcasts/%d/download", id)
}

// ToPodcastResponse converts a model to response DTO. Only completed jobs
// with a stored artifact get a download URL.
func ToPodcastResponse(p *model.Podcast) PodcastResponse {
	resp := PodcastResponse{
		ID:               p.ID,
		OriginalFilename: p.OriginalFilename,
		Status:           string(p.Status),
		ErrorMessage:     p.ErrorMessage,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Status == model.StatusCompleted && p.HasAudio() {
		resp.DownloadURL = DownloadPath(p.ID)
	}
	return resp
}

// ToPaginatedPodcasts converts a repository page
func ToPaginatedPodcasts(page *model.PodcastPage) *PaginatedPodcastsResponse {
	return &PaginatedPodcastsResponse{
		Podcasts: lo.Map(page.Items, func(p model.Podcast, _ int) PodcastResponse {
			return ToPodcastResponse(&p)
		}),
		Pagination: NewPagination(page.Page, page.PerPage, page.Total),
	}
}
