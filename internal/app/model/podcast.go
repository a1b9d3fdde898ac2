package model

import (
	"time"
)

// PodcastStatus is the lifecycle state of a podcast generation job
type PodcastStatus string

const (
	StatusProcessing PodcastStatus = "processing"
	StatusCompleted  PodcastStatus = "completed"
	StatusFailed     PodcastStatus = "failed"
)

// IsTerminal reports whether no further pipeline transition can happen
func (s PodcastStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Podcast is one upload-to-audio job owned by a user
type Podcast struct {
	ID                 int64         `json:"id" db:"id"`
	UserID             int64         `json:"user_id" db:"user_id"`
	OriginalFilename   string        `json:"original_filename" db:"original_filename"`
	SourcePath         string        `json:"-" db:"source_path"`
	Status             PodcastStatus `json:"status" db:"status"`
	GeneratedAudioPath *string       `json:"generated_audio_path,omitempty" db:"generated_audio_path"`
	ErrorMessage       string        `json:"error_message,omitempty" db:"error_message"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for Podcast
func (Podcast) TableName() string {
	return "podcasts"
}

// HasAudio reports whether a generated artifact is recorded for the job
func (p *Podcast) HasAudio() bool {
	return p.GeneratedAudioPath != nil && *p.GeneratedAudioPath != ""
}

// PodcastPage is one page of a user's podcast history
type PodcastPage struct {
	Items   []Podcast
	Page    int
	PerPage int
	Total   int
}

// Pages returns the number of pages needed for Total items
func (p PodcastPage) Pages() int {
	if p.PerPage <= 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}
