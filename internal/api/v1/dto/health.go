package dto

import "docpod/internal/app/worker"

// HealthResponse reports process and dependency status
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp int64             `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Workers   *worker.Stats     `json:"workers,omitempty"`
}
