package models

import "time"

// Health is the GET /health response of the brain API.
type Health struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Version      string            `json:"version"`
	Service      string            `json:"service"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Healthy reports whether the API declared itself healthy.
func (h Health) Healthy() bool {
	return h.Status == "healthy"
}
