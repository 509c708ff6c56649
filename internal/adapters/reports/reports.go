// Package reports renders dashboard snapshots into downloadable artifacts
// and stores them through the blob layer.
package reports

import (
	"time"

	"coachtrack/internal/analytics"
	"coachtrack/pkg/domain"
)

// Format identifies an artifact encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	default:
		return "application/json"
	}
}

// Status describes the lifecycle stage of a report request.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Artifact captures one stored report file.
type Artifact struct {
	ID          string    `json:"id"`
	Format      Format    `json:"format"`
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record tracks a report request and its resulting artifacts.
type Record struct {
	ID          string           `json:"id"`
	Params      analytics.Params `json:"params"`
	Formats     []Format         `json:"formats"`
	Status      Status           `json:"status"`
	Error       string           `json:"error,omitempty"`
	Artifacts   []Artifact       `json:"artifacts,omitempty"`
	RequestedBy string           `json:"requested_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

// Request enqueues a report export.
type Request struct {
	Params      analytics.Params
	Formats     []Format
	RequestedBy string
}

func (r Record) copy() Record {
	dup := r
	dup.Formats = append([]Format(nil), r.Formats...)
	dup.Params.PaymentTypes = append([]domain.PaymentType(nil), r.Params.PaymentTypes...)
	if len(r.Artifacts) > 0 {
		dup.Artifacts = append([]Artifact(nil), r.Artifacts...)
	}
	return dup
}
