package domain

import "time"

// JobStatus tracks the publication state of a posting.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
)

// Job is a job posting. Details holds free-form fields supplied by the editor.
type Job struct {
	ID           string
	Title        string
	Company      string
	CompanyCover string
	Location     string
	Content      string
	Status       JobStatus
	Details      map[string]any
	PostedAt     time.Time
	UpdatedAt    time.Time
}
