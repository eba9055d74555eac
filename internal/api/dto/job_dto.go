package dto

import (
	"time"

	"github.com/spec-kit/jobify-service/internal/domain"
)

// JobCreateRequest payload for POST /addJob.
type JobCreateRequest struct {
	JobTitle     string         `json:"jobTitle" validate:"required"`
	Company      string         `json:"company"`
	CompanyCover string         `json:"CompanyCover" validate:"omitempty,url"`
	Location     string         `json:"location"`
	JobContent   string         `json:"jobContent"`
	Status       string         `json:"status" validate:"omitempty,oneof=draft published"`
	Details      map[string]any `json:"details"`
}

// JobStatusRequest payload for PATCH /updateJobStatus/:id.
type JobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published"`
}

// JobSummary is the listing projection used by the admin job table.
type JobSummary struct {
	ID           string    `json:"_id"`
	JobTitle     string    `json:"jobTitle"`
	PostedTime   time.Time `json:"postedTime"`
	Status       string    `json:"status"`
	CompanyCover string    `json:"CompanyCover"`
}

// JobResponse is the full posting. Content is omitted in public listings.
type JobResponse struct {
	ID           string         `json:"_id"`
	JobTitle     string         `json:"jobTitle"`
	Company      string         `json:"company"`
	CompanyCover string         `json:"CompanyCover"`
	Location     string         `json:"location"`
	JobContent   string         `json:"jobContent,omitempty"`
	Status       string         `json:"status"`
	Details      map[string]any `json:"details,omitempty"`
	PostedTime   time.Time      `json:"postedTime"`
}

// NewJobSummary maps a domain job to its summary.
func NewJobSummary(j domain.Job) JobSummary {
	return JobSummary{
		ID:           j.ID,
		JobTitle:     j.Title,
		PostedTime:   j.PostedAt,
		Status:       string(j.Status),
		CompanyCover: j.CompanyCover,
	}
}

// NewJobResponse maps a domain job; withContent controls the body text.
func NewJobResponse(j domain.Job, withContent bool) JobResponse {
	resp := JobResponse{
		ID:           j.ID,
		JobTitle:     j.Title,
		Company:      j.Company,
		CompanyCover: j.CompanyCover,
		Location:     j.Location,
		Status:       string(j.Status),
		Details:      j.Details,
		PostedTime:   j.PostedAt,
	}
	if withContent {
		resp.JobContent = j.Content
	}
	return resp
}
