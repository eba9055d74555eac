package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobify-service/internal/api/dto"
	"github.com/spec-kit/jobify-service/internal/domain"
	"github.com/spec-kit/jobify-service/internal/service"
)

// JobsHandler manages job posting endpoints.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobService}
}

// Create handles POST /addJob.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	var req dto.JobCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.Create(c.UserContext(), actor(c), service.JobCreateInput{
		Title:        req.JobTitle,
		Company:      req.Company,
		CompanyCover: req.CompanyCover,
		Location:     req.Location,
		Content:      req.JobContent,
		Status:       domain.JobStatus(req.Status),
		Details:      req.Details,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewJobResponse(*job, true)})
}

// List handles GET /allJobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	jobs, err := h.jobs.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.JobSummary, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, dto.NewJobSummary(job))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Published handles GET /publishedJobs.
func (h *JobsHandler) Published(c *fiber.Ctx) error {
	jobs, err := h.jobs.ListPublished(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": publicJobs(jobs)})
}

// Latest handles GET /latestJobs.
func (h *JobsHandler) Latest(c *fiber.Ctx) error {
	jobs, err := h.jobs.Latest(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": publicJobs(jobs)})
}

// Details handles GET /jobDetails/:id.
func (h *JobsHandler) Details(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.UserContext(), pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(*job, true)})
}

// UpdateStatus handles PATCH /updateJobStatus/:id.
func (h *JobsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.JobStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.jobs.UpdateStatus(c.UserContext(), actor(c), pathID(c), domain.JobStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": pathID(c), "status": req.Status}})
}

// Delete handles DELETE /deleteJob/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	if err := h.jobs.Delete(c.UserContext(), actor(c), pathID(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func publicJobs(jobs []domain.Job) []dto.JobResponse {
	resp := make([]dto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, dto.NewJobResponse(job, false))
	}
	return resp
}
