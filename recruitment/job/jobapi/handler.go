package jobapi

import (
	"context"
	"strings"

	"github.com/Abraxas-365/talentrelay/pkg/fiberx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/Abraxas-365/talentrelay/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// RegisterRoutes registers all job routes
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/jobs")

	api.Get("/", h.ListJobs)
	api.Get("/:id", h.GetJobByID)

	api.Post("/", h.CreateJob)
	api.Put("/:id", h.UpdateJob)
	api.Delete("/:id", h.DeleteJob)

	api.Post("/:id/publish", h.PublishJob)
	api.Post("/:id/close", h.CloseJob)
	api.Post("/:id/archive", h.ArchiveJob)
	api.Post("/:id/unarchive", h.UnarchiveJob)
}

// CreateJob creates a new job posting
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJob().WithDetail("parse_error", err.Error())
	}

	newJob, err := h.service.CreateJob(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob)
}

// GetJobByID retrieves a job by ID
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobEntity, err := h.service.GetJobByID(c.Context(), kernel.JobID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(jobEntity)
}

// ListJobs retrieves jobs with pagination
// GET /api/jobs?status=PUBLISHED
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	req := job.ListJobsRequest{Pagination: fiberx.Pagination(c)}
	if raw := c.Query("status"); raw != "" {
		status := job.JobStatus(strings.ToUpper(raw))
		req.Status = &status
	}

	jobs, err := h.service.ListJobs(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// UpdateJob updates job details
// PUT /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJob().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.Context(), kernel.JobID(c.Params("id")), req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteJob deletes a job
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	if err := h.service.DeleteJob(c.Context(), kernel.JobID(c.Params("id"))); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// PublishJob POST /api/jobs/:id/publish
func (h *Handlers) PublishJob(c *fiber.Ctx) error {
	return h.respond(c, h.service.PublishJob)
}

// CloseJob POST /api/jobs/:id/close
func (h *Handlers) CloseJob(c *fiber.Ctx) error {
	return h.respond(c, h.service.CloseJob)
}

// ArchiveJob POST /api/jobs/:id/archive
func (h *Handlers) ArchiveJob(c *fiber.Ctx) error {
	return h.respond(c, h.service.ArchiveJob)
}

// UnarchiveJob POST /api/jobs/:id/unarchive
func (h *Handlers) UnarchiveJob(c *fiber.Ctx) error {
	return h.respond(c, h.service.UnarchiveJob)
}

// ============================================================================
// Helper Functions
// ============================================================================

type transitionFunc func(ctx context.Context, id kernel.JobID) (*job.Job, error)

func (h *Handlers) respond(c *fiber.Ctx, fn transitionFunc) error {
	jobEntity, err := fn(c.Context(), kernel.JobID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(jobEntity)
}
