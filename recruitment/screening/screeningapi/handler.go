package screeningapi

import (
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/screening"
	"github.com/Abraxas-365/talentrelay/recruitment/screening/screeningsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for screening operations
type Handlers struct {
	service *screeningsrv.ScreeningService
}

// NewHandlers creates a new screening handlers instance
func NewHandlers(service *screeningsrv.ScreeningService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// RegisterRoutes registers screening routes, including the per-job,
// per-candidate and per-resume views
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	screenings := app.Group("/api/screenings")

	screenings.Post("/", h.Screen)
	screenings.Post("/batch", h.BatchScreen)
	screenings.Get("/:id", h.GetScreening)

	app.Get("/api/jobs/:id/screenings", h.ListByJob)
	app.Get("/api/candidates/:id/screenings", h.ListByCandidate)
	app.Get("/api/resumes/:id/gaps", h.AnalyzeGaps)
}

// Screen scores one candidate for one job
// POST /api/screenings
func (h *Handlers) Screen(c *fiber.Ctx) error {
	var req screening.ScreenRequest
	if err := c.BodyParser(&req); err != nil {
		return screening.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.Screen(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// BatchScreen scores several candidates for one job
// POST /api/screenings/batch
func (h *Handlers) BatchScreen(c *fiber.Ctx) error {
	var req screening.BatchScreenRequest
	if err := c.BodyParser(&req); err != nil {
		return screening.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.BatchScreen(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetScreening GET /api/screenings/:id
func (h *Handlers) GetScreening(c *fiber.Ctx) error {
	result, err := h.service.GetScreening(c.Context(), kernel.ScreeningID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ListByJob GET /api/jobs/:id/screenings
func (h *Handlers) ListByJob(c *fiber.Ctx) error {
	results, err := h.service.ListByJob(c.Context(), kernel.JobID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"job_id": c.Params("id"), "results": results, "total": len(results)})
}

// ListByCandidate GET /api/candidates/:id/screenings
func (h *Handlers) ListByCandidate(c *fiber.Ctx) error {
	results, err := h.service.ListByCandidate(c.Context(), kernel.CandidateID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"candidate_id": c.Params("id"), "results": results, "total": len(results)})
}

// AnalyzeGaps GET /api/resumes/:id/gaps
func (h *Handlers) AnalyzeGaps(c *fiber.Ctx) error {
	gaps, err := h.service.AnalyzeGaps(c.Context(), kernel.ResumeID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(gaps)
}
