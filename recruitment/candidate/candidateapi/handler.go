package candidateapi

import (
	"github.com/Abraxas-365/talentrelay/pkg/fiberx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate/candidatesrv"
	"github.com/gofiber/fiber/v2"
)

// CandidateHandlers handles HTTP requests for candidates
type CandidateHandlers struct {
	service *candidatesrv.CandidateService
}

// NewCandidateHandlers creates new candidate handlers
func NewCandidateHandlers(service *candidatesrv.CandidateService) *CandidateHandlers {
	return &CandidateHandlers{
		service: service,
	}
}

// RegisterRoutes registers candidate routes. Routes with fixed segments under
// /api/candidates (duplicates) must be registered before this group.
func (h *CandidateHandlers) RegisterRoutes(app *fiber.App) {
	candidates := app.Group("/api/candidates")

	candidates.Post("/", h.CreateCandidate)
	candidates.Post("/from-resume/:resume_id", h.CreateFromResume)
	candidates.Post("/bulk/archive", h.BulkArchiveCandidates)
	candidates.Get("/", h.ListCandidates)

	candidates.Get("/:id", h.GetCandidate)
	candidates.Put("/:id", h.UpdateCandidate)
	candidates.Delete("/:id", h.DeleteCandidate)
	candidates.Post("/:id/archive", h.ArchiveCandidate)
	candidates.Post("/:id/unarchive", h.UnarchiveCandidate)
}

// CreateCandidate creates a new candidate
// POST /api/candidates
func (h *CandidateHandlers) CreateCandidate(c *fiber.Ctx) error {
	var req candidate.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	newCandidate, err := h.service.CreateCandidate(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newCandidate)
}

// CreateFromResume creates (or reuses) a candidate from a parsed resume
// POST /api/candidates/from-resume/:resume_id
func (h *CandidateHandlers) CreateFromResume(c *fiber.Ctx) error {
	resp, err := h.service.CreateFromResume(c.Context(), kernel.ResumeID(c.Params("resume_id")))
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if resp.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(resp)
}

// GetCandidate retrieves a candidate by ID
// GET /api/candidates/:id
func (h *CandidateHandlers) GetCandidate(c *fiber.Ctx) error {
	result, err := h.service.GetCandidateByID(c.Context(), kernel.CandidateID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ListCandidates lists candidates
// GET /api/candidates
func (h *CandidateHandlers) ListCandidates(c *fiber.Ctx) error {
	result, err := h.service.ListCandidates(c.Context(), candidate.ListCandidatesRequest{
		Pagination: fiberx.Pagination(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// UpdateCandidate updates a candidate
// PUT /api/candidates/:id
func (h *CandidateHandlers) UpdateCandidate(c *fiber.Ctx) error {
	var req candidate.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateCandidate(c.Context(), kernel.CandidateID(c.Params("id")), req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteCandidate deletes a candidate
// DELETE /api/candidates/:id
func (h *CandidateHandlers) DeleteCandidate(c *fiber.Ctx) error {
	if err := h.service.DeleteCandidate(c.Context(), kernel.CandidateID(c.Params("id"))); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ArchiveCandidate archives a candidate
// POST /api/candidates/:id/archive
func (h *CandidateHandlers) ArchiveCandidate(c *fiber.Ctx) error {
	if err := h.service.ArchiveCandidate(c.Context(), kernel.CandidateID(c.Params("id"))); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Candidate archived successfully",
	})
}

// UnarchiveCandidate unarchives a candidate
// POST /api/candidates/:id/unarchive
func (h *CandidateHandlers) UnarchiveCandidate(c *fiber.Ctx) error {
	if err := h.service.UnarchiveCandidate(c.Context(), kernel.CandidateID(c.Params("id"))); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Candidate unarchived successfully",
	})
}

// BulkArchiveCandidates archives several candidates
// POST /api/candidates/bulk/archive
func (h *CandidateHandlers) BulkArchiveCandidates(c *fiber.Ctx) error {
	var req candidate.BulkArchiveCandidatesRequest
	if err := c.BodyParser(&req); err != nil || len(req.CandidateIDs) == 0 {
		return candidate.ErrInvalidRequest().WithDetail("field", "candidate_ids")
	}

	result, err := h.service.BulkArchiveCandidates(c.Context(), req.CandidateIDs)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
