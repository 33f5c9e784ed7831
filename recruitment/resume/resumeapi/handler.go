package resumeapi

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/talentrelay/pkg/fiberx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumesrv"
	"github.com/gofiber/fiber/v2"
)

type ResumeHandlers struct {
	service     *resumesrv.Service
	maxFileSize int64
}

func NewResumeHandlers(service *resumesrv.Service, maxFileSize int64) *ResumeHandlers {
	return &ResumeHandlers{
		service:     service,
		maxFileSize: maxFileSize,
	}
}

func (h *ResumeHandlers) RegisterRoutes(app *fiber.App) {
	// parse-cv boundary, same contract as the remote parsing service
	app.Post(resumeinfra.ParseCVPath, h.ParseCV)
	app.Get(resumeinfra.ParseCVStatusPath, h.ParseCVStatus)

	resumes := app.Group("/api/resumes")

	resumes.Post("/parse", h.ParseFile)
	resumes.Post("/parse-text", h.ParseText)
	resumes.Post("/parse-async", h.ParseFileAsync)

	resumes.Get("/jobs/stats", h.GetQueueStats)
	resumes.Get("/jobs/:job_id", h.GetJobStatus)

	resumes.Get("/", h.ListResumes)
	resumes.Get("/:id", h.GetResume)
	resumes.Put("/:id/candidate", h.LinkCandidate)
}

// ============================================================================
// parse-cv boundary
// ============================================================================

// ParseCV parses an uploaded cvFile with the local pipeline
// POST /api/parse-cv
func (h *ResumeHandlers) ParseCV(c *fiber.Ctx) error {
	file, err := c.FormFile(resumeinfra.ParseCVFormField)
	if err != nil {
		return fiberx.BadRequest(c, resumeinfra.ParseCVFormField+" is required")
	}

	data, err := fiberx.ReadFormFile(file, h.maxFileSize)
	if err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeFileReadFailed, err)
	}

	parsed, err := h.service.ParseCV(c.Context(), file.Filename, data)
	if err != nil {
		return err
	}

	return c.JSON(parsed)
}

// ParseCVStatus is the health probe of the parse-cv boundary
// GET /api/parse-cv/status
func (h *ResumeHandlers) ParseCVStatus(c *fiber.Ctx) error {
	return c.JSON(resume.ParseCVStatusResponse{Status: resume.ParseCVStatusAvailable})
}

// ============================================================================
// Parse Handlers
// ============================================================================

// ParseFile parses and stores an uploaded resume
// POST /api/resumes/parse
func (h *ResumeHandlers) ParseFile(c *fiber.Ctx) error {
	req, err := h.fileRequest(c)
	if err != nil {
		return err
	}

	model, err := h.service.ParseFile(c.Context(), *req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(model)
}

// ParseText parses and stores raw resume text
// POST /api/resumes/parse-text
func (h *ResumeHandlers) ParseText(c *fiber.Ctx) error {
	var req resume.ParseTextRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.BadRequest(c, "invalid request body")
	}

	model, err := h.service.ParseText(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(model)
}

// ParseFileAsync queues an uploaded resume for background parsing
// POST /api/resumes/parse-async
func (h *ResumeHandlers) ParseFileAsync(c *fiber.Ctx) error {
	req, err := h.fileRequest(c)
	if err != nil {
		return err
	}

	job, err := h.service.ParseFileAsync(c.Context(), *req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":    "Resume upload successful, processing started",
		"job":        job,
		"status_url": fmt.Sprintf("/api/resumes/jobs/%s", job.JobID),
	})
}

func (h *ResumeHandlers) fileRequest(c *fiber.Ctx) (*resume.ParseFileRequest, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, resume.ErrEmptyInput().WithDetail("field", "file")
	}

	req := &resume.ParseFileRequest{
		FileName: file.Filename,
		Size:     file.Size,
		MimeType: file.Header.Get("Content-Type"),
	}
	if id := strings.TrimSpace(c.FormValue("candidate_id")); id != "" {
		candidateID := kernel.NewCandidateID(id)
		req.CandidateID = &candidateID
	}

	if err := h.service.ValidateFile(req.FileName, req.Size); err != nil {
		return nil, err
	}

	req.Data, err = fiberx.ReadFormFile(file, h.maxFileSize)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeFileReadFailed, err)
	}
	return req, nil
}

// ============================================================================
// Job Handlers
// ============================================================================

// GetJobStatus reports the progress of an async parse
// GET /api/resumes/jobs/:job_id
func (h *ResumeHandlers) GetJobStatus(c *fiber.Ctx) error {
	jobID := kernel.NewProcessingJobID(c.Params("job_id"))
	if jobID.IsEmpty() {
		return fiberx.BadRequest(c, "invalid job ID")
	}

	status, err := h.service.GetJobStatus(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(status)
}

// GetQueueStats reports the queue backlog
// GET /api/resumes/jobs/stats
func (h *ResumeHandlers) GetQueueStats(c *fiber.Ctx) error {
	stats, err := h.service.QueueStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// ============================================================================
// Query Handlers
// ============================================================================

// GetResume retrieves a parsed resume by ID
// GET /api/resumes/:id
func (h *ResumeHandlers) GetResume(c *fiber.Ctx) error {
	resumeID := kernel.NewResumeID(c.Params("id"))
	if resumeID.IsEmpty() {
		return fiberx.BadRequest(c, "invalid resume ID")
	}

	model, err := h.service.GetResume(c.Context(), resumeID)
	if err != nil {
		return err
	}

	return c.JSON(model)
}

// ListResumes lists parsed resumes
// GET /api/resumes?candidate_id=&page=1&page_size=20
func (h *ResumeHandlers) ListResumes(c *fiber.Ctx) error {
	req := resume.ListResumesRequest{PaginationOptions: fiberx.Pagination(c)}
	if id := c.Query("candidate_id"); id != "" {
		candidateID := kernel.NewCandidateID(id)
		req.CandidateID = &candidateID
	}

	page, err := h.service.ListResumes(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(page)
}

type linkCandidateRequest struct {
	CandidateID kernel.CandidateID `json:"candidate_id"`
}

// LinkCandidate assigns a parsed resume to a candidate
// PUT /api/resumes/:id/candidate
func (h *ResumeHandlers) LinkCandidate(c *fiber.Ctx) error {
	resumeID := kernel.NewResumeID(c.Params("id"))

	var req linkCandidateRequest
	if err := c.BodyParser(&req); err != nil || req.CandidateID.IsEmpty() {
		return fiberx.BadRequest(c, "candidate_id is required")
	}

	model, err := h.service.LinkCandidate(c.Context(), resumeID, req.CandidateID)
	if err != nil {
		return err
	}

	return c.JSON(model)
}
