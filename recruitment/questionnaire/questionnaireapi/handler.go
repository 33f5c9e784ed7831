package questionnaireapi

import (
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire/questionnairesrv"
	"github.com/gofiber/fiber/v2"
)

type QuestionnaireHandlers struct {
	service *questionnairesrv.QuestionnaireService
}

func NewQuestionnaireHandlers(service *questionnairesrv.QuestionnaireService) *QuestionnaireHandlers {
	return &QuestionnaireHandlers{service: service}
}

func (h *QuestionnaireHandlers) RegisterRoutes(app *fiber.App) {
	responses := app.Group("/api/questionnaires/responses")

	responses.Post("/", h.SubmitResponse)
	responses.Get("/", h.ListResponses)
	responses.Get("/score", h.GetCandidateScore)
	responses.Get("/:id", h.GetResponse)
	responses.Post("/:id/submit", h.SubmitDraft)
	responses.Post("/:id/withdraw", h.WithdrawResponse)
}

// SubmitResponse records a questionnaire response
// POST /api/questionnaires/responses
func (h *QuestionnaireHandlers) SubmitResponse(c *fiber.Ctx) error {
	var req questionnaire.SubmitResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return questionnaire.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	response, err := h.service.SubmitResponse(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ListResponses GET /api/questionnaires/responses?job_id=&candidate_id=
func (h *QuestionnaireHandlers) ListResponses(c *fiber.Ctx) error {
	responses, err := h.service.ListResponses(c.Context(), questionnaire.ListResponsesRequest{
		CandidateID: kernel.CandidateID(c.Query("candidate_id")),
		JobID:       kernel.JobID(c.Query("job_id")),
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"responses": responses,
		"total":     len(responses),
	})
}

// GetCandidateScore GET /api/questionnaires/responses/score?job_id=&candidate_id=
func (h *QuestionnaireHandlers) GetCandidateScore(c *fiber.Ctx) error {
	score, err := h.service.CandidateScore(c.Context(),
		kernel.CandidateID(c.Query("candidate_id")),
		kernel.JobID(c.Query("job_id")),
	)
	if err != nil {
		return err
	}

	return c.JSON(score)
}

// GetResponse GET /api/questionnaires/responses/:id
func (h *QuestionnaireHandlers) GetResponse(c *fiber.Ctx) error {
	response, err := h.service.GetResponse(c.Context(), kernel.QuestionnaireResponseID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// SubmitDraft POST /api/questionnaires/responses/:id/submit
func (h *QuestionnaireHandlers) SubmitDraft(c *fiber.Ctx) error {
	response, err := h.service.SubmitDraft(c.Context(), kernel.QuestionnaireResponseID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// WithdrawResponse POST /api/questionnaires/responses/:id/withdraw
func (h *QuestionnaireHandlers) WithdrawResponse(c *fiber.Ctx) error {
	response, err := h.service.WithdrawResponse(c.Context(), kernel.QuestionnaireResponseID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(response)
}
