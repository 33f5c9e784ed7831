package rankingapi

import (
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/ranking"
	"github.com/Abraxas-365/talentrelay/recruitment/ranking/rankingsrv"
	"github.com/gofiber/fiber/v2"
)

var weightParams = []string{"skillsWeight", "experienceWeight", "educationWeight", "questionnaireWeight"}

// Handlers provides HTTP handlers for job rankings
type Handlers struct {
	service *rankingsrv.RankingService
}

func NewHandlers(service *rankingsrv.RankingService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// RegisterRoutes registers ranking routes
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Get("/api/jobs/:id/ranking", h.GetRanking)
	app.Post("/api/jobs/:id/ranking", h.PostRanking)
}

// GetRanking ranks with default weights, or with weights given as query parameters
// GET /api/jobs/:id/ranking?skillsWeight=1&experienceWeight=0
func (h *Handlers) GetRanking(c *fiber.Ctx) error {
	var weights *ranking.Weights
	if hasWeightParams(c) {
		weights = &ranking.Weights{
			Skills:        c.QueryFloat("skillsWeight", 0),
			Experience:    c.QueryFloat("experienceWeight", 0),
			Education:     c.QueryFloat("educationWeight", 0),
			Questionnaire: c.QueryFloat("questionnaireWeight", 0),
		}
	}
	return h.rank(c, weights)
}

// PostRanking ranks with the weights in the body
// POST /api/jobs/:id/ranking
func (h *Handlers) PostRanking(c *fiber.Ctx) error {
	var req ranking.RankRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return ranking.ErrInvalidWeights().WithDetail("parse_error", err.Error())
		}
	}
	return h.rank(c, req.Weights)
}

func (h *Handlers) rank(c *fiber.Ctx, weights *ranking.Weights) error {
	resp, err := h.service.Rank(c.Context(), kernel.JobID(c.Params("id")), weights)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func hasWeightParams(c *fiber.Ctx) bool {
	for _, p := range weightParams {
		if c.Query(p) != "" {
			return true
		}
	}
	return false
}
