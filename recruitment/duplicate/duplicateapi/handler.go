package duplicateapi

import (
	"strconv"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/duplicate"
	"github.com/Abraxas-365/talentrelay/recruitment/duplicate/duplicatesrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for duplicate detection
type Handlers struct {
	service *duplicatesrv.DuplicateService
}

func NewHandlers(service *duplicatesrv.DuplicateService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// RegisterRoutes registers duplicate routes. Call it before the candidate
// routes so /api/candidates/:id does not capture "duplicates".
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Get("/api/candidates/duplicates", h.FindDuplicates)
	app.Get("/api/candidates/duplicates/compare", h.Compare)
}

// FindDuplicates GET /api/candidates/duplicates?threshold=0.8
func (h *Handlers) FindDuplicates(c *fiber.Ctx) error {
	var threshold *float64
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return duplicate.ErrInvalidThreshold().WithDetail("threshold", raw)
		}
		threshold = &v
	}

	resp, err := h.service.FindDuplicates(c.Context(), threshold)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Compare GET /api/candidates/duplicates/compare?a=<id>&b=<id>
func (h *Handlers) Compare(c *fiber.Ctx) error {
	resp, err := h.service.Compare(c.Context(), kernel.CandidateID(c.Query("a")), kernel.CandidateID(c.Query("b")))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
