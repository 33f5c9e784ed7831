package ranking

import (
	"net/http"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("RANKING")

// Error codes
var (
	CodeInvalidWeights = ErrRegistry.Register("INVALID_WEIGHTS", errx.TypeValidation, http.StatusBadRequest, "Invalid ranking weights")
)

// Helper functions
func ErrInvalidWeights() *errx.Error {
	return ErrRegistry.New(CodeInvalidWeights)
}
