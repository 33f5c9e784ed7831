package duplicate

import (
	"net/http"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("DUPLICATE")

// Error codes
var (
	CodeInvalidThreshold = ErrRegistry.Register("INVALID_THRESHOLD", errx.TypeValidation, http.StatusBadRequest, "Threshold must be greater than 0 and at most 1")
	CodeInvalidRequest   = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid duplicate request")
)

// Helper functions
func ErrInvalidThreshold() *errx.Error {
	return ErrRegistry.New(CodeInvalidThreshold)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
