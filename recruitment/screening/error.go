package screening

import (
	"net/http"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SCREENING")

// Error codes
var (
	CodeScreeningNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Screening result not found")
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid screening request")
	CodeResumeMismatch    = ErrRegistry.Register("RESUME_MISMATCH", errx.TypeConflict, http.StatusConflict, "Resume belongs to another candidate")
)

// Helper functions
func ErrScreeningNotFound() *errx.Error {
	return ErrRegistry.New(CodeScreeningNotFound)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrResumeMismatch() *errx.Error {
	return ErrRegistry.New(CodeResumeMismatch)
}
