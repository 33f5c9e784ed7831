package questionnaire

import (
	"net/http"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("QUESTIONNAIRE")

// Error codes
var (
	CodeResponseNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Questionnaire response not found")
	CodeResponseAlreadyExists   = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Questionnaire response already exists")
	CodeInvalidStatusTransition = ErrRegistry.Register("INVALID_STATUS_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Invalid status transition")
	CodeInvalidScore            = ErrRegistry.Register("INVALID_SCORE", errx.TypeValidation, http.StatusBadRequest, "Score must be between 0 and 100")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeNoSubmittedResponse     = ErrRegistry.Register("NO_SUBMITTED_RESPONSE", errx.TypeNotFound, http.StatusNotFound, "No submitted questionnaire response")
)

// Helper functions
func ErrResponseNotFound() *errx.Error {
	return ErrRegistry.New(CodeResponseNotFound)
}

func ErrResponseAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeResponseAlreadyExists)
}

func ErrInvalidStatusTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatusTransition)
}

func ErrInvalidScore() *errx.Error {
	return ErrRegistry.New(CodeInvalidScore)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrNoSubmittedResponse() *errx.Error {
	return ErrRegistry.New(CodeNoSubmittedResponse)
}
