package candidate

import (
	"net/http"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Lookup and identity
var (
	CodeCandidateNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeCandidateAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Candidate already exists")
	CodeEmailAlreadyExists     = ErrRegistry.Register("EMAIL_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Another candidate already uses this email")
)

// Lifecycle
var (
	CodeCandidateArchived        = ErrRegistry.Register("ARCHIVED", errx.TypeBusiness, http.StatusConflict, "Archived candidates cannot be edited")
	CodeCandidateNotArchived     = ErrRegistry.Register("NOT_ARCHIVED", errx.TypeBusiness, http.StatusConflict, "Candidate is not archived")
	CodeCandidateAlreadyArchived = ErrRegistry.Register("ALREADY_ARCHIVED", errx.TypeBusiness, http.StatusConflict, "Candidate is already archived")
)

// Input
var (
	CodeInvalidEmail   = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid email format")
	CodeInvalidRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid candidate request")
)

func ErrCandidateNotFound() *errx.Error        { return ErrRegistry.New(CodeCandidateNotFound) }
func ErrCandidateAlreadyExists() *errx.Error   { return ErrRegistry.New(CodeCandidateAlreadyExists) }
func ErrEmailAlreadyExists() *errx.Error       { return ErrRegistry.New(CodeEmailAlreadyExists) }
func ErrCandidateArchived() *errx.Error        { return ErrRegistry.New(CodeCandidateArchived) }
func ErrCandidateNotArchived() *errx.Error     { return ErrRegistry.New(CodeCandidateNotArchived) }
func ErrCandidateAlreadyArchived() *errx.Error { return ErrRegistry.New(CodeCandidateAlreadyArchived) }
func ErrInvalidEmail() *errx.Error             { return ErrRegistry.New(CodeInvalidEmail) }
func ErrInvalidRequest() *errx.Error           { return ErrRegistry.New(CodeInvalidRequest) }
