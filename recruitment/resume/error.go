package resume

import (
	"net/http"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

// Error codes - Resume Operations
var (
	CodeResumeNotFound            = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeResumeAlreadyExists       = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Resume already exists")
	CodeInvalidResumeData         = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid resume data")
	CodeUnsupportedFormat         = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unsupported file format")
	CodeFileTooLarge              = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "File exceeds the maximum upload size")
	CodeEmptyInput                = ErrRegistry.Register("EMPTY_INPUT", errx.TypeValidation, http.StatusBadRequest, "Resume text or file is required")
	CodeFileReadFailed            = ErrRegistry.Register("FILE_READ_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to read file")
	CodeFileStoreFailed           = ErrRegistry.Register("FILE_STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store file")
	CodeRemoteParserUnavailable   = ErrRegistry.Register("REMOTE_PARSER_UNAVAILABLE", errx.TypeExternal, http.StatusServiceUnavailable, "Remote parsing service unavailable")
	CodeResumeAlreadyHasCandidate = ErrRegistry.Register("ALREADY_LINKED", errx.TypeConflict, http.StatusConflict, "Resume is already linked to a candidate")
	CodeAsyncParsingDisabled      = ErrRegistry.Register("ASYNC_DISABLED", errx.TypeBusiness, http.StatusServiceUnavailable, "Asynchronous parsing is not configured")
)

// Error codes - Job/Queue Operations
var (
	CodeJobNotFound          = ErrRegistry.Register("JOB_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Processing job not found")
	CodeQueueEnqueueFailed   = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue job")
	CodeJobCreationFailed    = ErrRegistry.Register("JOB_CREATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to create job record")
	CodeJobUpdateFailed      = ErrRegistry.Register("JOB_UPDATE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to update job status")
	CodeJobRetryFailed       = ErrRegistry.Register("JOB_RETRY_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to schedule job retry")
	CodeJobMaxRetriesReached = ErrRegistry.Register("JOB_MAX_RETRIES", errx.TypeInternal, http.StatusInternalServerError, "Job exceeded maximum retry attempts")
	CodeJobFailed            = ErrRegistry.Register("JOB_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Job processing failed")
	CodeQueueUnavailable     = ErrRegistry.Register("QUEUE_UNAVAILABLE", errx.TypeExternal, http.StatusServiceUnavailable, "Parse queue is unavailable")
)

// Helper functions - Resume Operations
func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrResumeAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeResumeAlreadyExists)
}

func ErrInvalidResumeData() *errx.Error {
	return ErrRegistry.New(CodeInvalidResumeData)
}

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrEmptyInput() *errx.Error {
	return ErrRegistry.New(CodeEmptyInput)
}

func ErrFileReadFailed() *errx.Error {
	return ErrRegistry.New(CodeFileReadFailed)
}

func ErrFileStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeFileStoreFailed)
}

func ErrRemoteParserUnavailable() *errx.Error {
	return ErrRegistry.New(CodeRemoteParserUnavailable)
}

func ErrResumeAlreadyHasCandidate() *errx.Error {
	return ErrRegistry.New(CodeResumeAlreadyHasCandidate)
}

func ErrAsyncParsingDisabled() *errx.Error {
	return ErrRegistry.New(CodeAsyncParsingDisabled)
}

// Helper functions - Job/Queue Operations
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrJobCreationFailed() *errx.Error {
	return ErrRegistry.New(CodeJobCreationFailed)
}

func ErrJobUpdateFailed() *errx.Error {
	return ErrRegistry.New(CodeJobUpdateFailed)
}

func ErrJobRetryFailed() *errx.Error {
	return ErrRegistry.New(CodeJobRetryFailed)
}

func ErrJobMaxRetriesReached() *errx.Error {
	return ErrRegistry.New(CodeJobMaxRetriesReached)
}

func ErrJobFailed() *errx.Error {
	return ErrRegistry.New(CodeJobFailed)
}
