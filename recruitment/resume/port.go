package resume

import (
	"context"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

// Repository is the ParsedResume store. Lists are ordered by upload date, oldest first.
type Repository interface {
	// Create stores a new parsed resume
	Create(ctx context.Context, r *ParsedResume) error

	// GetByID retrieves a parsed resume by ID
	GetByID(ctx context.Context, id kernel.ResumeID) (*ParsedResume, error)

	// AssignCandidate links a resume to its candidate
	AssignCandidate(ctx context.Context, id kernel.ResumeID, candidateID kernel.CandidateID) error

	// ListByCandidateID retrieves every resume of a candidate
	ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID) ([]*ParsedResume, error)

	// GetLatestByCandidateID retrieves the most recently uploaded resume of a candidate
	GetLatestByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*ParsedResume, error)

	// List retrieves resumes with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[ParsedResume], error)

	// ListAll retrieves every stored resume
	ListAll(ctx context.Context) ([]*ParsedResume, error)
}

// RemoteParser is the external parse-cv service
type RemoteParser interface {
	// ParseFile uploads a file and returns the structured data
	ParseFile(ctx context.Context, fileName string, data []byte) (*ParsedData, error)

	// Status checks that the service is available
	Status(ctx context.Context) error
}

type JobRepository interface {
	Create(ctx context.Context, job *ProcessingJob) error
	Update(ctx context.Context, job *ProcessingJob) error
	GetByID(ctx context.Context, jobID kernel.ProcessingJobID) (*ProcessingJob, error)

	// Update status helpers
	MarkAsProcessing(ctx context.Context, jobID kernel.ProcessingJobID) error
	MarkAsCompleted(ctx context.Context, jobID kernel.ProcessingJobID, resumeID kernel.ResumeID) error
	MarkAsFailed(ctx context.Context, jobID kernel.ProcessingJobID, errorMsg string, errorDetails map[string]any) error
	UpdateProgress(ctx context.Context, jobID kernel.ProcessingJobID, step ProcessingStep, percentage int) error
}

// ParseQueue carries processing jobs from the API to the worker pool
type ParseQueue interface {
	// Push makes a job available to workers immediately
	Push(ctx context.Context, job *ProcessingJob) error

	// Pop waits up to timeout for a job. A nil job means the wait timed out.
	Pop(ctx context.Context, timeout time.Duration) (*ProcessingJob, error)

	// Defer parks a job until delay has elapsed
	Defer(ctx context.Context, job *ProcessingJob, delay time.Duration) error

	// PromoteDue moves parked jobs whose delay has elapsed to the ready list
	PromoteDue(ctx context.Context) (int, error)

	Stats(ctx context.Context) (QueueStats, error)
}

// QueueStats reports how many jobs wait in the ready and parked lists
type QueueStats struct {
	Ready   int64 `json:"ready_jobs"`
	Delayed int64 `json:"delayed_jobs"`
}
