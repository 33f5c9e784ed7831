package questionnaire

import (
	"context"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

type Repository interface {
	// Create stores a new response
	Create(ctx context.Context, response *Response) error

	// Update updates an existing response
	Update(ctx context.Context, id kernel.QuestionnaireResponseID, response *Response) error

	// GetByID retrieves a response by ID
	GetByID(ctx context.Context, id kernel.QuestionnaireResponseID) (*Response, error)

	// ListByCandidateAndJob retrieves the responses of one candidate to one job, oldest first
	ListByCandidateAndJob(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) ([]Response, error)

	// ListByJob retrieves every response to a job, oldest first
	ListByJob(ctx context.Context, jobID kernel.JobID) ([]Response, error)
}
