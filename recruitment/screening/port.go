package screening

import (
	"context"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

// Repository is the ScreeningResult store
type Repository interface {
	// Upsert stores a result, replacing the one for the same candidate and job
	Upsert(ctx context.Context, result *ScreeningResult) error

	// GetByID retrieves a screening result by ID
	GetByID(ctx context.Context, id kernel.ScreeningID) (*ScreeningResult, error)

	// GetByCandidateAndJob retrieves the result of one candidate for one job
	GetByCandidateAndJob(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*ScreeningResult, error)

	// ListByJob retrieves every result for a job, oldest first
	ListByJob(ctx context.Context, jobID kernel.JobID) ([]ScreeningResult, error)

	// ListByCandidate retrieves every result of a candidate, oldest first
	ListByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]ScreeningResult, error)
}
