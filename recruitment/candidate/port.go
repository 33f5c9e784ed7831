package candidate

import (
	"context"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

// Repository stores candidates. Lookups of a missing candidate return
// CANDIDATE.NOT_FOUND and email lookups compare normalized addresses.
type Repository interface {
	Create(ctx context.Context, candidate *Candidate) error
	Update(ctx context.Context, id kernel.CandidateID, candidate *Candidate) error
	Delete(ctx context.Context, id kernel.CandidateID) error

	GetByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)
	GetByEmail(ctx context.Context, email kernel.Email) (*Candidate, error)
	Exists(ctx context.Context, id kernel.CandidateID) (bool, error)

	// List pages through candidates, newest first
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Candidate], error)
}
