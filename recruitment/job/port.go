package job

import (
	"context"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

// Repository stores job postings. Screening and ranking only read them,
// through GetByID and Exists.
type Repository interface {
	Create(ctx context.Context, job *Job) error
	Update(ctx context.Context, id kernel.JobID, job *Job) error
	Delete(ctx context.Context, id kernel.JobID) error

	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)
	Exists(ctx context.Context, id kernel.JobID) (bool, error)

	// List pages through jobs, newest first. A nil status lists every job.
	List(ctx context.Context, status *JobStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)
}
