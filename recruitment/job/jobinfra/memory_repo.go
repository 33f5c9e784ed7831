package jobinfra

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
)

// MemoryJobRepository keeps jobs in process memory
type MemoryJobRepository struct {
	mu   sync.RWMutex
	jobs map[kernel.JobID]job.Job
}

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{jobs: make(map[kernel.JobID]job.Job)}
}

var _ job.Repository = (*MemoryJobRepository)(nil)

func (r *MemoryJobRepository) Create(ctx context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[j.ID]; ok {
		return job.ErrJobAlreadyExists().WithDetail("job_id", j.ID)
	}
	r.jobs[j.ID] = clone(*j)
	return nil
}

func (r *MemoryJobRepository) Update(ctx context.Context, id kernel.JobID, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id)
	}
	stored := clone(*j)
	stored.ID = id
	r.jobs[id] = stored
	return nil
}

func (r *MemoryJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id)
	}
	out := clone(j)
	return &out, nil
}

func (r *MemoryJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id)
	}
	delete(r.jobs, id)
	return nil
}

// List returns jobs newest first, ties broken by id
func (r *MemoryJobRepository) List(ctx context.Context, status *job.JobStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	r.mu.RLock()
	all := make([]job.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if status != nil && j.Status != *status {
			continue
		}
		all = append(all, clone(j))
	}
	r.mu.RUnlock()

	sort.Slice(all, func(a, b int) bool {
		if all[a].CreatedAt.Equal(all[b].CreatedAt) {
			return all[a].ID < all[b].ID
		}
		return all[a].CreatedAt.After(all[b].CreatedAt)
	})

	return kernel.PageOf(all, pagination), nil
}

func (r *MemoryJobRepository) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.jobs[id]
	return ok, nil
}

func clone(j job.Job) job.Job {
	j.RequiredSkills = append([]string(nil), j.RequiredSkills...)
	j.PreferredSkills = append([]string(nil), j.PreferredSkills...)
	return j
}
