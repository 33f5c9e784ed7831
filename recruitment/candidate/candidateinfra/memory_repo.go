package candidateinfra

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate"
)

// MemoryCandidateRepository keeps candidates in process memory
type MemoryCandidateRepository struct {
	mu         sync.RWMutex
	candidates map[kernel.CandidateID]candidate.Candidate
}

func NewMemoryCandidateRepository() *MemoryCandidateRepository {
	return &MemoryCandidateRepository{candidates: make(map[kernel.CandidateID]candidate.Candidate)}
}

var _ candidate.Repository = (*MemoryCandidateRepository)(nil)

func (r *MemoryCandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.candidates[c.ID]; ok {
		return candidate.ErrCandidateAlreadyExists().WithDetail("candidate_id", c.ID)
	}
	if r.emailTaken(c.Email, c.ID) {
		return candidate.ErrEmailAlreadyExists().WithDetail("email", c.Email)
	}
	r.candidates[c.ID] = *c
	return nil
}

func (r *MemoryCandidateRepository) Update(ctx context.Context, id kernel.CandidateID, c *candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.candidates[id]; !ok {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id)
	}
	if r.emailTaken(c.Email, id) {
		return candidate.ErrEmailAlreadyExists().WithDetail("email", c.Email)
	}
	stored := *c
	stored.ID = id
	r.candidates[id] = stored
	return nil
}

// emailTaken must be called with the lock held
func (r *MemoryCandidateRepository) emailTaken(email kernel.Email, except kernel.CandidateID) bool {
	needle := email.Normalized()
	if needle == "" {
		return false
	}
	for id, c := range r.candidates {
		if id != except && c.Email.Normalized() == needle {
			return true
		}
	}
	return false
}

func (r *MemoryCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.candidates[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id)
	}
	return &c, nil
}

func (r *MemoryCandidateRepository) GetByEmail(ctx context.Context, email kernel.Email) (*candidate.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := email.Normalized()
	for _, c := range r.candidates {
		if needle != "" && c.Email.Normalized() == needle {
			found := c
			return &found, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound().WithDetail("email", email)
}

func (r *MemoryCandidateRepository) Delete(ctx context.Context, id kernel.CandidateID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.candidates[id]; !ok {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id)
	}
	delete(r.candidates, id)
	return nil
}

func (r *MemoryCandidateRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[candidate.Candidate], error) {
	r.mu.RLock()
	all := make([]candidate.Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		all = append(all, c)
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

func (r *MemoryCandidateRepository) Exists(ctx context.Context, id kernel.CandidateID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.candidates[id]
	return ok, nil
}
