package resumeinfra

import (
	"context"
	"sync"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
)

// MemoryResumeRepository keeps parsed resumes in insertion order
type MemoryResumeRepository struct {
	mu    sync.RWMutex
	order []kernel.ResumeID
	items map[kernel.ResumeID]resume.ParsedResume
}

func NewMemoryResumeRepository() *MemoryResumeRepository {
	return &MemoryResumeRepository{
		items: make(map[kernel.ResumeID]resume.ParsedResume),
	}
}

func (r *MemoryResumeRepository) Create(_ context.Context, model *resume.ParsedResume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[model.ID]; ok {
		return resume.ErrResumeAlreadyExists().WithDetail("resume_id", model.ID)
	}
	r.items[model.ID] = *model
	r.order = append(r.order, model.ID)
	return nil
}

func (r *MemoryResumeRepository) GetByID(_ context.Context, id kernel.ResumeID) (*resume.ParsedResume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.items[id]
	if !ok {
		return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id)
	}
	return &model, nil
}

func (r *MemoryResumeRepository) AssignCandidate(_ context.Context, id kernel.ResumeID, candidateID kernel.CandidateID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	model, ok := r.items[id]
	if !ok {
		return resume.ErrResumeNotFound().WithDetail("resume_id", id)
	}
	model.AssignCandidate(candidateID)
	r.items[id] = model
	return nil
}

func (r *MemoryResumeRepository) ListByCandidateID(_ context.Context, candidateID kernel.CandidateID) ([]*resume.ParsedResume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*resume.ParsedResume
	for _, id := range r.order {
		model := r.items[id]
		if model.HasCandidate() && *model.CandidateID == candidateID {
			out = append(out, &model)
		}
	}
	return out, nil
}

func (r *MemoryResumeRepository) GetLatestByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*resume.ParsedResume, error) {
	all, _ := r.ListByCandidateID(ctx, candidateID)
	if len(all) == 0 {
		return nil, resume.ErrResumeNotFound().WithDetail("candidate_id", candidateID)
	}

	latest := all[0]
	for _, model := range all[1:] {
		if !model.UploadDate.Before(latest.UploadDate) {
			latest = model
		}
	}
	return latest, nil
}

func (r *MemoryResumeRepository) List(_ context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ParsedResume], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]resume.ParsedResume, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.items[id])
	}
	return kernel.PageOf(all, pagination), nil
}

func (r *MemoryResumeRepository) ListAll(_ context.Context) ([]*resume.ParsedResume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*resume.ParsedResume, 0, len(r.order))
	for _, id := range r.order {
		model := r.items[id]
		out = append(out, &model)
	}
	return out, nil
}
