package questionnaireinfra

import (
	"context"
	"sync"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire"
)

// MemoryResponseRepository keeps responses in insertion order
type MemoryResponseRepository struct {
	mu    sync.RWMutex
	order []kernel.QuestionnaireResponseID
	items map[kernel.QuestionnaireResponseID]questionnaire.Response
}

func NewMemoryResponseRepository() *MemoryResponseRepository {
	return &MemoryResponseRepository{items: make(map[kernel.QuestionnaireResponseID]questionnaire.Response)}
}

var _ questionnaire.Repository = (*MemoryResponseRepository)(nil)

func (r *MemoryResponseRepository) Create(_ context.Context, response *questionnaire.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[response.ID]; ok {
		return questionnaire.ErrResponseAlreadyExists().WithDetail("response_id", response.ID)
	}
	r.items[response.ID] = copyResponse(*response)
	r.order = append(r.order, response.ID)
	return nil
}

func (r *MemoryResponseRepository) Update(_ context.Context, id kernel.QuestionnaireResponseID, response *questionnaire.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return questionnaire.ErrResponseNotFound().WithDetail("response_id", id)
	}
	stored := copyResponse(*response)
	stored.ID = id
	r.items[id] = stored
	return nil
}

func (r *MemoryResponseRepository) GetByID(_ context.Context, id kernel.QuestionnaireResponseID) (*questionnaire.Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	response, ok := r.items[id]
	if !ok {
		return nil, questionnaire.ErrResponseNotFound().WithDetail("response_id", id)
	}
	out := copyResponse(response)
	return &out, nil
}

func (r *MemoryResponseRepository) ListByCandidateAndJob(_ context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) ([]questionnaire.Response, error) {
	return r.filter(func(resp questionnaire.Response) bool {
		return resp.CandidateID == candidateID && resp.JobID == jobID
	}), nil
}

func (r *MemoryResponseRepository) ListByJob(_ context.Context, jobID kernel.JobID) ([]questionnaire.Response, error) {
	return r.filter(func(resp questionnaire.Response) bool {
		return resp.JobID == jobID
	}), nil
}

func (r *MemoryResponseRepository) filter(keep func(questionnaire.Response) bool) []questionnaire.Response {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []questionnaire.Response{}
	for _, id := range r.order {
		if response := r.items[id]; keep(response) {
			out = append(out, copyResponse(response))
		}
	}
	return out
}

func copyResponse(r questionnaire.Response) questionnaire.Response {
	r.Answers = append([]questionnaire.Answer(nil), r.Answers...)
	return r
}
