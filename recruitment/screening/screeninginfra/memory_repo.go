package screeninginfra

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/screening"
)

type pairKey struct {
	candidate kernel.CandidateID
	job       kernel.JobID
}

// MemoryScreeningRepository keeps one result per (candidate, job) in insertion order
type MemoryScreeningRepository struct {
	mu     sync.RWMutex
	order  []kernel.ScreeningID
	items  map[kernel.ScreeningID]screening.ScreeningResult
	byPair map[pairKey]kernel.ScreeningID
}

func NewMemoryScreeningRepository() *MemoryScreeningRepository {
	return &MemoryScreeningRepository{
		items:  make(map[kernel.ScreeningID]screening.ScreeningResult),
		byPair: make(map[pairKey]kernel.ScreeningID),
	}
}

var _ screening.Repository = (*MemoryScreeningRepository)(nil)

func (r *MemoryScreeningRepository) Upsert(_ context.Context, result *screening.ScreeningResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{candidate: result.CandidateID, job: result.JobID}
	if id, ok := r.byPair[key]; ok {
		previous := r.items[id]
		result.Replaces(&previous)
		r.items[id] = copyResult(*result)
		return nil
	}

	r.items[result.ID] = copyResult(*result)
	r.byPair[key] = result.ID
	r.order = append(r.order, result.ID)
	return nil
}

func (r *MemoryScreeningRepository) GetByID(_ context.Context, id kernel.ScreeningID) (*screening.ScreeningResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.items[id]
	if !ok {
		return nil, screening.ErrScreeningNotFound().WithDetail("screening_id", id)
	}
	out := copyResult(result)
	return &out, nil
}

func (r *MemoryScreeningRepository) GetByCandidateAndJob(_ context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*screening.ScreeningResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPair[pairKey{candidate: candidateID, job: jobID}]
	if !ok {
		return nil, screening.ErrScreeningNotFound().
			WithDetail("candidate_id", candidateID).
			WithDetail("job_id", jobID)
	}
	out := copyResult(r.items[id])
	return &out, nil
}

func (r *MemoryScreeningRepository) ListByJob(_ context.Context, jobID kernel.JobID) ([]screening.ScreeningResult, error) {
	return r.filter(func(s screening.ScreeningResult) bool { return s.JobID == jobID }), nil
}

func (r *MemoryScreeningRepository) ListByCandidate(_ context.Context, candidateID kernel.CandidateID) ([]screening.ScreeningResult, error) {
	return r.filter(func(s screening.ScreeningResult) bool { return s.CandidateID == candidateID }), nil
}

func (r *MemoryScreeningRepository) filter(keep func(screening.ScreeningResult) bool) []screening.ScreeningResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []screening.ScreeningResult{}
	for _, id := range r.order {
		if s := r.items[id]; keep(s) {
			out = append(out, copyResult(s))
		}
	}
	return out
}

func copyResult(s screening.ScreeningResult) screening.ScreeningResult {
	s.SkillMatch.FoundSkills = slices.Clone(s.SkillMatch.FoundSkills)
	s.SkillMatch.MissingSkills = slices.Clone(s.SkillMatch.MissingSkills)
	s.SkillMatch.PreferredSkills = slices.Clone(s.SkillMatch.PreferredSkills)
	s.ExperienceMatch.RelevantCompanies = slices.Clone(s.ExperienceMatch.RelevantCompanies)
	s.ExperienceMatch.RelevantRoles = slices.Clone(s.ExperienceMatch.RelevantRoles)
	s.EducationMatch.RelevantDegrees = slices.Clone(s.EducationMatch.RelevantDegrees)
	s.KeywordMatch.MatchedKeywords = maps.Clone(s.KeywordMatch.MatchedKeywords)
	s.GapAnalysis.GapPeriods = slices.Clone(s.GapAnalysis.GapPeriods)
	return s
}
