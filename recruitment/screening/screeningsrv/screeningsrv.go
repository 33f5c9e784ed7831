package screeningsrv

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/Abraxas-365/talentrelay/recruitment/screening"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds the screenings running at once in BatchScreen
const batchConcurrency = 4

// ResumeSource looks up parsed resumes
type ResumeSource interface {
	GetResume(ctx context.Context, id kernel.ResumeID) (*resume.ParsedResume, error)
	GetLatestForCandidate(ctx context.Context, candidateID kernel.CandidateID) (*resume.ParsedResume, error)
}

// ScreeningService scores candidates' resumes against jobs and stores the results
type ScreeningService struct {
	repo          screening.Repository
	jobRepo       job.Repository
	candidateRepo candidate.Repository
	resumes       ResumeSource
	cfg           screening.Config
}

func NewScreeningService(
	repo screening.Repository,
	jobRepo job.Repository,
	candidateRepo candidate.Repository,
	resumes ResumeSource,
	cfg screening.Config,
) *ScreeningService {
	if cfg.QualifiedThreshold <= 0 {
		cfg.QualifiedThreshold = screening.DefaultQualifiedThreshold
	}
	return &ScreeningService{
		repo:          repo,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		resumes:       resumes,
		cfg:           cfg,
	}
}

// ============================================================================
// Screening
// ============================================================================

// Screen scores a candidate for a job. Screening the same pair again replaces
// the earlier result, keeping its id.
func (s *ScreeningService) Screen(ctx context.Context, req screening.ScreenRequest) (*screening.ScreeningResult, error) {
	if req.CandidateID.IsEmpty() || req.JobID.IsEmpty() {
		return nil, screening.ErrInvalidRequest().WithDetail("message", "candidate_id and job_id are required")
	}

	j, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	exists, err := s.candidateRepo.Exists(ctx, req.CandidateID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check candidate", errx.TypeInternal)
	}
	if !exists {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", req.CandidateID)
	}

	parsed, err := s.resolveResume(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := screening.Evaluate(j, parsed, s.cfg)
	result.ID = kernel.NewScreeningID(uuid.NewString())
	result.CandidateID = req.CandidateID
	result.JobID = req.JobID
	result.CreatedAt = now
	result.UpdatedAt = now

	if err := s.repo.Upsert(ctx, &result); err != nil {
		return nil, errx.Wrap(err, "failed to store screening result", errx.TypeInternal)
	}

	logx.Infof("Screened candidate %s for job %s: skills %.2f, overall %.0f, qualified=%t",
		result.CandidateID, result.JobID, result.SkillMatch.Score, result.OverallScore, result.Qualified)
	return &result, nil
}

// resolveResume returns the requested resume, or the candidate's latest when none is named
func (s *ScreeningService) resolveResume(ctx context.Context, req screening.ScreenRequest) (*resume.ParsedResume, error) {
	if req.ResumeID.IsEmpty() {
		return s.resumes.GetLatestForCandidate(ctx, req.CandidateID)
	}

	parsed, err := s.resumes.GetResume(ctx, req.ResumeID)
	if err != nil {
		return nil, err
	}
	if parsed.HasCandidate() && *parsed.CandidateID != req.CandidateID {
		return nil, screening.ErrResumeMismatch().
			WithDetail("resume_id", req.ResumeID).
			WithDetail("candidate_id", req.CandidateID)
	}
	return parsed, nil
}

// BatchScreen screens several candidates for one job. Failures are reported
// per candidate and do not stop the others.
func (s *ScreeningService) BatchScreen(ctx context.Context, req screening.BatchScreenRequest) (*screening.BatchScreenResponse, error) {
	if req.JobID.IsEmpty() || len(req.CandidateIDs) == 0 {
		return nil, screening.ErrInvalidRequest().WithDetail("message", "job_id and candidate_ids are required")
	}
	if _, err := s.jobRepo.GetByID(ctx, req.JobID); err != nil {
		return nil, err
	}

	results := make([]*screening.ScreeningResult, len(req.CandidateIDs))
	failed := make(map[kernel.CandidateID]string)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, candidateID := range req.CandidateIDs {
		g.Go(func() error {
			result, err := s.Screen(gctx, screening.ScreenRequest{CandidateID: candidateID, JobID: req.JobID})
			if err != nil {
				mu.Lock()
				failed[candidateID] = err.Error()
				mu.Unlock()
				return nil
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &screening.BatchScreenResponse{
		Results: []screening.ScreeningResult{},
		Failed:  failed,
		Total:   len(req.CandidateIDs),
	}
	for _, r := range results {
		if r != nil {
			resp.Results = append(resp.Results, *r)
		}
	}

	logx.Infof("Batch screening for job %s: %d screened, %d failed", req.JobID, len(resp.Results), len(failed))
	return resp, nil
}

// ============================================================================
// Queries
// ============================================================================

// GetScreening retrieves a screening result by ID
func (s *ScreeningService) GetScreening(ctx context.Context, id kernel.ScreeningID) (*screening.ScreeningResult, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForCandidateAndJob retrieves the current result of one pair
func (s *ScreeningService) GetForCandidateAndJob(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*screening.ScreeningResult, error) {
	return s.repo.GetByCandidateAndJob(ctx, candidateID, jobID)
}

// ListByJob lists the results of every candidate screened for a job
func (s *ScreeningService) ListByJob(ctx context.Context, jobID kernel.JobID) ([]screening.ScreeningResult, error) {
	exists, err := s.jobRepo.Exists(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check job", errx.TypeInternal)
	}
	if !exists {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID)
	}
	return s.repo.ListByJob(ctx, jobID)
}

// ListByCandidate lists a candidate's results across jobs
func (s *ScreeningService) ListByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]screening.ScreeningResult, error) {
	return s.repo.ListByCandidate(ctx, candidateID)
}

// AnalyzeGaps runs the gap detector over a stored resume
func (s *ScreeningService) AnalyzeGaps(ctx context.Context, resumeID kernel.ResumeID) (*screening.ResumeGapsResponse, error) {
	parsed, err := s.resumes.GetResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	return &screening.ResumeGapsResponse{
		ResumeID:    resumeID,
		GapAnalysis: screening.DetectGaps(parsed.Data.Experience, s.cfg.CurrentTime()),
	}, nil
}
