package questionnairesrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire"
	"github.com/google/uuid"
)

// QuestionnaireService records questionnaire responses and serves their scores
type QuestionnaireService struct {
	repo          questionnaire.Repository
	candidateRepo candidate.Repository
	jobRepo       job.Repository
}

func NewQuestionnaireService(
	repo questionnaire.Repository,
	candidateRepo candidate.Repository,
	jobRepo job.Repository,
) *QuestionnaireService {
	return &QuestionnaireService{
		repo:          repo,
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
	}
}

// SubmitResponse records a scored response for an existing candidate and job
func (s *QuestionnaireService) SubmitResponse(ctx context.Context, req questionnaire.SubmitResponseRequest) (*questionnaire.Response, error) {
	if req.CandidateID.IsEmpty() || req.JobID.IsEmpty() {
		return nil, questionnaire.ErrInvalidRequest().WithDetail("message", "candidate_id and job_id are required")
	}

	score := questionnaire.ScoreAnswers(req.Answers)
	if req.Score != nil {
		score = *req.Score
	}
	if score < 0 || score > 100 {
		return nil, questionnaire.ErrInvalidScore().WithDetail("score", score)
	}

	if err := s.ensureReferences(ctx, req.CandidateID, req.JobID); err != nil {
		return nil, err
	}

	now := time.Now()
	answers := req.Answers
	if answers == nil {
		answers = []questionnaire.Answer{}
	}
	response := &questionnaire.Response{
		ID:          kernel.NewQuestionnaireResponseID(uuid.NewString()),
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		Answers:     answers,
		Score:       score,
		Status:      questionnaire.ResponseStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !req.Draft {
		if err := response.Submit(); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, response); err != nil {
		return nil, errx.Wrap(err, "failed to store questionnaire response", errx.TypeInternal)
	}

	logx.Infof("Questionnaire response %s recorded for candidate %s on job %s (score %.2f, %s)",
		response.ID, response.CandidateID, response.JobID, response.Score, response.Status)
	return response, nil
}

func (s *QuestionnaireService) ensureReferences(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) error {
	exists, err := s.candidateRepo.Exists(ctx, candidateID)
	if err != nil {
		return errx.Wrap(err, "failed to check candidate", errx.TypeInternal)
	}
	if !exists {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", candidateID)
	}

	exists, err = s.jobRepo.Exists(ctx, jobID)
	if err != nil {
		return errx.Wrap(err, "failed to check job", errx.TypeInternal)
	}
	if !exists {
		return job.ErrJobNotFound().WithDetail("job_id", jobID)
	}
	return nil
}

// SubmitDraft submits a previously saved draft
func (s *QuestionnaireService) SubmitDraft(ctx context.Context, id kernel.QuestionnaireResponseID) (*questionnaire.Response, error) {
	return s.transition(ctx, id, (*questionnaire.Response).Submit)
}

// WithdrawResponse removes a response from ranking
func (s *QuestionnaireService) WithdrawResponse(ctx context.Context, id kernel.QuestionnaireResponseID) (*questionnaire.Response, error) {
	return s.transition(ctx, id, (*questionnaire.Response).Withdraw)
}

func (s *QuestionnaireService) transition(ctx context.Context, id kernel.QuestionnaireResponseID, apply func(*questionnaire.Response) error) (*questionnaire.Response, error) {
	response, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(response); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, response); err != nil {
		return nil, errx.Wrap(err, "failed to update questionnaire response", errx.TypeInternal)
	}
	return response, nil
}

// GetResponse retrieves a response by ID
func (s *QuestionnaireService) GetResponse(ctx context.Context, id kernel.QuestionnaireResponseID) (*questionnaire.Response, error) {
	return s.repo.GetByID(ctx, id)
}

// GetResponsesForCandidateAndJob lists a candidate's responses to a job
func (s *QuestionnaireService) GetResponsesForCandidateAndJob(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) ([]questionnaire.Response, error) {
	responses, err := s.repo.ListByCandidateAndJob(ctx, candidateID, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list questionnaire responses", errx.TypeInternal)
	}
	return responses, nil
}

// ListResponses lists the responses to a job, optionally for one candidate
func (s *QuestionnaireService) ListResponses(ctx context.Context, req questionnaire.ListResponsesRequest) ([]questionnaire.Response, error) {
	if req.JobID.IsEmpty() {
		return nil, questionnaire.ErrInvalidRequest().WithDetail("field", "job_id")
	}
	if !req.CandidateID.IsEmpty() {
		return s.GetResponsesForCandidateAndJob(ctx, req.CandidateID, req.JobID)
	}
	responses, err := s.repo.ListByJob(ctx, req.JobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list questionnaire responses", errx.TypeInternal)
	}
	return responses, nil
}

// CandidateScore averages the submitted responses of a candidate to a job
func (s *QuestionnaireService) CandidateScore(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*questionnaire.CandidateScore, error) {
	responses, err := s.GetResponsesForCandidateAndJob(ctx, candidateID, jobID)
	if err != nil {
		return nil, err
	}

	avg, ok := questionnaire.AverageSubmitted(responses)
	if !ok {
		return nil, questionnaire.ErrNoSubmittedResponse().
			WithDetail("candidate_id", candidateID).
			WithDetail("job_id", jobID)
	}

	return &questionnaire.CandidateScore{
		CandidateID: candidateID,
		JobID:       jobID,
		Score:       avg,
		Submissions: countSubmitted(responses),
	}, nil
}

// ScoresForJob returns the averaged submitted score of every candidate that
// answered the job's questionnaire
func (s *QuestionnaireService) ScoresForJob(ctx context.Context, jobID kernel.JobID) (map[kernel.CandidateID]float64, error) {
	responses, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list questionnaire responses", errx.TypeInternal)
	}

	byCandidate := make(map[kernel.CandidateID][]questionnaire.Response)
	for _, r := range responses {
		byCandidate[r.CandidateID] = append(byCandidate[r.CandidateID], r)
	}

	scores := make(map[kernel.CandidateID]float64, len(byCandidate))
	for candidateID, rs := range byCandidate {
		if avg, ok := questionnaire.AverageSubmitted(rs); ok {
			scores[candidateID] = avg
		}
	}
	return scores, nil
}

func countSubmitted(responses []questionnaire.Response) int {
	n := 0
	for _, r := range responses {
		if r.IsSubmitted() {
			n++
		}
	}
	return n
}
