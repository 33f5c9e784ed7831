package rankingsrv

import (
	"context"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/Abraxas-365/talentrelay/recruitment/ranking"
	"github.com/Abraxas-365/talentrelay/recruitment/screening"
)

// QuestionnaireScores returns the average submitted questionnaire score per candidate for a job
type QuestionnaireScores interface {
	ScoresForJob(ctx context.Context, jobID kernel.JobID) (map[kernel.CandidateID]float64, error)
}

// RankingService ranks the candidates screened for a job
type RankingService struct {
	screenings     screening.Repository
	jobRepo        job.Repository
	questionnaires QuestionnaireScores
	cfg            ranking.Config
}

func NewRankingService(
	screenings screening.Repository,
	jobRepo job.Repository,
	questionnaires QuestionnaireScores,
	cfg ranking.Config,
) *RankingService {
	return &RankingService{
		screenings:     screenings,
		jobRepo:        jobRepo,
		questionnaires: questionnaires,
		cfg:            cfg,
	}
}

// Rank ranks every candidate with a screening result for the job. Nil weights
// mean the defaults.
func (s *RankingService) Rank(ctx context.Context, jobID kernel.JobID, weights *ranking.Weights) (*ranking.RankingResponse, error) {
	w := ranking.DefaultWeights()
	if weights != nil {
		w = *weights
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.jobRepo.Exists(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check job", errx.TypeInternal)
	}
	if !exists {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID)
	}

	results, err := s.screenings.ListByJob(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list screening results", errx.TypeInternal)
	}

	scores, err := s.questionnaires.ScoresForJob(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load questionnaire scores", errx.TypeInternal)
	}

	inputs := make([]ranking.Input, 0, len(results))
	for _, r := range results {
		in := ranking.Input{Screening: r}
		if score, ok := scores[r.CandidateID]; ok {
			in.QuestionnaireScore = &score
		}
		inputs = append(inputs, in)
	}

	ranked := ranking.Rank(inputs, w, s.cfg)
	logx.Debugf("Ranked %d candidates for job %s", len(ranked), jobID)

	return &ranking.RankingResponse{
		JobID:      jobID,
		Weights:    w,
		Candidates: ranked,
		Total:      len(ranked),
	}, nil
}
