package ranking

import "github.com/Abraxas-365/talentrelay/pkg/kernel"

// RankRequest overrides the default weights when Weights is set
type RankRequest struct {
	Weights *Weights `json:"weights,omitempty"`
}

// RankingResponse is a job's ranked shortlist
type RankingResponse struct {
	JobID      kernel.JobID      `json:"job_id"`
	Weights    Weights           `json:"weights"`
	Candidates []RankedCandidate `json:"candidates"`
	Total      int               `json:"total"`
}
