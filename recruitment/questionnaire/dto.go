package questionnaire

import "github.com/Abraxas-365/talentrelay/pkg/kernel"

// SubmitResponseRequest records answers. Score overrides the score computed
// from the answers; Draft keeps the response out of ranking until submitted.
type SubmitResponseRequest struct {
	CandidateID kernel.CandidateID `json:"candidate_id"`
	JobID       kernel.JobID       `json:"job_id"`
	Answers     []Answer           `json:"answers"`
	Score       *float64           `json:"score,omitempty"`
	Draft       bool               `json:"draft,omitempty"`
}

// ListResponsesRequest filters responses by job and optionally candidate
type ListResponsesRequest struct {
	CandidateID kernel.CandidateID `query:"candidate_id"`
	JobID       kernel.JobID       `query:"job_id"`
}

// CandidateScore is the questionnaire score used by ranking
type CandidateScore struct {
	CandidateID kernel.CandidateID `json:"candidate_id"`
	JobID       kernel.JobID       `json:"job_id"`
	Score       float64            `json:"score"`
	Submissions int                `json:"submissions"`
}
