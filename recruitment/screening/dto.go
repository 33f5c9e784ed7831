package screening

import "github.com/Abraxas-365/talentrelay/pkg/kernel"

// ScreenRequest screens a candidate for a job. An empty ResumeID uses the
// candidate's most recent resume.
type ScreenRequest struct {
	CandidateID kernel.CandidateID `json:"candidate_id"`
	JobID       kernel.JobID       `json:"job_id"`
	ResumeID    kernel.ResumeID    `json:"resume_id,omitempty"`
}

// BatchScreenRequest screens several candidates for one job
type BatchScreenRequest struct {
	JobID        kernel.JobID         `json:"job_id"`
	CandidateIDs []kernel.CandidateID `json:"candidate_ids"`
}

// BatchScreenResponse lists the results and the candidates that could not be screened
type BatchScreenResponse struct {
	Results []ScreeningResult             `json:"results"`
	Failed  map[kernel.CandidateID]string `json:"failed"`
	Total   int                           `json:"total"`
}

// ResumeGapsResponse is the gap analysis of a stored resume
type ResumeGapsResponse struct {
	ResumeID kernel.ResumeID `json:"resume_id"`
	GapAnalysis
}
