package candidate

import (
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
)

// CreateCandidateRequest - DTO for creating a new candidate
type CreateCandidateRequest struct {
	Email     kernel.Email     `json:"email"`
	Phone     kernel.Phone     `json:"phone"`
	FirstName kernel.FirstName `json:"first_name"`
	LastName  kernel.LastName  `json:"last_name"`
	Location  string           `json:"location,omitempty"`
}

// UpdateCandidateRequest - DTO for updating an existing candidate
type UpdateCandidateRequest struct {
	Email     *kernel.Email     `json:"email,omitempty"`
	Phone     *kernel.Phone     `json:"phone,omitempty"`
	FirstName *kernel.FirstName `json:"first_name,omitempty"`
	LastName  *kernel.LastName  `json:"last_name,omitempty"`
	Location  *string           `json:"location,omitempty"`
}

// ListCandidatesRequest - DTO for listing all candidates
type ListCandidatesRequest struct {
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// Response type alias for paginated candidates
type PaginatedCandidatesResponse = kernel.Paginated[Candidate]

// CreateFromResumeResponse is the candidate built from a parsed resume and the linked resume
type CreateFromResumeResponse struct {
	Candidate *Candidate           `json:"candidate"`
	Resume    *resume.ParsedResume `json:"resume"`
	Created   bool                 `json:"created"`
}

// BulkArchiveCandidatesRequest - Request to archive multiple candidates
type BulkArchiveCandidatesRequest struct {
	CandidateIDs []kernel.CandidateID `json:"candidate_ids"`
}

// BulkCandidateOperationResponse - Result of bulk operations
type BulkCandidateOperationResponse struct {
	Successful []kernel.CandidateID          `json:"successful"`
	Failed     map[kernel.CandidateID]string `json:"failed"`
	Total      int                           `json:"total"`
}
