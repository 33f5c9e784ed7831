package job

import "github.com/Abraxas-365/talentrelay/pkg/kernel"

// CreateJobRequest - DTO for creating a new job
type CreateJobRequest struct {
	Title           kernel.JobTitle       `json:"job_title"`
	Description     kernel.JobDescription `json:"job_description"`
	RequiredSkills  []string              `json:"required_skills"`
	PreferredSkills []string              `json:"preferred_skills,omitempty"`
	Publish         bool                  `json:"publish,omitempty"`
}

// UpdateJobRequest - DTO for updating an existing job
type UpdateJobRequest struct {
	Title           *kernel.JobTitle       `json:"job_title,omitempty"`
	Description     *kernel.JobDescription `json:"job_description,omitempty"`
	RequiredSkills  *[]string              `json:"required_skills,omitempty"`
	PreferredSkills *[]string              `json:"preferred_skills,omitempty"`
}

// ListJobsRequest - DTO for listing jobs
type ListJobsRequest struct {
	Status     *JobStatus               `json:"status,omitempty"`
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// Response type alias for paginated jobs
type PaginatedJobsResponse = kernel.Paginated[Job]
