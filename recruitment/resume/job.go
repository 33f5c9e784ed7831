package resume

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

type ProcessingStep string

const (
	StepUploading  ProcessingStep = "uploading"
	StepExtracting ProcessingStep = "extracting"
	StepParsing    ProcessingStep = "parsing"
	StepSaving     ProcessingStep = "saving"
)

// ProcessingJob tracks one asynchronous parse of an uploaded file
type ProcessingJob struct {
	ID          kernel.ProcessingJobID `db:"id" json:"id"`
	CandidateID *kernel.CandidateID    `db:"candidate_id" json:"candidate_id,omitempty"`
	ResumeID    *kernel.ResumeID       `db:"resume_id" json:"resume_id,omitempty"`

	Status   JobStatus `db:"status" json:"status"`
	FilePath string    `db:"file_path" json:"file_path"`
	FileName string    `db:"file_name" json:"file_name"`
	FileType string    `db:"file_type" json:"file_type"`

	AttemptCount int `db:"attempt_count" json:"attempt_count"`
	MaxAttempts  int `db:"max_attempts" json:"max_attempts"`

	ErrorMessage string         `db:"error_message" json:"error_message,omitempty"`
	ErrorDetails map[string]any `db:"error_details" json:"error_details,omitempty"`

	CurrentStep        *ProcessingStep `db:"current_step" json:"current_step,omitempty"`
	ProgressPercentage int             `db:"progress_percentage" json:"progress_percentage"`

	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	StartedAt   *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	FailedAt    *time.Time `db:"failed_at" json:"failed_at,omitempty"`
	NextRetryAt *time.Time `db:"next_retry_at" json:"next_retry_at,omitempty"`
}

// CanRetry reports whether another attempt is allowed
func (j *ProcessingJob) CanRetry() bool {
	return j.AttemptCount < j.MaxAttempts
}

// Start moves a pending job to processing. Any other status is rejected so a
// job popped twice is only parsed once.
func (j *ProcessingJob) Start(now time.Time) error {
	if j.Status != JobStatusPending {
		return fmt.Errorf("job %s is %s, not pending", j.ID, j.Status)
	}
	j.Status = JobStatusProcessing
	j.StartedAt = &now
	return nil
}

func (j *ProcessingJob) Complete(resumeID kernel.ResumeID, now time.Time) {
	j.Status = JobStatusCompleted
	j.ResumeID = &resumeID
	j.CompletedAt = &now
	j.ProgressPercentage = 100
	j.ErrorMessage = ""
	j.ErrorDetails = nil
	j.NextRetryAt = nil
}

func (j *ProcessingJob) Fail(message string, details map[string]any, now time.Time) {
	j.Status = JobStatusFailed
	j.FailedAt = &now
	j.ErrorMessage = message
	j.ErrorDetails = details
}

func (j *ProcessingJob) Advance(step ProcessingStep, percentage int) {
	j.CurrentStep = &step
	j.ProgressPercentage = percentage
}

// ToStatusResponse renders the job for status queries
func (j *ProcessingJob) ToStatusResponse() *JobStatusResponse {
	resp := &JobStatusResponse{
		JobID:        j.ID,
		Status:       j.Status,
		Message:      statusMessage(j.Status),
		Progress:     j.ProgressPercentage,
		CurrentStep:  j.CurrentStep,
		ResumeID:     j.ResumeID,
		AttemptCount: j.AttemptCount,
		NextRetryAt:  j.NextRetryAt,
		CreatedAt:    j.CreatedAt,
		StartedAt:    j.StartedAt,
		CompletedAt:  j.CompletedAt,
		FailedAt:     j.FailedAt,
	}
	if j.Status == JobStatusFailed {
		resp.Error = &JobError{Message: j.ErrorMessage, Details: j.ErrorDetails}
	}
	return resp
}

func statusMessage(s JobStatus) string {
	switch s {
	case JobStatusPending:
		return "Resume queued for processing"
	case JobStatusProcessing:
		return "Resume is being parsed"
	case JobStatusCompleted:
		return "Resume parsed successfully"
	case JobStatusFailed:
		return "Resume parsing failed"
	default:
		return ""
	}
}

// JobStatusResponse - Response for job status queries
type JobStatusResponse struct {
	JobID       kernel.ProcessingJobID `json:"job_id"`
	Status      JobStatus              `json:"status"`
	Message     string                 `json:"message"`
	Progress    int                    `json:"progress"`
	CurrentStep *ProcessingStep        `json:"current_step,omitempty"`
	ResumeID    *kernel.ResumeID       `json:"resume_id,omitempty"`
	Error       *JobError              `json:"error,omitempty"`

	AttemptCount int        `json:"attempt_count,omitempty"`
	NextRetryAt  *time.Time `json:"next_retry_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

// JobError - Error details for failed jobs
type JobError struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
