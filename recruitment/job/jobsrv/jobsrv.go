package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/google/uuid"
)

// JobService provides business operations for jobs
type JobService struct {
	jobRepo job.Repository
}

// NewJobService creates a new instance of the job service
func NewJobService(jobRepo job.Repository) *JobService {
	return &JobService{
		jobRepo: jobRepo,
	}
}

// CreateJob creates a new job posting
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.Job, error) {
	title := kernel.JobTitle(strings.TrimSpace(string(req.Title)))
	if title == "" {
		return nil, job.ErrInvalidJob().WithDetail("field", "job_title")
	}

	now := time.Now()
	newJob := &job.Job{
		ID:              kernel.NewJobID(uuid.NewString()),
		Title:           title,
		Description:     req.Description,
		RequiredSkills:  job.CleanSkills(req.RequiredSkills),
		PreferredSkills: job.CleanSkills(req.PreferredSkills),
		Status:          job.JobStatusDraft, // Start as draft
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if req.Publish {
		if err := newJob.Publish(); err != nil {
			return nil, err
		}
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	logx.Infof("Job %s created (%d required skills)", newJob.ID, len(newJob.RequiredSkills))
	return newJob, nil
}

// GetJobByID retrieves a job by ID
func (s *JobService) GetJobByID(ctx context.Context, jobID kernel.JobID) (*job.Job, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	return jobEntity, nil
}

// ListJobs retrieves jobs with pagination, optionally by status
func (s *JobService) ListJobs(ctx context.Context, req job.ListJobsRequest) (*job.PaginatedJobsResponse, error) {
	jobs, err := s.jobRepo.List(ctx, req.Status, req.Pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}
	return jobs, nil
}

// UpdateJob updates an existing job
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	return s.transition(ctx, jobID, func(j *job.Job) error {
		return j.UpdateDetails(req)
	})
}

// PublishJob marks a job as published
func (s *JobService) PublishJob(ctx context.Context, jobID kernel.JobID) (*job.Job, error) {
	return s.transition(ctx, jobID, (*job.Job).Publish)
}

// CloseJob stops a job from accepting applications
func (s *JobService) CloseJob(ctx context.Context, jobID kernel.JobID) (*job.Job, error) {
	return s.transition(ctx, jobID, (*job.Job).Close)
}

// ArchiveJob archives a job
func (s *JobService) ArchiveJob(ctx context.Context, jobID kernel.JobID) (*job.Job, error) {
	return s.transition(ctx, jobID, (*job.Job).Archive)
}

// UnarchiveJob returns an archived job to draft
func (s *JobService) UnarchiveJob(ctx context.Context, jobID kernel.JobID) (*job.Job, error) {
	return s.transition(ctx, jobID, (*job.Job).Unarchive)
}

// DeleteJob deletes a job
func (s *JobService) DeleteJob(ctx context.Context, jobID kernel.JobID) error {
	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal)
	}
	logx.Infof("Job %s deleted", jobID)
	return nil
}

func (s *JobService) transition(ctx context.Context, jobID kernel.JobID, apply func(*job.Job) error) (*job.Job, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}

	if err := apply(jobEntity); err != nil {
		if e, ok := err.(*errx.Error); ok {
			return nil, e.WithDetail("job_id", jobID.String())
		}
		return nil, err
	}

	if err := s.jobRepo.Update(ctx, jobID, jobEntity); err != nil {
		return nil, errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}

	return jobEntity, nil
}
