package resumesrv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abraxas-365/talentrelay/internal/textextract"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/google/uuid"
)

// AsyncEnabled reports whether the job store, file storage and queue are wired
func (s *Service) AsyncEnabled() bool {
	return s.jobRepo != nil && s.files != nil && s.queue != nil
}

// ParseFileAsync stores the upload and queues it for background parsing
func (s *Service) ParseFileAsync(ctx context.Context, req resume.ParseFileRequest) (*resume.JobStatusResponse, error) {
	if !s.AsyncEnabled() {
		return nil, resume.ErrAsyncParsingDisabled()
	}
	if err := s.ValidateFile(req.FileName, fileSize(req)); err != nil {
		return nil, err
	}

	jobID := kernel.NewProcessingJobID(uuid.NewString())
	fileName := filepath.Base(req.FileName)
	path := s.files.Join(s.cfg.UploadPrefix, jobID.String(), fileName)

	logx.Infof("Queueing resume for async processing: JobID=%s, File=%s", jobID, fileName)

	if err := s.files.WriteFile(ctx, path, req.Data); err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeFileStoreFailed, err).
			WithDetail("file_name", fileName)
	}

	step := resume.StepUploading
	job := &resume.ProcessingJob{
		ID:          jobID,
		CandidateID: req.CandidateID,
		Status:      resume.JobStatusPending,
		FilePath:    path,
		FileName:    fileName,
		FileType:    strings.TrimPrefix(textextract.Extension(fileName), "."),
		MaxAttempts: s.cfg.MaxAttempts,
		CurrentStep: &step,
		CreatedAt:   s.now(),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, resume.ErrJobCreationFailed().
			WithDetail("file_name", fileName).
			WithDetail("error", err.Error())
	}

	if err := s.queue.Push(ctx, job); err != nil {
		_ = s.jobRepo.MarkAsFailed(ctx, jobID, "failed to enqueue", map[string]any{
			"error": err.Error(),
		})
		return nil, resume.ErrQueueEnqueueFailed().
			WithDetail("job_id", jobID).
			WithDetail("error", err.Error())
	}

	logx.Infof("Job queued successfully: JobID=%s", jobID)
	return job.ToStatusResponse(), nil
}

// ProcessJob is run by the worker pool for every dequeued job
func (s *Service) ProcessJob(ctx context.Context, job *resume.ProcessingJob) error {
	if !s.AsyncEnabled() {
		return resume.ErrAsyncParsingDisabled()
	}

	logx.Infof("Processing job: JobID=%s, Attempt=%d/%d", job.ID, job.AttemptCount+1, job.MaxAttempts)

	if err := s.jobRepo.MarkAsProcessing(ctx, job.ID); err != nil {
		return resume.ErrJobUpdateFailed().
			WithDetail("job_id", job.ID).
			WithDetail("status", resume.JobStatusProcessing).
			WithDetail("error", err.Error())
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepExtracting, 25)

	data, err := s.files.ReadFile(ctx, job.FilePath)
	if err != nil {
		return s.handleJobError(ctx, job, "file_read_failed", err)
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepParsing, 50)

	model := s.parseFileData(ctx, job.FileName, data)
	if job.CandidateID != nil {
		model.AssignCandidate(*job.CandidateID)
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepSaving, 75)

	if err := s.store(ctx, model); err != nil {
		return s.handleJobError(ctx, job, "save_failed", err)
	}

	if err := s.jobRepo.MarkAsCompleted(ctx, job.ID, model.ID); err != nil {
		logx.Errorf("Failed to mark job as completed: %v", err)
	}

	logx.Infof("Job completed successfully: JobID=%s, ResumeID=%s", job.ID, model.ID)
	return nil
}

// handleJobError retries with exponential backoff until MaxAttempts is reached
func (s *Service) handleJobError(ctx context.Context, job *resume.ProcessingJob, errorType string, err error) error {
	job.AttemptCount++

	errorDetails := map[string]any{
		"error":        err.Error(),
		"error_type":   errorType,
		"attempt":      job.AttemptCount,
		"max_attempts": job.MaxAttempts,
		"file_name":    job.FileName,
	}

	if !job.CanRetry() {
		logx.Errorf("Job permanently failed: JobID=%s, Error=%s, Attempts=%d/%d",
			job.ID, errorType, job.AttemptCount, job.MaxAttempts)

		_ = s.jobRepo.MarkAsFailed(ctx, job.ID, errorType, errorDetails)

		return resume.ErrJobMaxRetriesReached().
			WithDetail("job_id", job.ID).
			WithDetails(errorDetails)
	}

	retryDelay := s.cfg.RetryBaseDelay * time.Duration(1<<uint(job.AttemptCount))
	nextRetry := s.now().Add(retryDelay)

	job.Status = resume.JobStatusPending
	job.NextRetryAt = &nextRetry
	job.ErrorMessage = fmt.Sprintf("%s (will retry)", errorType)
	job.ErrorDetails = errorDetails

	if updateErr := s.jobRepo.Update(ctx, job); updateErr != nil {
		logx.Errorf("Failed to update job for retry: %v", updateErr)
	}

	if queueErr := s.queue.Defer(ctx, job, retryDelay); queueErr != nil {
		logx.Errorf("Failed to enqueue for retry: %v", queueErr)

		_ = s.jobRepo.MarkAsFailed(ctx, job.ID, errorType+" (retry enqueue failed)", errorDetails)

		return resume.ErrJobRetryFailed().
			WithDetail("job_id", job.ID).
			WithDetails(errorDetails)
	}

	logx.Warnf("Job failed, will retry: JobID=%s, Attempt=%d/%d, NextRetry=%v, Error=%s",
		job.ID, job.AttemptCount, job.MaxAttempts, nextRetry, errorType)

	return resume.ErrJobFailed().
		WithDetail("job_id", job.ID).
		WithDetail("will_retry", true).
		WithDetail("next_retry_at", nextRetry).
		WithDetails(errorDetails)
}

// GetJobStatus retrieves the current status of a job
func (s *Service) GetJobStatus(ctx context.Context, jobID kernel.ProcessingJobID) (*resume.JobStatusResponse, error) {
	if !s.AsyncEnabled() {
		return nil, resume.ErrAsyncParsingDisabled()
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeJobNotFound, err).
			WithDetail("job_id", jobID)
	}
	return job.ToStatusResponse(), nil
}

// QueueStats reports the parse queue backlog
func (s *Service) QueueStats(ctx context.Context) (*resume.QueueStats, error) {
	if !s.AsyncEnabled() {
		return nil, resume.ErrAsyncParsingDisabled()
	}

	stats, err := s.queue.Stats(ctx)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeQueueUnavailable, err)
	}
	return &stats, nil
}
