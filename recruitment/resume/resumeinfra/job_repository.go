package resumeinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresJobRepository stores processing jobs in resume_processing_jobs.
// Status transitions lock the row, apply the ProcessingJob method and write
// the row back, so they follow the same rules as the key-value stores.
type PostgresJobRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db, now: time.Now}
}

var _ resume.JobRepository = (*PostgresJobRepository)(nil)

type jobRow struct {
	ID                 string         `db:"id"`
	CandidateID        sql.NullString `db:"candidate_id"`
	ResumeID           sql.NullString `db:"resume_id"`
	Status             string         `db:"status"`
	FilePath           string         `db:"file_path"`
	FileName           string         `db:"file_name"`
	FileType           string         `db:"file_type"`
	AttemptCount       int            `db:"attempt_count"`
	MaxAttempts        int            `db:"max_attempts"`
	ErrorMessage       string         `db:"error_message"`
	ErrorDetails       sql.NullString `db:"error_details"`
	CurrentStep        sql.NullString `db:"current_step"`
	ProgressPercentage int            `db:"progress_percentage"`
	CreatedAt          time.Time      `db:"created_at"`
	StartedAt          *time.Time     `db:"started_at"`
	CompletedAt        *time.Time     `db:"completed_at"`
	FailedAt           *time.Time     `db:"failed_at"`
	NextRetryAt        *time.Time     `db:"next_retry_at"`
}

const jobColumns = `
	id, candidate_id, resume_id, status, file_path, file_name, file_type,
	attempt_count, max_attempts, error_message, error_details,
	current_step, progress_percentage,
	created_at, started_at, completed_at, failed_at, next_retry_at`

func (r *PostgresJobRepository) Create(ctx context.Context, job *resume.ProcessingJob) error {
	query := `
		INSERT INTO resume_processing_jobs (` + jobColumns + `
		) VALUES (
			:id, :candidate_id, :resume_id, :status, :file_path, :file_name, :file_type,
			:attempt_count, :max_attempts, :error_message, :error_details,
			:current_step, :progress_percentage,
			:created_at, :started_at, :completed_at, :failed_at, :next_retry_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, newJobRow(job)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("job %s already exists: %w", job.ID, err)
		}
		return fmt.Errorf("create job: %w", err)
	}

	logx.Infof("Created job: %s", job.ID)
	return nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, job *resume.ProcessingJob) error {
	return r.write(ctx, r.db, job)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, jobID kernel.ProcessingJobID) (*resume.ProcessingJob, error) {
	return r.load(ctx, r.db, jobID, false)
}

func (r *PostgresJobRepository) MarkAsProcessing(ctx context.Context, jobID kernel.ProcessingJobID) error {
	return r.transition(ctx, jobID, func(job *resume.ProcessingJob) error {
		return job.Start(r.now())
	})
}

func (r *PostgresJobRepository) MarkAsCompleted(ctx context.Context, jobID kernel.ProcessingJobID, resumeID kernel.ResumeID) error {
	return r.transition(ctx, jobID, func(job *resume.ProcessingJob) error {
		job.Complete(resumeID, r.now())
		return nil
	})
}

func (r *PostgresJobRepository) MarkAsFailed(ctx context.Context, jobID kernel.ProcessingJobID, errorMsg string, errorDetails map[string]any) error {
	err := r.transition(ctx, jobID, func(job *resume.ProcessingJob) error {
		job.Fail(errorMsg, errorDetails, r.now())
		return nil
	})
	if err == nil {
		logx.Warnf("Marked job as failed: %s, Error: %s", jobID, errorMsg)
	}
	return err
}

func (r *PostgresJobRepository) UpdateProgress(ctx context.Context, jobID kernel.ProcessingJobID, step resume.ProcessingStep, percentage int) error {
	return r.transition(ctx, jobID, func(job *resume.ProcessingJob) error {
		job.Advance(step, percentage)
		return nil
	})
}

func (r *PostgresJobRepository) transition(ctx context.Context, jobID kernel.ProcessingJobID, apply func(*resume.ProcessingJob) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin job transition: %w", err)
	}
	defer tx.Rollback()

	job, err := r.load(ctx, tx, jobID, true)
	if err != nil {
		return err
	}
	if err := apply(job); err != nil {
		return err
	}
	if err := r.write(ctx, tx, job); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresJobRepository) load(ctx context.Context, q sqlx.QueryerContext, jobID kernel.ProcessingJobID, forUpdate bool) (*resume.ProcessingJob, error) {
	query := `SELECT ` + jobColumns + ` FROM resume_processing_jobs WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var row jobRow
	if err := sqlx.GetContext(ctx, q, &row, query, jobID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrJobNotFound().WithDetail("job_id", jobID)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PostgresJobRepository) write(ctx context.Context, e sqlx.ExtContext, job *resume.ProcessingJob) error {
	query := `
		UPDATE resume_processing_jobs SET
			resume_id = :resume_id,
			status = :status,
			attempt_count = :attempt_count,
			error_message = :error_message,
			error_details = :error_details,
			current_step = :current_step,
			progress_percentage = :progress_percentage,
			started_at = :started_at,
			completed_at = :completed_at,
			failed_at = :failed_at,
			next_retry_at = :next_retry_at
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, e, query, newJobRow(job))
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if rows == 0 {
		return resume.ErrJobNotFound().WithDetail("job_id", job.ID)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func newJobRow(job *resume.ProcessingJob) *jobRow {
	row := &jobRow{
		ID:                 job.ID.String(),
		Status:             string(job.Status),
		FilePath:           job.FilePath,
		FileName:           job.FileName,
		FileType:           job.FileType,
		AttemptCount:       job.AttemptCount,
		MaxAttempts:        job.MaxAttempts,
		ErrorMessage:       job.ErrorMessage,
		ProgressPercentage: job.ProgressPercentage,
		CreatedAt:          job.CreatedAt,
		StartedAt:          job.StartedAt,
		CompletedAt:        job.CompletedAt,
		FailedAt:           job.FailedAt,
		NextRetryAt:        job.NextRetryAt,
	}
	if job.CandidateID != nil {
		row.CandidateID = nullString(job.CandidateID.String())
	}
	if job.ResumeID != nil {
		row.ResumeID = nullString(job.ResumeID.String())
	}
	if job.CurrentStep != nil {
		row.CurrentStep = nullString(string(*job.CurrentStep))
	}
	if len(job.ErrorDetails) > 0 {
		data, err := json.Marshal(job.ErrorDetails)
		if err != nil {
			logx.Warnf("Dropping unencodable error details of job %s: %v", job.ID, err)
		} else {
			row.ErrorDetails = nullString(string(data))
		}
	}
	return row
}

func (row *jobRow) toDomain() *resume.ProcessingJob {
	job := &resume.ProcessingJob{
		ID:                 kernel.NewProcessingJobID(row.ID),
		Status:             resume.JobStatus(row.Status),
		FilePath:           row.FilePath,
		FileName:           row.FileName,
		FileType:           row.FileType,
		AttemptCount:       row.AttemptCount,
		MaxAttempts:        row.MaxAttempts,
		ErrorMessage:       row.ErrorMessage,
		ProgressPercentage: row.ProgressPercentage,
		CreatedAt:          row.CreatedAt,
		StartedAt:          row.StartedAt,
		CompletedAt:        row.CompletedAt,
		FailedAt:           row.FailedAt,
		NextRetryAt:        row.NextRetryAt,
	}
	if row.CandidateID.Valid {
		id := kernel.NewCandidateID(row.CandidateID.String)
		job.CandidateID = &id
	}
	if row.ResumeID.Valid {
		id := kernel.NewResumeID(row.ResumeID.String)
		job.ResumeID = &id
	}
	if row.CurrentStep.Valid {
		step := resume.ProcessingStep(row.CurrentStep.String)
		job.CurrentStep = &step
	}
	if row.ErrorDetails.Valid {
		if err := json.Unmarshal([]byte(row.ErrorDetails.String), &job.ErrorDetails); err != nil {
			logx.Warnf("Ignoring unreadable error details of job %s: %v", row.ID, err)
			job.ErrorDetails = nil
		}
	}
	return job
}
