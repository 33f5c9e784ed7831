package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

var _ job.Repository = (*PostgresJobRepository)(nil)

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID              string         `db:"id"`
	JobTitle        string         `db:"job_title"`
	JobDescription  string         `db:"job_description"`
	RequiredSkills  pq.StringArray `db:"required_skills"`
	PreferredSkills pq.StringArray `db:"preferred_skills"`
	Status          string         `db:"status"`
	PublishedAt     *time.Time     `db:"published_at"`
	ArchivedAt      *time.Time     `db:"archived_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

const jobColumns = `id, job_title, job_description, required_skills, preferred_skills, status, published_at, archived_at, created_at, updated_at`

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() *job.Job {
	return &job.Job{
		ID:              kernel.JobID(m.ID),
		Title:           kernel.JobTitle(m.JobTitle),
		Description:     kernel.JobDescription(m.JobDescription),
		RequiredSkills:  nonNil(m.RequiredSkills),
		PreferredSkills: nonNil(m.PreferredSkills),
		Status:          job.JobStatus(m.Status),
		PublishedAt:     m.PublishedAt,
		ArchivedAt:      m.ArchivedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) *jobModel {
	return &jobModel{
		ID:              string(j.ID),
		JobTitle:        string(j.Title),
		JobDescription:  string(j.Description),
		RequiredSkills:  pq.StringArray(nonNil(j.RequiredSkills)),
		PreferredSkills: pq.StringArray(nonNil(j.PreferredSkills)),
		Status:          string(j.Status),
		PublishedAt:     j.PublishedAt,
		ArchivedAt:      j.ArchivedAt,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES (
			:id, :job_title, :job_description, :required_skills, :preferred_skills,
			:status, :published_at, :archived_at, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(jobEntity)); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return job.ErrJobAlreadyExists().WithDetail("job_id", jobEntity.ID)
		}
		return errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	return nil
}

// Update updates an existing job
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, jobEntity *job.Job) error {
	model := fromEntity(jobEntity)
	model.ID = id.String()

	query := `
		UPDATE jobs SET
			job_title = :job_title,
			job_description = :job_description,
			required_skills = :required_skills,
			preferred_skills = :preferred_skills,
			status = :status,
			published_at = :published_at,
			archived_at = :archived_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id)
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id)
		}
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}

	return model.toEntity(), nil
}

// Delete deletes a job by ID
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id)
	}

	return nil
}

// List retrieves jobs with pagination, newest first
func (r *PostgresJobRepository) List(ctx context.Context, status *job.JobStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	pagination = pagination.Normalize()

	where := ""
	args := []any{}
	if status != nil {
		where = " WHERE status = $1"
		args = append(args, string(*status))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM jobs`+where, args...); err != nil {
		return nil, errx.Wrap(err, "failed to count jobs", errx.TypeInternal)
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, pagination.Offset())

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	jobs := make([]job.Job, 0, len(models))
	for i := range models {
		jobs = append(jobs, *models[i].toEntity())
	}

	return kernel.NewPaginated(jobs, pagination, total), nil
}

// Exists checks if a job exists by ID
func (r *PostgresJobRepository) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id.String()); err != nil {
		return false, errx.Wrap(err, "failed to check job existence", errx.TypeInternal)
	}
	return exists, nil
}
