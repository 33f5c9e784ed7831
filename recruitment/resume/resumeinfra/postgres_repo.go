package resumeinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const resumeColumns = `id, candidate_id, file_name, file_type, raw_text, parsed_data, confidence, status, warnings, upload_date`

type PostgresResumeRepository struct {
	db *sqlx.DB
}

func NewPostgresResumeRepository(db *sqlx.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

// ============================================================================
// CRUD Operations
// ============================================================================

// Create stores a new parsed resume
func (r *PostgresResumeRepository) Create(ctx context.Context, model *resume.ParsedResume) error {
	row, err := toResumeRow(model)
	if err != nil {
		return resume.ErrInvalidResumeData().
			WithDetail("resume_id", model.ID).
			WithDetail("error", err.Error())
	}

	query := `
		INSERT INTO parsed_resumes (` + resumeColumns + `)
		VALUES (
			:id, :candidate_id, :file_name, :file_type, :raw_text,
			:parsed_data, :confidence, :status, :warnings, :upload_date
		)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return resume.ErrResumeAlreadyExists().
				WithDetail("resume_id", model.ID)
		}
		return errx.Wrap(err, "failed to insert parsed resume", errx.TypeInternal).
			WithDetail("resume_id", model.ID)
	}

	return nil
}

// GetByID retrieves a parsed resume by ID
func (r *PostgresResumeRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.ParsedResume, error) {
	query := `SELECT ` + resumeColumns + ` FROM parsed_resumes WHERE id = $1`

	var row resumeRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id)
		}
		return nil, errx.Wrap(err, "failed to get parsed resume", errx.TypeInternal).
			WithDetail("resume_id", id)
	}

	return row.ToDomain()
}

// AssignCandidate links a resume to its candidate
func (r *PostgresResumeRepository) AssignCandidate(ctx context.Context, id kernel.ResumeID, candidateID kernel.CandidateID) error {
	query := `UPDATE parsed_resumes SET candidate_id = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String(), candidateID.String())
	if err != nil {
		return errx.Wrap(err, "failed to link resume", errx.TypeInternal).
			WithDetail("resume_id", id)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to link resume", errx.TypeInternal)
	}
	if rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("resume_id", id)
	}

	return nil
}

// ============================================================================
// Queries
// ============================================================================

// ListByCandidateID retrieves every resume of a candidate, oldest first
func (r *PostgresResumeRepository) ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID) ([]*resume.ParsedResume, error) {
	query := `SELECT ` + resumeColumns + ` FROM parsed_resumes WHERE candidate_id = $1 ORDER BY upload_date ASC, id ASC`

	var rows []resumeRow
	if err := r.db.SelectContext(ctx, &rows, query, candidateID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list candidate resumes", errx.TypeInternal).
			WithDetail("candidate_id", candidateID)
	}

	return rowsToDomain(rows)
}

// GetLatestByCandidateID retrieves the most recently uploaded resume of a candidate
func (r *PostgresResumeRepository) GetLatestByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*resume.ParsedResume, error) {
	query := `SELECT ` + resumeColumns + ` FROM parsed_resumes WHERE candidate_id = $1 ORDER BY upload_date DESC, id DESC LIMIT 1`

	var row resumeRow
	if err := r.db.GetContext(ctx, &row, query, candidateID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound().WithDetail("candidate_id", candidateID)
		}
		return nil, errx.Wrap(err, "failed to get latest resume", errx.TypeInternal).
			WithDetail("candidate_id", candidateID)
	}

	return row.ToDomain()
}

// List retrieves resumes with pagination
func (r *PostgresResumeRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ParsedResume], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM parsed_resumes`); err != nil {
		return nil, errx.Wrap(err, "failed to count resumes", errx.TypeInternal)
	}

	query := `SELECT ` + resumeColumns + ` FROM parsed_resumes ORDER BY upload_date ASC, id ASC LIMIT $1 OFFSET $2`

	var rows []resumeRow
	if err := r.db.SelectContext(ctx, &rows, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, errx.Wrap(err, "failed to list resumes", errx.TypeInternal)
	}

	models, err := rowsToDomain(rows)
	if err != nil {
		return nil, errx.Wrap(err, "failed to decode resumes", errx.TypeInternal)
	}

	items := make([]resume.ParsedResume, 0, len(models))
	for _, m := range models {
		items = append(items, *m)
	}
	return kernel.NewPaginated(items, pagination, total), nil
}

// ListAll retrieves every stored resume
func (r *PostgresResumeRepository) ListAll(ctx context.Context) ([]*resume.ParsedResume, error) {
	query := `SELECT ` + resumeColumns + ` FROM parsed_resumes ORDER BY upload_date ASC, id ASC`

	var rows []resumeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errx.Wrap(err, "failed to list resumes", errx.TypeInternal)
	}

	return rowsToDomain(rows)
}
