package candidateinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresCandidateRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidateRepository(db *sqlx.DB) candidate.Repository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `
	id, email, phone, first_name, last_name, location,
	source, source_resume_id, status, archived_at, created_at, updated_at`

// Create creates a new candidate
func (r *PostgresCandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	query := `
		INSERT INTO candidates (` + candidateColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		c.ID,
		c.Email.Normalized(),
		c.Phone,
		c.FirstName,
		c.LastName,
		c.Location,
		c.Source,
		c.SourceResumeID,
		c.Status,
		c.ArchivedAt,
		c.CreatedAt,
		c.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "candidates_email_key" {
				return candidate.ErrEmailAlreadyExists().WithDetail("email", c.Email)
			}
			return candidate.ErrCandidateAlreadyExists().WithDetail("candidate_id", c.ID)
		}
		return errx.Wrap(err, "failed to create candidate", errx.TypeInternal)
	}

	return nil
}

// Update updates an existing candidate
func (r *PostgresCandidateRepository) Update(ctx context.Context, id kernel.CandidateID, c *candidate.Candidate) error {
	query := `
		UPDATE candidates
		SET
			email = $2,
			phone = $3,
			first_name = $4,
			last_name = $5,
			location = $6,
			status = $7,
			archived_at = $8,
			updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		id,
		c.Email.Normalized(),
		c.Phone,
		c.FirstName,
		c.LastName,
		c.Location,
		c.Status,
		c.ArchivedAt,
		c.UpdatedAt,
	)

	if err != nil {
		return errx.Wrap(err, "failed to update candidate", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to update candidate", errx.TypeInternal)
	}

	if rows == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id)
	}

	return nil
}

// GetByID retrieves a candidate by ID
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	return r.getOne(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
}

// GetByEmail retrieves a candidate by email
func (r *PostgresCandidateRepository) GetByEmail(ctx context.Context, email kernel.Email) (*candidate.Candidate, error) {
	return r.getOne(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE email = $1`, email.Normalized())
}

func (r *PostgresCandidateRepository) getOne(ctx context.Context, query string, arg any) (*candidate.Candidate, error) {
	var c candidate.Candidate
	err := r.db.GetContext(ctx, &c, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, candidate.ErrCandidateNotFound()
	}
	if err != nil {
		return nil, errx.Wrap(err, "failed to get candidate", errx.TypeInternal)
	}
	return &c, nil
}

// Delete deletes a candidate by ID
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id kernel.CandidateID) error {
	query := `DELETE FROM candidates WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return errx.Wrap(err, "failed to delete candidate", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to delete candidate", errx.TypeInternal)
	}

	if rows == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id)
	}

	return nil
}

// List retrieves all candidates with pagination
func (r *PostgresCandidateRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[candidate.Candidate], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM candidates`); err != nil {
		return nil, errx.Wrap(err, "failed to count candidates", errx.TypeInternal)
	}

	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var candidates []candidate.Candidate
	if err := r.db.SelectContext(ctx, &candidates, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, errx.Wrap(err, "failed to list candidates", errx.TypeInternal)
	}

	return kernel.NewPaginated(candidates, pagination, total), nil
}

// Exists checks if a candidate exists by ID
func (r *PostgresCandidateRepository) Exists(ctx context.Context, id kernel.CandidateID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, errx.Wrap(err, "failed to check candidate", errx.TypeInternal)
	}
	return exists, nil
}
