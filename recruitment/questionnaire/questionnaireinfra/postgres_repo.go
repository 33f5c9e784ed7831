package questionnaireinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresResponseRepository implements questionnaire.Repository using PostgreSQL
type PostgresResponseRepository struct {
	db *sqlx.DB
}

// NewPostgresResponseRepository creates a new PostgreSQL questionnaire response repository
func NewPostgresResponseRepository(db *sqlx.DB) *PostgresResponseRepository {
	return &PostgresResponseRepository{
		db: db,
	}
}

var _ questionnaire.Repository = (*PostgresResponseRepository)(nil)

// ============================================================================
// Database Model
// ============================================================================

type responseModel struct {
	ID          string     `db:"id"`
	CandidateID string     `db:"candidate_id"`
	JobID       string     `db:"job_id"`
	Answers     []byte     `db:"answers"`
	Score       float64    `db:"score"`
	Status      string     `db:"status"`
	SubmittedAt *time.Time `db:"submitted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

const responseColumns = `id, candidate_id, job_id, answers, score, status, submitted_at, created_at, updated_at`

func (m *responseModel) toEntity() (*questionnaire.Response, error) {
	answers := []questionnaire.Answer{}
	if len(m.Answers) > 0 {
		if err := json.Unmarshal(m.Answers, &answers); err != nil {
			return nil, err
		}
	}
	return &questionnaire.Response{
		ID:          kernel.QuestionnaireResponseID(m.ID),
		CandidateID: kernel.CandidateID(m.CandidateID),
		JobID:       kernel.JobID(m.JobID),
		Answers:     answers,
		Score:       m.Score,
		Status:      questionnaire.ResponseStatus(m.Status),
		SubmittedAt: m.SubmittedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func fromEntity(r *questionnaire.Response) (*responseModel, error) {
	answers, err := json.Marshal(r.Answers)
	if err != nil {
		return nil, err
	}
	return &responseModel{
		ID:          r.ID.String(),
		CandidateID: r.CandidateID.String(),
		JobID:       r.JobID.String(),
		Answers:     answers,
		Score:       r.Score,
		Status:      string(r.Status),
		SubmittedAt: r.SubmittedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresResponseRepository) Create(ctx context.Context, response *questionnaire.Response) error {
	model, err := fromEntity(response)
	if err != nil {
		return errx.Wrap(err, "failed to encode answers", errx.TypeInternal)
	}

	query := `
		INSERT INTO questionnaire_responses (` + responseColumns + `)
		VALUES (:id, :candidate_id, :job_id, :answers, :score, :status, :submitted_at, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return questionnaire.ErrResponseAlreadyExists().WithDetail("response_id", response.ID)
		}
		return errx.Wrap(err, "failed to create questionnaire response", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresResponseRepository) Update(ctx context.Context, id kernel.QuestionnaireResponseID, response *questionnaire.Response) error {
	model, err := fromEntity(response)
	if err != nil {
		return errx.Wrap(err, "failed to encode answers", errx.TypeInternal)
	}
	model.ID = id.String()

	query := `
		UPDATE questionnaire_responses SET
			answers = :answers,
			score = :score,
			status = :status,
			submitted_at = :submitted_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return errx.Wrap(err, "failed to update questionnaire response", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to update questionnaire response", errx.TypeInternal)
	}
	if rows == 0 {
		return questionnaire.ErrResponseNotFound().WithDetail("response_id", id)
	}
	return nil
}

func (r *PostgresResponseRepository) GetByID(ctx context.Context, id kernel.QuestionnaireResponseID) (*questionnaire.Response, error) {
	var model responseModel
	query := `SELECT ` + responseColumns + ` FROM questionnaire_responses WHERE id = $1`
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, questionnaire.ErrResponseNotFound().WithDetail("response_id", id)
		}
		return nil, errx.Wrap(err, "failed to get questionnaire response", errx.TypeInternal)
	}

	response, err := model.toEntity()
	if err != nil {
		return nil, errx.Wrap(err, "failed to decode answers", errx.TypeInternal)
	}
	return response, nil
}

func (r *PostgresResponseRepository) ListByCandidateAndJob(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) ([]questionnaire.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM questionnaire_responses
		WHERE candidate_id = $1 AND job_id = $2 ORDER BY created_at ASC`
	return r.list(ctx, query, candidateID.String(), jobID.String())
}

func (r *PostgresResponseRepository) ListByJob(ctx context.Context, jobID kernel.JobID) ([]questionnaire.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM questionnaire_responses
		WHERE job_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, jobID.String())
}

func (r *PostgresResponseRepository) list(ctx context.Context, query string, args ...any) ([]questionnaire.Response, error) {
	var models []responseModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list questionnaire responses", errx.TypeInternal)
	}

	responses := make([]questionnaire.Response, 0, len(models))
	for i := range models {
		response, err := models[i].toEntity()
		if err != nil {
			return nil, errx.Wrap(err, "failed to decode answers", errx.TypeInternal)
		}
		responses = append(responses, *response)
	}
	return responses, nil
}
