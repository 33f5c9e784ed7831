package screeninginfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/screening"
	"github.com/jmoiron/sqlx"
)

// PostgresScreeningRepository implements screening.Repository using PostgreSQL.
// The table carries a unique (candidate_id, job_id) constraint.
type PostgresScreeningRepository struct {
	db *sqlx.DB
}

// NewPostgresScreeningRepository creates a new PostgreSQL screening repository
func NewPostgresScreeningRepository(db *sqlx.DB) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

var _ screening.Repository = (*PostgresScreeningRepository)(nil)

// ============================================================================
// Database Model
// ============================================================================

type screeningModel struct {
	ID              string    `db:"id"`
	CandidateID     string    `db:"candidate_id"`
	JobID           string    `db:"job_id"`
	ResumeID        string    `db:"resume_id"`
	SkillMatch      []byte    `db:"skill_match"`
	ExperienceMatch []byte    `db:"experience_match"`
	EducationMatch  []byte    `db:"education_match"`
	KeywordMatch    []byte    `db:"keyword_match"`
	GapAnalysis     []byte    `db:"gap_analysis"`
	OverallScore    float64   `db:"overall_score"`
	Qualified       bool      `db:"qualified"`
	Notes           string    `db:"notes"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const screeningColumns = `id, candidate_id, job_id, resume_id, skill_match, experience_match, education_match,
	keyword_match, gap_analysis, overall_score, qualified, notes, created_at, updated_at`

func (m *screeningModel) toEntity() (*screening.ScreeningResult, error) {
	result := &screening.ScreeningResult{
		ID:           kernel.ScreeningID(m.ID),
		CandidateID:  kernel.CandidateID(m.CandidateID),
		JobID:        kernel.JobID(m.JobID),
		ResumeID:     kernel.ResumeID(m.ResumeID),
		OverallScore: m.OverallScore,
		Qualified:    m.Qualified,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	parts := []struct {
		data []byte
		dst  any
	}{
		{m.SkillMatch, &result.SkillMatch},
		{m.ExperienceMatch, &result.ExperienceMatch},
		{m.EducationMatch, &result.EducationMatch},
		{m.KeywordMatch, &result.KeywordMatch},
		{m.GapAnalysis, &result.GapAnalysis},
	}
	for _, p := range parts {
		if len(p.data) == 0 {
			continue
		}
		if err := json.Unmarshal(p.data, p.dst); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func fromEntity(r *screening.ScreeningResult) (*screeningModel, error) {
	m := &screeningModel{
		ID:           r.ID.String(),
		CandidateID:  r.CandidateID.String(),
		JobID:        r.JobID.String(),
		ResumeID:     r.ResumeID.String(),
		OverallScore: r.OverallScore,
		Qualified:    r.Qualified,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}

	var err error
	if m.SkillMatch, err = json.Marshal(r.SkillMatch); err != nil {
		return nil, err
	}
	if m.ExperienceMatch, err = json.Marshal(r.ExperienceMatch); err != nil {
		return nil, err
	}
	if m.EducationMatch, err = json.Marshal(r.EducationMatch); err != nil {
		return nil, err
	}
	if m.KeywordMatch, err = json.Marshal(r.KeywordMatch); err != nil {
		return nil, err
	}
	if m.GapAnalysis, err = json.Marshal(r.GapAnalysis); err != nil {
		return nil, err
	}
	return m, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Upsert keeps the id and created_at of an existing row for the same pair and
// copies them back onto result.
func (r *PostgresScreeningRepository) Upsert(ctx context.Context, result *screening.ScreeningResult) error {
	model, err := fromEntity(result)
	if err != nil {
		return errx.Wrap(err, "failed to encode screening result", errx.TypeInternal)
	}

	query := `
		INSERT INTO screening_results (` + screeningColumns + `)
		VALUES (:id, :candidate_id, :job_id, :resume_id, :skill_match, :experience_match, :education_match,
			:keyword_match, :gap_analysis, :overall_score, :qualified, :notes, :created_at, :updated_at)
		ON CONFLICT (candidate_id, job_id) DO UPDATE SET
			resume_id = EXCLUDED.resume_id,
			skill_match = EXCLUDED.skill_match,
			experience_match = EXCLUDED.experience_match,
			education_match = EXCLUDED.education_match,
			keyword_match = EXCLUDED.keyword_match,
			gap_analysis = EXCLUDED.gap_analysis,
			overall_score = EXCLUDED.overall_score,
			qualified = EXCLUDED.qualified,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	rows, err := r.db.NamedQueryContext(ctx, query, model)
	if err != nil {
		return errx.Wrap(err, "failed to save screening result", errx.TypeInternal)
	}
	defer rows.Close()

	if rows.Next() {
		var id string
		var createdAt time.Time
		if err := rows.Scan(&id, &createdAt); err != nil {
			return errx.Wrap(err, "failed to read saved screening result", errx.TypeInternal)
		}
		result.ID = kernel.ScreeningID(id)
		result.CreatedAt = createdAt
	}
	return rows.Err()
}

func (r *PostgresScreeningRepository) GetByID(ctx context.Context, id kernel.ScreeningID) (*screening.ScreeningResult, error) {
	query := `SELECT ` + screeningColumns + ` FROM screening_results WHERE id = $1`
	return r.getOne(ctx, query, map[string]any{"screening_id": id}, id.String())
}

func (r *PostgresScreeningRepository) GetByCandidateAndJob(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*screening.ScreeningResult, error) {
	query := `SELECT ` + screeningColumns + ` FROM screening_results WHERE candidate_id = $1 AND job_id = $2`
	details := map[string]any{"candidate_id": candidateID, "job_id": jobID}
	return r.getOne(ctx, query, details, candidateID.String(), jobID.String())
}

func (r *PostgresScreeningRepository) ListByJob(ctx context.Context, jobID kernel.JobID) ([]screening.ScreeningResult, error) {
	query := `SELECT ` + screeningColumns + ` FROM screening_results WHERE job_id = $1 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, jobID.String())
}

func (r *PostgresScreeningRepository) ListByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]screening.ScreeningResult, error) {
	query := `SELECT ` + screeningColumns + ` FROM screening_results WHERE candidate_id = $1 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, candidateID.String())
}

func (r *PostgresScreeningRepository) getOne(ctx context.Context, query string, details map[string]any, args ...any) (*screening.ScreeningResult, error) {
	var model screeningModel
	if err := r.db.GetContext(ctx, &model, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, screening.ErrScreeningNotFound().WithDetails(details)
		}
		return nil, errx.Wrap(err, "failed to get screening result", errx.TypeInternal)
	}

	result, err := model.toEntity()
	if err != nil {
		return nil, errx.Wrap(err, "failed to decode screening result", errx.TypeInternal)
	}
	return result, nil
}

func (r *PostgresScreeningRepository) list(ctx context.Context, query string, args ...any) ([]screening.ScreeningResult, error) {
	var models []screeningModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list screening results", errx.TypeInternal)
	}

	results := make([]screening.ScreeningResult, 0, len(models))
	for i := range models {
		result, err := models[i].toEntity()
		if err != nil {
			return nil, errx.Wrap(err, "failed to decode screening result", errx.TypeInternal)
		}
		results = append(results, *result)
	}
	return results, nil
}
