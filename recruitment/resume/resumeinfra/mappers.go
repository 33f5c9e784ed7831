package resumeinfra

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/lib/pq"
)

// resumeRow represents a row from the parsed_resumes table
type resumeRow struct {
	ID          string         `db:"id"`
	CandidateID sql.NullString `db:"candidate_id"`
	FileName    string         `db:"file_name"`
	FileType    string         `db:"file_type"`
	RawText     string         `db:"raw_text"`
	ParsedData  []byte         `db:"parsed_data"`
	Confidence  []byte         `db:"confidence"`
	Status      string         `db:"status"`
	Warnings    pq.StringArray `db:"warnings"`
	UploadDate  time.Time      `db:"upload_date"`
}

// ToDomain converts a resumeRow to a resume.ParsedResume
func (r *resumeRow) ToDomain() (*resume.ParsedResume, error) {
	model := &resume.ParsedResume{
		ID:         kernel.ResumeID(r.ID),
		FileName:   r.FileName,
		FileType:   r.FileType,
		RawText:    r.RawText,
		Status:     resume.Status(r.Status),
		Warnings:   []string(r.Warnings),
		UploadDate: r.UploadDate,
	}

	if r.CandidateID.Valid && r.CandidateID.String != "" {
		model.AssignCandidate(kernel.CandidateID(r.CandidateID.String))
	}

	if err := json.Unmarshal(r.ParsedData, &model.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parsed_data: %w", err)
	}

	if err := json.Unmarshal(r.Confidence, &model.Confidence); err != nil {
		return nil, fmt.Errorf("failed to unmarshal confidence: %w", err)
	}

	return model, nil
}

// toResumeRow marshals the JSONB columns of a parsed resume
func toResumeRow(model *resume.ParsedResume) (*resumeRow, error) {
	data, err := json.Marshal(model.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parsed_data: %w", err)
	}

	confidence, err := json.Marshal(model.Confidence)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confidence: %w", err)
	}

	row := &resumeRow{
		ID:         model.ID.String(),
		FileName:   model.FileName,
		FileType:   model.FileType,
		RawText:    model.RawText,
		ParsedData: data,
		Confidence: confidence,
		Status:     string(model.Status),
		Warnings:   pq.StringArray(model.Warnings),
		UploadDate: model.UploadDate,
	}
	if model.HasCandidate() {
		row.CandidateID = sql.NullString{String: model.CandidateID.String(), Valid: true}
	}
	return row, nil
}

func rowsToDomain(rows []resumeRow) ([]*resume.ParsedResume, error) {
	out := make([]*resume.ParsedResume, 0, len(rows))
	for i := range rows {
		model, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, model)
	}
	return out, nil
}
