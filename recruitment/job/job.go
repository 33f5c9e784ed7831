package job

import (
	"strings"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"     // Created but not published
	JobStatusPublished JobStatus = "PUBLISHED" // Active and accepting applications
	JobStatusClosed    JobStatus = "CLOSED"    // No longer accepting applications
	JobStatusArchived  JobStatus = "ARCHIVED"
)

type Job struct {
	ID              kernel.JobID          `db:"id" json:"id"`
	Title           kernel.JobTitle       `db:"job_title" json:"job_title"`
	Description     kernel.JobDescription `db:"job_description" json:"job_description"`
	RequiredSkills  []string              `db:"required_skills" json:"required_skills"`
	PreferredSkills []string              `db:"preferred_skills" json:"preferred_skills"`
	Status          JobStatus             `db:"status" json:"status"`
	PublishedAt     *time.Time            `db:"published_at" json:"published_at,omitempty"`
	ArchivedAt      *time.Time            `db:"archived_at" json:"archived_at,omitempty"`
	CreatedAt       time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time             `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (j *Job) IsPublished() bool { return j.Status == JobStatusPublished }
func (j *Job) IsArchived() bool  { return j.Status == JobStatusArchived }
func (j *Job) IsDraft() bool     { return j.Status == JobStatusDraft }
func (j *Job) IsClosed() bool    { return j.Status == JobStatusClosed }

// CanBePublished checks if a job can be published
func (j *Job) CanBePublished() bool {
	return j.Status == JobStatusDraft || j.Status == JobStatusClosed
}

// CanBeEdited checks if a job can be edited
func (j *Job) CanBeEdited() bool {
	return !j.IsArchived()
}

// Publish marks the job as published
func (j *Job) Publish() error {
	if j.IsPublished() {
		return ErrJobAlreadyPublished()
	}
	if !j.CanBePublished() {
		return ErrCannotPublish().WithDetail("current_status", j.Status)
	}

	now := time.Now()
	j.Status = JobStatusPublished
	j.PublishedAt = &now
	j.UpdatedAt = now
	return nil
}

// Close marks the job as closed
func (j *Job) Close() error {
	if j.IsArchived() {
		return ErrJobArchived()
	}
	j.Status = JobStatusClosed
	j.UpdatedAt = time.Now()
	return nil
}

// Archive marks the job as archived
func (j *Job) Archive() error {
	if j.IsArchived() {
		return ErrJobAlreadyArchived()
	}

	now := time.Now()
	j.Status = JobStatusArchived
	j.ArchivedAt = &now
	j.UpdatedAt = now
	return nil
}

// Unarchive removes archived status
func (j *Job) Unarchive() error {
	if !j.IsArchived() {
		return ErrJobNotArchived()
	}

	j.Status = JobStatusDraft
	j.ArchivedAt = nil
	j.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails applies the non-nil fields of req
func (j *Job) UpdateDetails(req UpdateJobRequest) error {
	if !j.CanBeEdited() {
		return ErrJobArchived()
	}
	if req.Title != nil && *req.Title != "" {
		j.Title = *req.Title
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.RequiredSkills != nil {
		j.RequiredSkills = CleanSkills(*req.RequiredSkills)
	}
	if req.PreferredSkills != nil {
		j.PreferredSkills = CleanSkills(*req.PreferredSkills)
	}
	j.UpdatedAt = time.Now()
	return nil
}

// Keywords returns required then preferred skills without repeats
func (j *Job) Keywords() []string {
	return CleanSkills(append(append([]string{}, j.RequiredSkills...), j.PreferredSkills...))
}

// CleanSkills trims names and drops empties and case-insensitive repeats
func CleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
