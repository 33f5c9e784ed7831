package screening

import (
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

// ScreeningResult is the scored comparison of one parsed resume against one job.
// There is at most one result per (candidate, job); screening again replaces it.
type ScreeningResult struct {
	ID          kernel.ScreeningID `db:"id" json:"id"`
	CandidateID kernel.CandidateID `db:"candidate_id" json:"candidate_id"`
	JobID       kernel.JobID       `db:"job_id" json:"job_id"`
	ResumeID    kernel.ResumeID    `db:"resume_id" json:"resume_id"`

	SkillMatch      SkillMatch      `db:"skill_match" json:"skill_match"`
	ExperienceMatch ExperienceMatch `db:"experience_match" json:"experience_match"`
	EducationMatch  EducationMatch  `db:"education_match" json:"education_match"`
	KeywordMatch    KeywordMatch    `db:"keyword_match" json:"keyword_match"`

	OverallScore float64     `db:"overall_score" json:"overall_score"`
	GapAnalysis  GapAnalysis `db:"gap_analysis" json:"gap_analysis"`
	Qualified    bool        `db:"qualified" json:"qualified"`
	Notes        string      `db:"notes" json:"notes"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SkillMatch scores required skills found among the resume skills
type SkillMatch struct {
	Score           float64  `json:"score"`
	FoundSkills     []string `json:"found_skills"`
	MissingSkills   []string `json:"missing_skills"`
	PreferredSkills []string `json:"preferred_skills_found"`
}

// ExperienceMatch scores years spent in relevant roles
type ExperienceMatch struct {
	Score             float64  `json:"score"`
	RelevantYears     float64  `json:"relevant_years"`
	RelevantCompanies []string `json:"relevant_companies"`
	RelevantRoles     []string `json:"relevant_roles"`
}

// EducationMatch scores whether any degree is in a relevant field
type EducationMatch struct {
	Score           float64  `json:"score"`
	RelevantDegrees []string `json:"relevant_degrees"`
}

// KeywordMatch counts job keywords in the raw resume text
type KeywordMatch struct {
	Score           float64        `json:"score"`
	MatchedKeywords map[string]int `json:"matched_keywords"`
	TotalKeywords   int            `json:"total_keywords"`
}

// GapAnalysis summarizes employment gaps
type GapAnalysis struct {
	HasGaps        bool     `json:"has_gaps"`
	GapPeriods     []string `json:"gap_periods"`
	TotalGapMonths int      `json:"total_gap_months"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// MissingRequiredSkills reports whether any required skill was not found
func (r *ScreeningResult) MissingRequiredSkills() bool {
	return len(r.SkillMatch.MissingSkills) > 0
}

// Replaces carries identity over from an earlier screening of the same pair
func (r *ScreeningResult) Replaces(previous *ScreeningResult) {
	r.ID = previous.ID
	r.CreatedAt = previous.CreatedAt
}
