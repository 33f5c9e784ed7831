package resume

import (
	"strings"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusFailed     Status = "failed"
)

// ParsedResume is the structured result of running the parser over one resume
type ParsedResume struct {
	ID          kernel.ResumeID     `db:"id" json:"id"`
	CandidateID *kernel.CandidateID `db:"candidate_id" json:"candidate_id,omitempty"`

	// Source
	FileName string `db:"file_name" json:"file_name,omitempty"`
	FileType string `db:"file_type" json:"file_type,omitempty"`
	RawText  string `db:"raw_text" json:"raw_text"`

	// Extracted data
	Data       ParsedData       `db:"parsed_data" json:"parsed_data"`
	Confidence ConfidenceScores `db:"confidence" json:"confidence_scores"`

	Status     Status    `db:"status" json:"status"`
	Warnings   []string  `db:"warnings" json:"warnings,omitempty"`
	UploadDate time.Time `db:"upload_date" json:"upload_date"`
}

// ParsedData is the shape shared by the local parser and the remote parse-cv service
type ParsedData struct {
	PersonalInfo     PersonalInfo     `json:"personal_info"`
	ProfessionalInfo ProfessionalInfo `json:"professional_info"`
	Education        []Education      `json:"education"`
	Experience       []Experience     `json:"experience"`
	Certifications   []string         `json:"certifications"`
	Languages        []string         `json:"languages"`
}

// PersonalInfo fields are empty when not found
type PersonalInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type ProfessionalInfo struct {
	Title             string   `json:"title"`
	Summary           string   `json:"summary"`
	YearsOfExperience int      `json:"years_of_experience"`
	CurrentEmployer   string   `json:"current_employer,omitempty"`
	Skills            []string `json:"skills"`
}

// Education dates are free-form and not guaranteed to parse
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Current     bool   `json:"current"`
}

type Experience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// ConfidenceScores are diagnostic values in [0,1]
type ConfidenceScores struct {
	Contact    float64 `json:"contact"`
	Education  float64 `json:"education"`
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
	Overall    float64 `json:"overall"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// FullName joins first and last name
func (p PersonalInfo) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// HasKnownName is false for the "Unknown Candidate" fallback
func (p PersonalInfo) HasKnownName() bool {
	return p.FirstName != "" && !(p.FirstName == UnknownFirstName && p.LastName == UnknownLastName)
}

// IsProcessed reports whether parsing produced data
func (r *ParsedResume) IsProcessed() bool {
	return r.Status == StatusProcessed
}

// HasCandidate reports whether the resume is linked to a candidate
func (r *ParsedResume) HasCandidate() bool {
	return r.CandidateID != nil && !r.CandidateID.IsEmpty()
}

// AssignCandidate links the resume to its owning candidate
func (r *ParsedResume) AssignCandidate(id kernel.CandidateID) {
	r.CandidateID = &id
}

// Skills returns the extracted skill names
func (r *ParsedResume) Skills() []string {
	return r.Data.ProfessionalInfo.Skills
}

// HasSkill compares skill names case-insensitively
func (r *ParsedResume) HasSkill(name string) bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, s := range r.Data.ProfessionalInfo.Skills {
		if strings.ToLower(strings.TrimSpace(s)) == needle {
			return true
		}
	}
	return false
}

// LatestExperience returns the entry listed first, resumes being newest-first
func (r *ParsedResume) LatestExperience() *Experience {
	if len(r.Data.Experience) == 0 {
		return nil
	}
	return &r.Data.Experience[0]
}

// AddWarning records a non-fatal parsing problem
func (r *ParsedResume) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

const (
	UnknownFirstName = "Unknown"
	UnknownLastName  = "Candidate"
)
