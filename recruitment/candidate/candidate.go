package candidate

import (
	"strings"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

type CandidateStatus string

const (
	CandidateStatusActive   CandidateStatus = "ACTIVE"
	CandidateStatusArchived CandidateStatus = "ARCHIVED"
)

// Source records how a candidate entered the system
type Source string

const (
	SourceManual Source = "manual"
	SourceResume Source = "resume"
)

// Candidate is the person a ParsedResume belongs to. Screening, ranking and
// duplicate detection all key on its ID.
type Candidate struct {
	ID             kernel.CandidateID `db:"id" json:"id"`
	Email          kernel.Email       `db:"email" json:"email"`
	Phone          kernel.Phone       `db:"phone" json:"phone"`
	FirstName      kernel.FirstName   `db:"first_name" json:"first_name"`
	LastName       kernel.LastName    `db:"last_name" json:"last_name"`
	Location       string             `db:"location" json:"location,omitempty"`
	Source         Source             `db:"source" json:"source"`
	SourceResumeID *kernel.ResumeID   `db:"source_resume_id" json:"source_resume_id,omitempty"`
	Status         CandidateStatus    `db:"status" json:"status"`
	ArchivedAt     *time.Time         `db:"archived_at" json:"archived_at,omitempty"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updated_at"`
}

func (c *Candidate) IsActive() bool   { return c.Status == CandidateStatusActive }
func (c *Candidate) IsArchived() bool { return c.Status == CandidateStatusArchived }

func (c *Candidate) FullName() string {
	return strings.TrimSpace(string(c.FirstName) + " " + string(c.LastName))
}

func (c *Candidate) Archive() error {
	if c.IsArchived() {
		return ErrCandidateAlreadyArchived()
	}
	now := time.Now()
	c.Status = CandidateStatusArchived
	c.ArchivedAt = &now
	c.UpdatedAt = now
	return nil
}

func (c *Candidate) Unarchive() error {
	if !c.IsArchived() {
		return ErrCandidateNotArchived()
	}
	c.Status = CandidateStatusActive
	c.ArchivedAt = nil
	c.UpdatedAt = time.Now()
	return nil
}

// ApplyUpdate copies the non-email fields of req onto the candidate. Email
// changes need a uniqueness check and are handled by the service.
func (c *Candidate) ApplyUpdate(req UpdateCandidateRequest) {
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.FirstName != nil && *req.FirstName != "" {
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.Location != nil {
		c.Location = *req.Location
	}
	c.UpdatedAt = time.Now()
}

// ValidEmail is a loose shape check, empty is allowed
func ValidEmail(email kernel.Email) bool {
	e := email.Normalized()
	if e == "" {
		return true
	}
	at := strings.LastIndex(e, "@")
	return at > 0 && strings.Contains(e[at+1:], ".") && !strings.ContainsAny(e, " \t")
}
