package candidatesrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/google/uuid"
)

// ResumeLinker is the part of the resume service candidates depend on
type ResumeLinker interface {
	GetResume(ctx context.Context, id kernel.ResumeID) (*resume.ParsedResume, error)
	LinkCandidate(ctx context.Context, id kernel.ResumeID, candidateID kernel.CandidateID) (*resume.ParsedResume, error)
}

// CandidateService provides business operations for candidates
type CandidateService struct {
	candidateRepo candidate.Repository
	resumes       ResumeLinker
}

// NewCandidateService creates a new instance of the candidate service
func NewCandidateService(
	candidateRepo candidate.Repository,
	resumes ResumeLinker,
) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
		resumes:       resumes,
	}
}

// CreateCandidate creates a new candidate
func (s *CandidateService) CreateCandidate(ctx context.Context, req candidate.CreateCandidateRequest) (*candidate.Candidate, error) {
	return s.create(ctx, req, candidate.SourceManual, nil)
}

func (s *CandidateService) create(ctx context.Context, req candidate.CreateCandidateRequest, source candidate.Source, resumeID *kernel.ResumeID) (*candidate.Candidate, error) {
	if strings.TrimSpace(string(req.FirstName)) == "" {
		return nil, candidate.ErrInvalidRequest().WithDetail("field", "first_name")
	}
	if !candidate.ValidEmail(req.Email) {
		return nil, candidate.ErrInvalidEmail().WithDetail("email", req.Email)
	}

	// Check for existing candidate by email
	if req.Email.Normalized() != "" {
		existing, err := s.candidateRepo.GetByEmail(ctx, req.Email)
		if err == nil && existing != nil {
			return nil, candidate.ErrEmailAlreadyExists().
				WithDetail("email", string(req.Email)).
				WithDetail("existing_id", existing.ID.String())
		}
		if err != nil && !errx.IsCode(err, candidate.CodeCandidateNotFound) {
			return nil, errx.Wrap(err, "failed to check candidate email", errx.TypeInternal)
		}
	}

	now := time.Now()
	newCandidate := &candidate.Candidate{
		ID:             kernel.NewCandidateID(uuid.NewString()),
		Email:          kernel.Email(req.Email.Normalized()),
		Phone:          req.Phone,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Location:       req.Location,
		Source:         source,
		SourceResumeID: resumeID,
		Status:         candidate.CandidateStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.candidateRepo.Create(ctx, newCandidate); err != nil {
		return nil, errx.Wrap(err, "failed to create candidate", errx.TypeInternal)
	}

	logx.Infof("Candidate %s created (source=%s)", newCandidate.ID, source)
	return newCandidate, nil
}

// CreateFromResume creates a candidate from the personal info of a parsed
// resume and links the resume to it. A resume that is already linked, or whose
// email belongs to an existing candidate, is attached to that candidate instead.
func (s *CandidateService) CreateFromResume(ctx context.Context, resumeID kernel.ResumeID) (*candidate.CreateFromResumeResponse, error) {
	parsed, err := s.resumes.GetResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	if parsed.HasCandidate() {
		existing, err := s.candidateRepo.GetByID(ctx, *parsed.CandidateID)
		if err != nil {
			return nil, err
		}
		return &candidate.CreateFromResumeResponse{Candidate: existing, Resume: parsed}, nil
	}

	info := parsed.Data.PersonalInfo
	email := kernel.Email(info.Email)

	var target *candidate.Candidate
	created := false

	if email.Normalized() != "" {
		existing, err := s.candidateRepo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			target = existing
		case !errx.IsCode(err, candidate.CodeCandidateNotFound):
			return nil, errx.Wrap(err, "failed to check candidate email", errx.TypeInternal)
		}
	}

	if target == nil {
		firstName := info.FirstName
		lastName := info.LastName
		if firstName == "" {
			firstName, lastName = resume.UnknownFirstName, resume.UnknownLastName
		}
		if !candidate.ValidEmail(email) {
			email = ""
		}
		target, err = s.create(ctx, candidate.CreateCandidateRequest{
			Email:     email,
			Phone:     kernel.Phone(info.Phone),
			FirstName: kernel.FirstName(firstName),
			LastName:  kernel.LastName(lastName),
			Location:  info.Location,
		}, candidate.SourceResume, &resumeID)
		if err != nil {
			return nil, err
		}
		created = true
	}

	linked, err := s.resumes.LinkCandidate(ctx, resumeID, target.ID)
	if err != nil {
		return nil, err
	}

	return &candidate.CreateFromResumeResponse{
		Candidate: target,
		Resume:    linked,
		Created:   created,
	}, nil
}

// GetCandidateByID retrieves a candidate by ID
func (s *CandidateService) GetCandidateByID(ctx context.Context, candidateID kernel.CandidateID) (*candidate.Candidate, error) {
	c, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get candidate", errx.TypeInternal)
	}
	return c, nil
}

// ListCandidates retrieves all candidates with pagination
func (s *CandidateService) ListCandidates(ctx context.Context, req candidate.ListCandidatesRequest) (*candidate.PaginatedCandidatesResponse, error) {
	candidates, err := s.candidateRepo.List(ctx, req.Pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidates", errx.TypeInternal)
	}
	return candidates, nil
}

// UpdateCandidate updates an existing candidate
func (s *CandidateService) UpdateCandidate(ctx context.Context, candidateID kernel.CandidateID, req candidate.UpdateCandidateRequest) (*candidate.Candidate, error) {
	c, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	if c.IsArchived() {
		return nil, candidate.ErrCandidateArchived().WithDetail("candidate_id", candidateID.String())
	}

	if req.Email != nil {
		if !candidate.ValidEmail(*req.Email) {
			return nil, candidate.ErrInvalidEmail().WithDetail("email", *req.Email)
		}
		if req.Email.Normalized() != c.Email.Normalized() {
			if existing, err := s.candidateRepo.GetByEmail(ctx, *req.Email); err == nil && existing.ID != candidateID {
				return nil, candidate.ErrEmailAlreadyExists().WithDetail("email", *req.Email)
			}
		}
		c.Email = kernel.Email(req.Email.Normalized())
	}
	c.ApplyUpdate(req)

	if err := s.candidateRepo.Update(ctx, candidateID, c); err != nil {
		return nil, errx.Wrap(err, "failed to update candidate", errx.TypeInternal)
	}

	return c, nil
}

// DeleteCandidate deletes a candidate
func (s *CandidateService) DeleteCandidate(ctx context.Context, candidateID kernel.CandidateID) error {
	if err := s.candidateRepo.Delete(ctx, candidateID); err != nil {
		return errx.Wrap(err, "failed to delete candidate", errx.TypeInternal)
	}
	logx.Infof("Candidate %s deleted", candidateID)
	return nil
}

// ArchiveCandidate archives a candidate
func (s *CandidateService) ArchiveCandidate(ctx context.Context, candidateID kernel.CandidateID) error {
	c, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return err
	}

	if err := c.Archive(); err != nil {
		return err
	}

	return s.candidateRepo.Update(ctx, candidateID, c)
}

// UnarchiveCandidate unarchives a candidate
func (s *CandidateService) UnarchiveCandidate(ctx context.Context, candidateID kernel.CandidateID) error {
	c, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return err
	}

	if err := c.Unarchive(); err != nil {
		return err
	}

	return s.candidateRepo.Update(ctx, candidateID, c)
}

// BulkArchiveCandidates archives multiple candidates
func (s *CandidateService) BulkArchiveCandidates(ctx context.Context, candidateIDs []kernel.CandidateID) (*candidate.BulkCandidateOperationResponse, error) {
	result := &candidate.BulkCandidateOperationResponse{
		Successful: []kernel.CandidateID{},
		Failed:     make(map[kernel.CandidateID]string),
		Total:      len(candidateIDs),
	}

	for _, candidateID := range candidateIDs {
		if err := s.ArchiveCandidate(ctx, candidateID); err != nil {
			result.Failed[candidateID] = err.Error()
		} else {
			result.Successful = append(result.Successful, candidateID)
		}
	}

	return result, nil
}

// ValidateCandidateExists checks if a candidate exists
func (s *CandidateService) ValidateCandidateExists(ctx context.Context, candidateID kernel.CandidateID) error {
	exists, err := s.candidateRepo.Exists(ctx, candidateID)
	if err != nil {
		return errx.Wrap(err, "failed to check candidate existence", errx.TypeInternal)
	}

	if !exists {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", candidateID.String())
	}

	return nil
}
