package resumesrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/talentrelay/internal/textextract"
	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/fsx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeparse"
	"github.com/google/uuid"
)

// Config holds the tunables of the resume service
type Config struct {
	MaxFileSize    int64
	MaxAttempts    int
	RetryBaseDelay time.Duration
	UploadPrefix   string
}

func DefaultConfig() Config {
	return Config{
		MaxFileSize:    textextract.MaxFileSize,
		MaxAttempts:    3,
		RetryBaseDelay: time.Minute,
		UploadPrefix:   "resumes",
	}
}

type Service struct {
	repo    resume.Repository
	parser  *resumeparse.Parser
	remote  resume.RemoteParser
	jobRepo resume.JobRepository
	files   fsx.FileSystem
	queue   resume.ParseQueue
	cfg     Config
	now     func() time.Time
}

// NewService creates a new resume service. remote may be nil, in which case
// files are parsed locally only. jobRepo, files and queue may be nil when
// asynchronous parsing is not wanted.
func NewService(
	repo resume.Repository,
	parser *resumeparse.Parser,
	remote resume.RemoteParser,
	jobRepo resume.JobRepository,
	files fsx.FileSystem,
	queue resume.ParseQueue,
	cfg Config,
) *Service {
	if parser == nil {
		parser = resumeparse.NewParser(nil)
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = textextract.MaxFileSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Service{
		repo:    repo,
		parser:  parser,
		remote:  remote,
		jobRepo: jobRepo,
		files:   files,
		queue:   queue,
		cfg:     cfg,
		now:     time.Now,
	}
}

// ============================================================================
// Parse
// ============================================================================

// ParseText parses raw resume text and stores the result. Text input is not
// validated: blank text yields a record with empty fields and zero confidence.
func (s *Service) ParseText(ctx context.Context, req resume.ParseTextRequest) (*resume.ParsedResume, error) {
	model := s.newRecord("", "")
	model.RawText = req.Text
	s.applyLocalParse(model, req.Text)
	if req.CandidateID != nil {
		model.AssignCandidate(*req.CandidateID)
	}

	if err := s.store(ctx, model); err != nil {
		return nil, err
	}

	logx.Infof("Parsed resume text: ResumeID=%s, Confidence=%.2f", model.ID, model.Confidence.Overall)
	return model, nil
}

// ParseFile validates an uploaded file, parses it and stores the result.
// Only validation and storage failures are errors; unreadable content
// produces a stored record with status failed.
func (s *Service) ParseFile(ctx context.Context, req resume.ParseFileRequest) (*resume.ParsedResume, error) {
	if err := s.ValidateFile(req.FileName, fileSize(req)); err != nil {
		return nil, err
	}

	logx.Infof("Parsing resume file: %s (%d bytes)", req.FileName, len(req.Data))

	model := s.parseFileData(ctx, req.FileName, req.Data)
	if req.CandidateID != nil {
		model.AssignCandidate(*req.CandidateID)
	}

	if err := s.store(ctx, model); err != nil {
		return nil, err
	}

	logx.Infof("Parsed resume file: ResumeID=%s, Status=%s, Confidence=%.2f",
		model.ID, model.Status, model.Confidence.Overall)
	return model, nil
}

// ParseCV runs the local pipeline only and returns the structured data without
// storing it. It serves the parse-cv boundary for other instances.
func (s *Service) ParseCV(_ context.Context, fileName string, data []byte) (*resume.ParsedData, error) {
	if err := s.ValidateFile(fileName, int64(len(data))); err != nil {
		return nil, err
	}

	extracted, err := textextract.Extract(fileName, data)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeInvalidResumeData, err).
			WithDetail("file_name", fileName)
	}

	result := s.parser.Parse(extracted.Text)
	return &result.Data, nil
}

// ValidateFile checks the extension allow-list and the size ceiling
func (s *Service) ValidateFile(fileName string, size int64) error {
	ext := textextract.Extension(fileName)
	if !textextract.IsSupported(ext) {
		return resume.ErrUnsupportedFormat().
			WithDetail("file_name", fileName).
			WithDetail("extension", ext).
			WithDetail("supported", textextract.SupportedFormats())
	}
	if size > s.cfg.MaxFileSize {
		return resume.ErrFileTooLarge().
			WithDetail("file_name", fileName).
			WithDetail("size", size).
			WithDetail("max_size", s.cfg.MaxFileSize)
	}
	return nil
}

// parseFileData tries the remote parser first and falls back to the local one
func (s *Service) parseFileData(ctx context.Context, fileName string, data []byte) *resume.ParsedResume {
	model := s.newRecord(fileName, strings.TrimPrefix(textextract.Extension(fileName), "."))

	if len(data) == 0 {
		logx.Warnf("Resume file %s is empty", fileName)
		resumeparse.Normalize(&model.Data)
		model.Status = resume.StatusFailed
		model.AddWarning("file is empty")
		return model
	}

	extracted, extractErr := textextract.Extract(fileName, data)
	if extractErr == nil {
		model.RawText = extracted.Text
	}

	if s.remote != nil {
		parsed, err := s.remote.ParseFile(ctx, fileName, data)
		if err == nil {
			resumeparse.Normalize(parsed)
			model.Data = *parsed
			model.Confidence = resumeparse.Score(*parsed)
			model.Status = resume.StatusProcessed
			return model
		}
		logx.Warnf("Remote parser failed for %s, falling back to local parser: %v", fileName, err)
	}

	if extractErr != nil {
		logx.Warnf("Text extraction failed for %s: %v", fileName, extractErr)
		resumeparse.Normalize(&model.Data)
		model.Status = resume.StatusFailed
		model.AddWarning("text extraction failed: " + extractErr.Error())
		return model
	}

	if extracted.Degraded {
		model.AddWarning(extracted.Warning)
	}
	s.applyLocalParse(model, extracted.Text)
	return model
}

func (s *Service) applyLocalParse(model *resume.ParsedResume, text string) {
	result := s.parser.Parse(text)
	model.Data = result.Data
	model.Confidence = result.Confidence
	model.Status = resume.StatusProcessed
}

func (s *Service) newRecord(fileName, fileType string) *resume.ParsedResume {
	return &resume.ParsedResume{
		ID:         kernel.NewResumeID(uuid.NewString()),
		FileName:   fileName,
		FileType:   fileType,
		Status:     resume.StatusProcessing,
		Warnings:   []string{},
		UploadDate: s.now(),
	}
}

func (s *Service) store(ctx context.Context, model *resume.ParsedResume) error {
	if err := s.repo.Create(ctx, model); err != nil {
		return errx.Wrap(err, "failed to store parsed resume", errx.TypeInternal).
			WithDetail("resume_id", model.ID)
	}
	return nil
}

func fileSize(req resume.ParseFileRequest) int64 {
	if n := int64(len(req.Data)); n > req.Size {
		return n
	}
	return req.Size
}

// ============================================================================
// Queries
// ============================================================================

// GetResume retrieves a parsed resume by ID
func (s *Service) GetResume(ctx context.Context, id kernel.ResumeID) (*resume.ParsedResume, error) {
	return s.repo.GetByID(ctx, id)
}

// ListResumes lists resumes, optionally restricted to one candidate
func (s *Service) ListResumes(ctx context.Context, req resume.ListResumesRequest) (*resume.ListResumesResponse, error) {
	if req.CandidateID == nil || req.CandidateID.IsEmpty() {
		return s.repo.List(ctx, req.PaginationOptions)
	}

	models, err := s.repo.ListByCandidateID(ctx, *req.CandidateID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidate resumes", errx.TypeInternal)
	}

	items := make([]resume.ParsedResume, 0, len(models))
	for _, m := range models {
		items = append(items, *m)
	}
	return kernel.PageOf(items, req.PaginationOptions), nil
}

// GetLatestForCandidate returns the candidate's most recently uploaded resume
func (s *Service) GetLatestForCandidate(ctx context.Context, candidateID kernel.CandidateID) (*resume.ParsedResume, error) {
	return s.repo.GetLatestByCandidateID(ctx, candidateID)
}

// ListAll returns every stored resume
func (s *Service) ListAll(ctx context.Context) ([]*resume.ParsedResume, error) {
	return s.repo.ListAll(ctx)
}

// LinkCandidate assigns a resume to a candidate. A resume already owned by a
// different candidate is left untouched.
func (s *Service) LinkCandidate(ctx context.Context, id kernel.ResumeID, candidateID kernel.CandidateID) (*resume.ParsedResume, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if model.HasCandidate() {
		if *model.CandidateID == candidateID {
			return model, nil
		}
		return nil, resume.ErrResumeAlreadyHasCandidate().
			WithDetail("resume_id", id).
			WithDetail("candidate_id", *model.CandidateID)
	}

	if err := s.repo.AssignCandidate(ctx, id, candidateID); err != nil {
		return nil, err
	}
	model.AssignCandidate(candidateID)

	logx.Infof("Linked resume %s to candidate %s", id, candidateID)
	return model, nil
}
