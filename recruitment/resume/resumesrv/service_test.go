package resumesrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/fsx/fsxmem"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const janeResume = "Jane Doe\njane@x.com\n(555) 111-2222\n\nSkills\nReact, TypeScript\n\nEducation\nBSc Computer Science, ABC University 2015 - 2019"

type fakeRemote struct {
	data  *resume.ParsedData
	err   error
	calls int
}

func (f *fakeRemote) ParseFile(_ context.Context, _ string, _ []byte) (*resume.ParsedData, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := *f.data
	return &out, nil
}

func (f *fakeRemote) Status(context.Context) error { return f.err }

type fixture struct {
	svc    *Service
	repo   *resumeinfra.MemoryResumeRepository
	jobs   resume.JobRepository
	queue  *resumeinfra.MemoryParseQueue
	files  *fsxmem.MemoryFileSystem
	remote *fakeRemote
}

func newFixture(t *testing.T, remote *fakeRemote, cfg Config) *fixture {
	t.Helper()
	f := &fixture{
		repo:   resumeinfra.NewMemoryResumeRepository(),
		jobs:   resumeinfra.NewMemoryJobRepository(),
		queue:  resumeinfra.NewMemoryParseQueue(),
		files:  fsxmem.NewMemoryFileSystem(),
		remote: remote,
	}
	var rp resume.RemoteParser
	if remote != nil {
		rp = remote
	}
	f.svc = NewService(f.repo, nil, rp, f.jobs, f.files, f.queue, cfg)
	return f
}

func TestService_ParseText(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, DefaultConfig())
	candidateID := kernel.NewCandidateID("cand-1")

	model, err := f.svc.ParseText(ctx, resume.ParseTextRequest{Text: janeResume, CandidateID: &candidateID})
	require.NoError(t, err)

	assert.Equal(t, resume.StatusProcessed, model.Status)
	assert.Equal(t, "Jane", model.Data.PersonalInfo.FirstName)
	assert.Equal(t, []string{"React", "TypeScript"}, model.Data.ProfessionalInfo.Skills)
	assert.Equal(t, janeResume, model.RawText)
	assert.Greater(t, model.Confidence.Overall, 0.0)
	assert.False(t, model.UploadDate.IsZero())

	stored, err := f.svc.GetResume(ctx, model.ID)
	require.NoError(t, err)
	assert.Equal(t, candidateID, *stored.CandidateID)
}

func TestService_ParseText_Blank(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, DefaultConfig())

	model, err := f.svc.ParseText(ctx, resume.ParseTextRequest{Text: "   \n  "})
	require.NoError(t, err)

	assert.Equal(t, resume.StatusProcessed, model.Status)
	assert.Empty(t, model.Data.PersonalInfo.Email)
	assert.Empty(t, model.Data.ProfessionalInfo.Skills)
	assert.Empty(t, model.Data.Experience)
	assert.InDelta(t, 0.0, model.Confidence.Overall, 0.01)

	_, err = f.svc.GetResume(ctx, model.ID)
	require.NoError(t, err)
}

func TestService_ParseFile_Empty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, DefaultConfig())

	model, err := f.svc.ParseFile(ctx, resume.ParseFileRequest{FileName: "cv.txt"})
	require.NoError(t, err)

	assert.Equal(t, resume.StatusFailed, model.Status)
	assert.Contains(t, model.Warnings, "file is empty")
	assert.Zero(t, model.Confidence.Overall)

	_, err = f.svc.GetResume(ctx, model.ID)
	require.NoError(t, err)
}

func TestService_ParseFile_Validation(t *testing.T) {
	f := newFixture(t, nil, DefaultConfig())

	tests := []struct {
		name string
		req  resume.ParseFileRequest
		code errx.Code
	}{
		{
			name: "unsupported extension",
			req:  resume.ParseFileRequest{FileName: "cv.png", Data: []byte("x")},
			code: resume.CodeUnsupportedFormat,
		},
		{
			name: "no extension",
			req:  resume.ParseFileRequest{FileName: "resume", Data: []byte("x")},
			code: resume.CodeUnsupportedFormat,
		},
		{
			name: "declared size over the limit",
			req:  resume.ParseFileRequest{FileName: "cv.pdf", Size: 11 << 20, Data: []byte("x")},
			code: resume.CodeFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ParseFile(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errx.IsCode(err, tt.code), "got %v", err)
		})
	}

	all, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestService_ParseFile_Local(t *testing.T) {
	f := newFixture(t, nil, DefaultConfig())

	model, err := f.svc.ParseFile(context.Background(), resume.ParseFileRequest{
		FileName: "Jane.TXT",
		Data:     []byte(janeResume),
	})
	require.NoError(t, err)

	assert.Equal(t, resume.StatusProcessed, model.Status)
	assert.Equal(t, "txt", model.FileType)
	assert.Equal(t, "jane@x.com", model.Data.PersonalInfo.Email)
	assert.Empty(t, model.Warnings)
}

func TestService_ParseFile_RemoteFirst(t *testing.T) {
	remote := &fakeRemote{data: &resume.ParsedData{
		PersonalInfo: resume.PersonalInfo{FirstName: "Remote", LastName: "Result", Email: "r@example.com"},
		ProfessionalInfo: resume.ProfessionalInfo{
			Skills: []string{"Go", "go", "Rust"},
		},
	}}
	f := newFixture(t, remote, DefaultConfig())

	model, err := f.svc.ParseFile(context.Background(), resume.ParseFileRequest{
		FileName: "cv.txt",
		Data:     []byte(janeResume),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, "Remote", model.Data.PersonalInfo.FirstName)
	assert.Equal(t, []string{"Go", "Rust"}, model.Data.ProfessionalInfo.Skills)
	assert.NotNil(t, model.Data.Education)
	assert.Equal(t, janeResume, model.RawText)
	assert.Equal(t, resume.StatusProcessed, model.Status)
}

func TestService_ParseFile_RemoteFallsBackToLocal(t *testing.T) {
	remote := &fakeRemote{err: resume.ErrRemoteParserUnavailable()}
	f := newFixture(t, remote, DefaultConfig())

	model, err := f.svc.ParseFile(context.Background(), resume.ParseFileRequest{
		FileName: "cv.txt",
		Data:     []byte(janeResume),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, "Jane", model.Data.PersonalInfo.FirstName)
	assert.Equal(t, resume.StatusProcessed, model.Status)
}

func TestService_ParseFile_Degraded(t *testing.T) {
	f := newFixture(t, nil, DefaultConfig())

	model, err := f.svc.ParseFile(context.Background(), resume.ParseFileRequest{
		FileName: "cv.docx",
		Data:     []byte("PK\x03\x04 not really a docx"),
	})
	require.NoError(t, err)

	assert.Equal(t, resume.StatusProcessed, model.Status)
	require.Len(t, model.Warnings, 1)
	assert.Contains(t, model.Warnings[0], ".docx")
	assert.Less(t, model.Confidence.Overall, 0.5)
}

func TestService_ParseFile_UnreadableIsStoredAsFailed(t *testing.T) {
	f := newFixture(t, nil, DefaultConfig())

	model, err := f.svc.ParseFile(context.Background(), resume.ParseFileRequest{
		FileName: "cv.txt",
		Data:     []byte{0, 1, 2, 3, 0, 0, 0, 5, 6, 0},
	})
	require.NoError(t, err)

	assert.Equal(t, resume.StatusFailed, model.Status)
	assert.NotEmpty(t, model.Warnings)
	assert.Equal(t, 0.0, model.Confidence.Overall)
	assert.NotNil(t, model.Data.Experience)

	stored, err := f.svc.GetResume(context.Background(), model.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.StatusFailed, stored.Status)
}

func TestService_ParseCV(t *testing.T) {
	remote := &fakeRemote{err: errors.New("must not be called")}
	f := newFixture(t, remote, DefaultConfig())

	data, err := f.svc.ParseCV(context.Background(), "cv.txt", []byte(janeResume))
	require.NoError(t, err)
	assert.Equal(t, "Doe", data.PersonalInfo.LastName)
	assert.Zero(t, remote.calls)

	all, _ := f.svc.ListAll(context.Background())
	assert.Empty(t, all)

	_, err = f.svc.ParseCV(context.Background(), "cv.exe", []byte("x"))
	assert.True(t, errx.IsCode(err, resume.CodeUnsupportedFormat))
}

func TestService_LinkCandidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, DefaultConfig())

	model, err := f.svc.ParseText(ctx, resume.ParseTextRequest{Text: janeResume})
	require.NoError(t, err)

	first := kernel.NewCandidateID("c1")
	linked, err := f.svc.LinkCandidate(ctx, model.ID, first)
	require.NoError(t, err)
	assert.Equal(t, first, *linked.CandidateID)

	_, err = f.svc.LinkCandidate(ctx, model.ID, first)
	assert.NoError(t, err)

	_, err = f.svc.LinkCandidate(ctx, model.ID, kernel.NewCandidateID("c2"))
	assert.True(t, errx.IsCode(err, resume.CodeResumeAlreadyHasCandidate))

	_, err = f.svc.LinkCandidate(ctx, kernel.NewResumeID("missing"), first)
	assert.True(t, errx.IsCode(err, resume.CodeResumeNotFound))
}

func TestService_ListResumes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, DefaultConfig())
	mine := kernel.NewCandidateID("mine")

	for i := 0; i < 3; i++ {
		_, err := f.svc.ParseText(ctx, resume.ParseTextRequest{Text: janeResume, CandidateID: &mine})
		require.NoError(t, err)
	}
	_, err := f.svc.ParseText(ctx, resume.ParseTextRequest{Text: janeResume})
	require.NoError(t, err)

	all, err := f.svc.ListResumes(ctx, resume.ListResumesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Page.Total)

	page, err := f.svc.ListResumes(ctx, resume.ListResumesRequest{
		CandidateID:       &mine,
		PaginationOptions: kernel.PaginationOptions{Page: 2, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page.Total)
	assert.Len(t, page.Items, 1)
}

func TestService_Async(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, DefaultConfig())
	candidateID := kernel.NewCandidateID("c1")

	status, err := f.svc.ParseFileAsync(ctx, resume.ParseFileRequest{
		FileName:    "../../jane.txt",
		Data:        []byte(janeResume),
		CandidateID: &candidateID,
	})
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusPending, status.Status)

	job, err := f.queue.Pop(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "jane.txt", job.FileName)
	assert.Equal(t, "resumes/"+job.ID.String()+"/jane.txt", job.FilePath)

	require.NoError(t, f.svc.ProcessJob(ctx, job))

	done, err := f.svc.GetJobStatus(ctx, status.JobID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusCompleted, done.Status)
	assert.Equal(t, 100, done.Progress)
	require.NotNil(t, done.ResumeID)

	model, err := f.svc.GetResume(ctx, *done.ResumeID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", model.Data.PersonalInfo.FirstName)
	assert.Equal(t, candidateID, *model.CandidateID)
}

func TestService_Async_RetryThenFail(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.MaxAttempts = 2
	f := newFixture(t, nil, cfg)

	status, err := f.svc.ParseFileAsync(ctx, resume.ParseFileRequest{FileName: "cv.txt", Data: []byte(janeResume)})
	require.NoError(t, err)

	job, err := f.queue.Pop(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)

	require.NoError(t, f.files.DeleteFile(ctx, job.FilePath))

	err = f.svc.ProcessJob(ctx, job)
	assert.True(t, errx.IsCode(err, resume.CodeJobFailed))

	retrying, err := f.svc.GetJobStatus(ctx, status.JobID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusPending, retrying.Status)
	assert.Equal(t, 1, retrying.AttemptCount)
	assert.NotNil(t, retrying.NextRetryAt)

	stats, err := f.queue.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Delayed)

	err = f.svc.ProcessJob(ctx, job)
	assert.True(t, errx.IsCode(err, resume.CodeJobMaxRetriesReached))

	failed, err := f.svc.GetJobStatus(ctx, status.JobID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusFailed, failed.Status)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "file_read_failed", failed.Error.Message)
}

func TestService_Async_Disabled(t *testing.T) {
	svc := NewService(resumeinfra.NewMemoryResumeRepository(), nil, nil, nil, nil, nil, DefaultConfig())

	_, err := svc.ParseFileAsync(context.Background(), resume.ParseFileRequest{FileName: "cv.txt", Data: []byte("x")})
	assert.True(t, errx.IsCode(err, resume.CodeAsyncParsingDisabled))
	assert.False(t, svc.AsyncEnabled())
}
