package screeningapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/fiberx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate/candidateinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/Abraxas-365/talentrelay/recruitment/job/jobinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/screening"
	"github.com/Abraxas-365/talentrelay/recruitment/screening/screeninginfra"
	"github.com/Abraxas-365/talentrelay/recruitment/screening/screeningsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoSource struct {
	repo *resumeinfra.MemoryResumeRepository
}

func (s repoSource) GetResume(ctx context.Context, id kernel.ResumeID) (*resume.ParsedResume, error) {
	return s.repo.GetByID(ctx, id)
}

func (s repoSource) GetLatestForCandidate(ctx context.Context, candidateID kernel.CandidateID) (*resume.ParsedResume, error) {
	return s.repo.GetLatestByCandidateID(ctx, candidateID)
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	candidates := candidateinfra.NewMemoryCandidateRepository()
	require.NoError(t, candidates.Create(ctx, &candidate.Candidate{
		ID: "c1", FirstName: "Jane", Status: candidate.CandidateStatusActive, CreatedAt: now, UpdatedAt: now,
	}))

	jobs := jobinfra.NewMemoryJobRepository()
	require.NoError(t, jobs.Create(ctx, &job.Job{
		ID: "j1", Title: "Engineer", RequiredSkills: []string{"Go"}, Status: job.JobStatusPublished, CreatedAt: now,
	}))

	resumes := resumeinfra.NewMemoryResumeRepository()
	r := &resume.ParsedResume{ID: "r1", Status: resume.StatusProcessed, UploadDate: now}
	r.AssignCandidate("c1")
	r.Data.ProfessionalInfo.Skills = []string{"go"}
	r.Data.Experience = []resume.Experience{
		{Title: "Engineer", StartDate: "2022-06", EndDate: "2023-01"},
		{Title: "Developer", StartDate: "2020-01", EndDate: "2021-01"},
	}
	require.NoError(t, resumes.Create(ctx, r))

	service := screeningsrv.NewScreeningService(
		screeninginfra.NewMemoryScreeningRepository(), jobs, candidates, repoSource{repo: resumes}, screening.DefaultConfig(nil),
	)

	app := fiberx.NewApp("test", 1<<20)
	NewHandlers(service).RegisterRoutes(app)
	return app
}

func do(t *testing.T, app *fiber.App, method, url, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v), string(data))
}

func TestScreeningRoutes(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/screenings", `{"candidate_id":"c1","job_id":"j1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created screening.ScreeningResult
	decode(t, resp, &created)
	assert.True(t, created.Qualified)
	assert.Equal(t, kernel.ResumeID("r1"), created.ResumeID)

	resp = do(t, app, http.MethodGet, "/api/screenings/"+created.ID.String(), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/jobs/j1/screenings", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Results []screening.ScreeningResult `json:"results"`
		Total   int                         `json:"total"`
	}
	decode(t, resp, &list)
	assert.Equal(t, 1, list.Total)

	resp = do(t, app, http.MethodGet, "/api/candidates/c1/screenings", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/screenings/batch", `{"job_id":"j1","candidate_ids":["c1","ghost"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var batch screening.BatchScreenResponse
	decode(t, resp, &batch)
	assert.Len(t, batch.Results, 1)
	assert.Len(t, batch.Failed, 1)
}

func TestScreeningRoutes_Errors(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/screenings", `{"candidate_id":"c1","job_id":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/screenings", `{"job_id":"j1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/screenings/ghost", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/jobs/ghost/screenings", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResumeGapsRoute(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/resumes/r1/gaps", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var gaps screening.ResumeGapsResponse
	decode(t, resp, &gaps)
	assert.True(t, gaps.HasGaps)
	assert.Equal(t, 16, gaps.TotalGapMonths)
	assert.Equal(t, kernel.ResumeID("r1"), gaps.ResumeID)
}
