package questionnaireapi

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
	"github.com/Abraxas-365/talentrelay/recruitment/candidate"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate/candidateinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/Abraxas-365/talentrelay/recruitment/job/jobinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire/questionnaireinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire/questionnairesrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	candidates := candidateinfra.NewMemoryCandidateRepository()
	require.NoError(t, candidates.Create(ctx, &candidate.Candidate{ID: "c1", FirstName: "Ana", CreatedAt: now}))
	jobs := jobinfra.NewMemoryJobRepository()
	require.NoError(t, jobs.Create(ctx, &job.Job{ID: "j1", Title: "Engineer", CreatedAt: now}))

	service := questionnairesrv.NewQuestionnaireService(questionnaireinfra.NewMemoryResponseRepository(), candidates, jobs)
	app := fiberx.NewApp("test", 1<<20)
	NewQuestionnaireHandlers(service).RegisterRoutes(app)
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

func TestQuestionnaireRoutes(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/questionnaires/responses",
		`{"candidate_id":"c1","job_id":"j1","draft":true,"answers":[{"question_id":"q1","value":"yes","points":2,"max_points":2}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var created questionnaire.Response
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, questionnaire.ResponseStatusDraft, created.Status)

	resp = do(t, app, http.MethodGet, "/api/questionnaires/responses/score?candidate_id=c1&job_id=j1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/questionnaires/responses/"+created.ID.String()+"/submit", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/questionnaires/responses/score?candidate_id=c1&job_id=j1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var score questionnaire.CandidateScore
	data, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &score))
	assert.InDelta(t, 100, score.Score, 1e-9)

	resp = do(t, app, http.MethodGet, "/api/questionnaires/responses?job_id=j1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/questionnaires/responses", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/questionnaires/responses", `{"candidate_id":"c1","job_id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
