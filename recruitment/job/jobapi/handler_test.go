package jobapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/talentrelay/pkg/fiberx"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/Abraxas-365/talentrelay/recruitment/job/jobinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiberx.NewApp("test", 1<<20)
	NewHandlers(jobsrv.NewJobService(jobinfra.NewMemoryJobRepository())).RegisterRoutes(app)
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

func TestJobRoutes(t *testing.T) {
	app := newTestApp()

	resp := do(t, app, http.MethodPost, "/api/jobs", `{"job_title":"Go Developer","required_skills":["Go","Docker"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created job.Job
	decode(t, resp, &created)
	assert.Equal(t, []string{"Go", "Docker"}, created.RequiredSkills)

	resp = do(t, app, http.MethodPost, "/api/jobs/"+created.ID.String()+"/publish", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/jobs/"+created.ID.String()+"/publish", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/jobs?status=published", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page job.PaginatedJobsResponse
	decode(t, resp, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)

	resp = do(t, app, http.MethodPut, "/api/jobs/"+created.ID.String(), `{"preferred_skills":["Kubernetes"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated job.Job
	decode(t, resp, &updated)
	assert.Equal(t, []string{"Kubernetes"}, updated.PreferredSkills)

	resp = do(t, app, http.MethodDelete, "/api/jobs/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/jobs/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateJob_Invalid(t *testing.T) {
	app := newTestApp()

	resp := do(t, app, http.MethodPost, "/api/jobs", `{"job_title":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
