package jobsrv

import (
	"context"
	"testing"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/Abraxas-365/talentrelay/recruitment/job/jobinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *JobService {
	return NewJobService(jobinfra.NewMemoryJobRepository())
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	s := newService()

	created, err := s.CreateJob(ctx, job.CreateJobRequest{
		Title:          "Backend Engineer",
		RequiredSkills: []string{" Go ", "go", "", "PostgreSQL"},
	})
	require.NoError(t, err)

	assert.Equal(t, job.JobStatusDraft, created.Status)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, created.RequiredSkills)
	assert.Empty(t, created.PreferredSkills)

	got, err := s.GetJobByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
}

func TestCreateJob_PublishAndValidation(t *testing.T) {
	ctx := context.Background()
	s := newService()

	published, err := s.CreateJob(ctx, job.CreateJobRequest{Title: "SRE", Publish: true})
	require.NoError(t, err)
	assert.True(t, published.IsPublished())
	assert.NotNil(t, published.PublishedAt)

	_, err = s.CreateJob(ctx, job.CreateJobRequest{Title: "   "})
	assert.True(t, errx.IsCode(err, job.CodeInvalidJob))
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newService()

	created, err := s.CreateJob(ctx, job.CreateJobRequest{Title: "Data Engineer"})
	require.NoError(t, err)

	_, err = s.PublishJob(ctx, created.ID)
	require.NoError(t, err)

	_, err = s.PublishJob(ctx, created.ID)
	assert.True(t, errx.IsCode(err, job.CodeJobAlreadyPublished))

	closed, err := s.CloseJob(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed())

	archived, err := s.ArchiveJob(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, archived.ArchivedAt)

	title := kernel.JobTitle("Renamed")
	_, err = s.UpdateJob(ctx, created.ID, job.UpdateJobRequest{Title: &title})
	assert.True(t, errx.IsCode(err, job.CodeJobArchived))

	restored, err := s.UnarchiveJob(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsDraft())

	skills := []string{"Python", "Spark"}
	updated, err := s.UpdateJob(ctx, created.ID, job.UpdateJobRequest{Title: &title, RequiredSkills: &skills})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, skills, updated.RequiredSkills)
}

func TestListJobs_StatusFilter(t *testing.T) {
	ctx := context.Background()
	s := newService()

	_, err := s.CreateJob(ctx, job.CreateJobRequest{Title: "A", Publish: true})
	require.NoError(t, err)
	_, err = s.CreateJob(ctx, job.CreateJobRequest{Title: "B"})
	require.NoError(t, err)

	all, err := s.ListJobs(ctx, job.ListJobsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)

	status := job.JobStatusPublished
	published, err := s.ListJobs(ctx, job.ListJobsRequest{Status: &status})
	require.NoError(t, err)
	require.Len(t, published.Items, 1)
	assert.Equal(t, kernel.JobTitle("A"), published.Items[0].Title)
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()
	s := newService()

	created, err := s.CreateJob(ctx, job.CreateJobRequest{Title: "Temp"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteJob(ctx, created.ID))

	_, err = s.GetJobByID(ctx, created.ID)
	assert.True(t, errx.IsCode(err, job.CodeJobNotFound))
	assert.True(t, errx.IsCode(s.DeleteJob(ctx, created.ID), job.CodeJobNotFound))
}
