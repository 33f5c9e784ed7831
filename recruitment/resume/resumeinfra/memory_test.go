package resumeinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResumeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResumeRepository()
	owner := kernel.NewCandidateID("c1")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []kernel.ResumeID{"r1", "r2", "r3"} {
		model := &resume.ParsedResume{ID: id, UploadDate: base.Add(time.Duration(i) * time.Hour)}
		if id != "r2" {
			model.AssignCandidate(owner)
		}
		require.NoError(t, repo.Create(ctx, model))
	}

	err := repo.Create(ctx, &resume.ParsedResume{ID: "r1"})
	assert.True(t, errx.IsCode(err, resume.CodeResumeAlreadyExists))

	owned, err := repo.ListByCandidateID(ctx, owner)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, kernel.ResumeID("r1"), owned[0].ID)

	latest, err := repo.GetLatestByCandidateID(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, kernel.ResumeID("r3"), latest.ID)

	_, err = repo.GetLatestByCandidateID(ctx, "nobody")
	assert.True(t, errx.IsCode(err, resume.CodeResumeNotFound))

	require.NoError(t, repo.AssignCandidate(ctx, "r2", owner))
	latest, err = repo.GetLatestByCandidateID(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, kernel.ResumeID("r3"), latest.ID)

	page, err := repo.List(ctx, kernel.PaginationOptions{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Page.Total)
	assert.Equal(t, 2, page.Page.TotalPages)
}

func TestMemoryParseQueue_Defer(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryParseQueue()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return now }

	job := &resume.ProcessingJob{ID: "j1", FileName: "cv.txt"}
	require.NoError(t, q.Defer(ctx, job, time.Minute))
	job.FileName = "changed.txt"

	moved, err := q.PromoteDue(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved)

	now = now.Add(2 * time.Minute)
	moved, err = q.PromoteDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, resume.QueueStats{Ready: 1, Delayed: 0}, stats)

	got, err := q.Pop(ctx, time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, kernel.ProcessingJobID("j1"), got.ID)
	assert.Equal(t, "cv.txt", got.FileName)

	got, err = q.Pop(ctx, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryParseQueue_PopWakesOnPush(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryParseQueue()

	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = q.Push(ctx, &resume.ProcessingJob{ID: "late"})
	}()

	got, err := q.Pop(ctx, 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, kernel.ProcessingJobID("late"), got.ID)
}

func TestMemoryJobRepository_Transitions(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()

	job := &resume.ProcessingJob{ID: "job-1", Status: resume.JobStatusPending, MaxAttempts: 3}
	require.NoError(t, repo.Create(ctx, job))

	require.NoError(t, repo.MarkAsProcessing(ctx, "job-1"))
	assert.Error(t, repo.MarkAsProcessing(ctx, "job-1"))

	require.NoError(t, repo.UpdateProgress(ctx, "job-1", resume.StepParsing, 50))
	got, err := repo.GetByID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusProcessing, got.Status)
	assert.Equal(t, resume.StepParsing, *got.CurrentStep)
	assert.NotNil(t, got.StartedAt)

	require.NoError(t, repo.MarkAsCompleted(ctx, "job-1", "resume-1"))
	got, err = repo.GetByID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusCompleted, got.Status)
	assert.Equal(t, kernel.ResumeID("resume-1"), *got.ResumeID)
	assert.Equal(t, 100, got.ProgressPercentage)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errx.IsCode(err, resume.CodeJobNotFound))

	err = repo.Update(ctx, &resume.ProcessingJob{ID: "missing"})
	assert.True(t, errx.IsCode(err, resume.CodeJobNotFound))
}
