package duplicatesrv

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/duplicate"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoSource struct {
	repo *resumeinfra.MemoryResumeRepository
}

func (s repoSource) ListAll(ctx context.Context) ([]*resume.ParsedResume, error) {
	return s.repo.ListAll(ctx)
}

func (s repoSource) GetLatestForCandidate(ctx context.Context, candidateID kernel.CandidateID) (*resume.ParsedResume, error) {
	return s.repo.GetLatestByCandidateID(ctx, candidateID)
}

func newService(t *testing.T) *DuplicateService {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := resumeinfra.NewMemoryResumeRepository()

	add := func(id kernel.ResumeID, owner kernel.CandidateID, uploaded time.Time, info resume.PersonalInfo) {
		r := &resume.ParsedResume{ID: id, Status: resume.StatusProcessed, UploadDate: uploaded}
		if owner != "" {
			r.AssignCandidate(owner)
		}
		r.Data.PersonalInfo = info
		require.NoError(t, repo.Create(ctx, r))
	}

	jane := resume.PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Phone: "555-111-2222"}
	add("r1", "c1", base, jane)
	add("r2", "c2", base, resume.PersonalInfo{FirstName: "Bob", LastName: "Stone", Email: "bob@x.com"})
	add("r3", "c3", base, jane)
	// c2's newer resume uses Jane's details
	add("r4", "c2", base.Add(time.Hour), jane)
	// unlinked resumes are ignored
	add("r5", "", base, jane)

	return NewDuplicateService(repoSource{repo: repo}, duplicate.DefaultConfig())
}

func TestFindDuplicates(t *testing.T) {
	resp, err := newService(t).FindDuplicates(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.CandidatesScanned)
	require.Len(t, resp.Clusters, 1)
	assert.Equal(t, kernel.CandidateID("c1"), resp.Clusters[0].CandidateID)
	assert.Equal(t, []kernel.CandidateID{"c2", "c3"}, resp.Clusters[0].Duplicates)
	assert.Equal(t, duplicate.DefaultThreshold, resp.Threshold)
}

func TestFindDuplicates_Threshold(t *testing.T) {
	s := newService(t)

	strict := 0.99
	resp, err := s.FindDuplicates(context.Background(), &strict)
	require.NoError(t, err)
	assert.Empty(t, resp.Clusters)

	invalid := 0.0
	_, err = s.FindDuplicates(context.Background(), &invalid)
	assert.True(t, errx.IsCode(err, duplicate.CodeInvalidThreshold))
}

func TestCompare(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	resp, err := s.Compare(ctx, "c1", "c3")
	require.NoError(t, err)
	assert.True(t, resp.IsDuplicate)
	assert.Equal(t, 1.0, resp.Similarity.Email)

	_, err = s.Compare(ctx, "c1", "c1")
	assert.True(t, errx.IsCode(err, duplicate.CodeInvalidRequest))

	_, err = s.Compare(ctx, "c1", "ghost")
	assert.True(t, errx.IsCode(err, resume.CodeResumeNotFound))
}
