package duplicate

import (
	"testing"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	t.Run("email alone", func(t *testing.T) {
		s := Compare(
			Profile{CandidateID: "a", Email: "Jane@Example.com"},
			Profile{CandidateID: "b", Email: " jane@example.com"},
		)
		assert.Equal(t, 1.0, s.Email)
		assert.GreaterOrEqual(t, s.Total, 0.30)
	})

	t.Run("email phone and name is a duplicate", func(t *testing.T) {
		a := Profile{CandidateID: "a", Email: "jane@x.com", Phone: "(555) 111-2222", Name: "Jane Doe"}
		b := Profile{CandidateID: "b", Email: "jane@x.com", Phone: "555.111.2222", Name: "Jane Doe"}

		s := Compare(a, b)
		assert.Equal(t, 1.0, s.Phone)
		assert.Equal(t, 1.0, s.Name)
		assert.Greater(t, s.Total, DefaultThreshold)
	})

	t.Run("missing signals contribute nothing", func(t *testing.T) {
		s := Compare(Profile{CandidateID: "a"}, Profile{CandidateID: "b"})
		assert.Zero(t, s.Total)
	})

	t.Run("accents are folded", func(t *testing.T) {
		s := Compare(Profile{Name: "José  García"}, Profile{Name: "jose garcia"})
		assert.Equal(t, 1.0, s.Name)
	})

	t.Run("recent role", func(t *testing.T) {
		s := Compare(
			Profile{RecentTitle: "Backend Engineer", RecentFirm: "Acme"},
			Profile{RecentTitle: "backend engineer", RecentFirm: "ACME"},
		)
		assert.Equal(t, 1.0, s.RecentRole)
		assert.InDelta(t, RecentRoleWeight, s.Total, 1e-9)
	})
}

func TestLevenshteinSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, LevenshteinSimilarity("", ""))
	assert.Equal(t, 0.0, LevenshteinSimilarity("abc", ""))
	assert.InDelta(t, 1-3.0/7.0, LevenshteinSimilarity("kitten", "sitting"), 1e-9)
}

func TestSkillOverlap(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, SkillOverlap([]string{"Go", "Docker"}, []string{"go", "SQL"}), 1e-9)
	assert.Equal(t, 1.0, SkillOverlap([]string{"Go"}, []string{" GO "}))
	assert.Zero(t, SkillOverlap(nil, []string{"Go"}))
}

func TestProfileFromResume(t *testing.T) {
	r := &resume.ParsedResume{ID: "r1"}
	r.AssignCandidate("c1")
	r.Data.PersonalInfo = resume.PersonalInfo{FirstName: resume.UnknownFirstName, LastName: resume.UnknownLastName, Email: "x@y.com"}
	r.Data.Experience = []resume.Experience{{Title: "Engineer", Company: "Acme"}, {Title: "Intern"}}

	p := ProfileFromResume(r)
	assert.Equal(t, kernel.CandidateID("c1"), p.CandidateID)
	assert.Empty(t, p.Name)
	assert.Equal(t, "Engineer", p.RecentTitle)
	assert.Equal(t, "Acme", p.RecentFirm)
}

func TestClusters_Transitive(t *testing.T) {
	profiles := []Profile{{CandidateID: "a"}, {CandidateID: "b"}, {CandidateID: "c"}, {CandidateID: "d"}}
	matches := []Match{
		{A: "a", B: "b", Similarity: Similarity{Total: 0.9}},
		{A: "b", B: "c", Similarity: Similarity{Total: 0.8}},
	}

	clusters := Clusters(profiles, matches)

	require.Len(t, clusters, 1)
	assert.Equal(t, kernel.CandidateID("a"), clusters[0].CandidateID)
	assert.Equal(t, []kernel.CandidateID{"b", "c"}, clusters[0].Duplicates)
	assert.InDelta(t, 0.85, clusters[0].AverageScore, 1e-9)
	assert.Len(t, clusters[0].Matches, 2)
}

func TestDetect(t *testing.T) {
	profiles := []Profile{
		{CandidateID: "c1", Email: "jane@x.com", Phone: "555-111-2222", Name: "Jane Doe"},
		{CandidateID: "c2", Email: "bob@x.com", Phone: "555-999-0000", Name: "Bob Stone"},
		{CandidateID: "c3", Email: "JANE@x.com", Phone: "5551112222", Name: "Jane Doe"},
	}

	clusters := Detect(profiles, DefaultConfig())
	require.Len(t, clusters, 1)
	assert.Equal(t, kernel.CandidateID("c1"), clusters[0].CandidateID)
	assert.Equal(t, []kernel.CandidateID{"c3"}, clusters[0].Duplicates)

	assert.Empty(t, Detect(profiles, Config{Threshold: 1}))
	assert.Empty(t, Detect(nil, DefaultConfig()))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{Threshold: 1}.Validate())
	assert.True(t, errx.IsCode(Config{Threshold: 0}.Validate(), CodeInvalidThreshold))
	assert.True(t, errx.IsCode(Config{Threshold: 1.5}.Validate(), CodeInvalidThreshold))
}
