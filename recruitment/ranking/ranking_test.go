package ranking

import (
	"math"
	"testing"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/screening"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scores struct {
	skill, experience, education float64
	missing                      bool
	years                        float64
	gapMonths                    int
}

func input(id string, s scores, questionnaire *float64) Input {
	r := screening.ScreeningResult{
		ID:          kernel.ScreeningID("s-" + id),
		CandidateID: kernel.CandidateID(id),
	}
	r.SkillMatch.Score = s.skill
	if s.missing {
		r.SkillMatch.MissingSkills = []string{"Kubernetes"}
	}
	r.ExperienceMatch.Score = s.experience
	r.ExperienceMatch.RelevantYears = s.years
	r.EducationMatch.Score = s.education
	r.GapAnalysis.TotalGapMonths = s.gapMonths
	return Input{Screening: r, QuestionnaireScore: questionnaire}
}

func ptr(v float64) *float64 { return &v }

func order(ranked []RankedCandidate) []kernel.CandidateID {
	ids := make([]kernel.CandidateID, len(ranked))
	for i, r := range ranked {
		ids[i] = r.CandidateID
	}
	return ids
}

func TestRank_SkillsOnlyWeights(t *testing.T) {
	inputs := []Input{
		input("a", scores{skill: 50, experience: 100, education: 100, missing: true, years: 5}, ptr(100)),
		input("b", scores{skill: 90, experience: 0, education: 50, missing: true, years: 5}, nil),
		input("c", scores{skill: 70, experience: 20, education: 50, missing: true, years: 5}, ptr(10)),
	}

	ranked := Rank(inputs, Weights{Skills: 1}, DefaultConfig())

	assert.Equal(t, []kernel.CandidateID{"b", "c", "a"}, order(ranked))
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
	assert.InDelta(t, 0.85, ranked[0].OverallFit, 1e-9)
}

func TestRank_SkillsOnlyWeightsStillPenalizeFlags(t *testing.T) {
	inputs := []Input{
		input("a", scores{skill: 80, missing: true, years: 1}, nil),
		input("b", scores{skill: 78, missing: true, years: 5}, nil),
	}

	ranked := Rank(inputs, Weights{Skills: 1}, DefaultConfig())

	assert.Equal(t, []kernel.CandidateID{"b", "a"}, order(ranked))
	assert.InDelta(t, 0.73, ranked[0].OverallFit, 1e-9)
	assert.InDelta(t, 0.70, ranked[1].OverallFit, 1e-9)
	assert.Equal(t, []string{FlagMissingSkills, FlagLowExperience}, ranked[1].Flags)
}

func TestRank_RenormalizesWithoutQuestionnaire(t *testing.T) {
	s := scores{skill: 100, experience: 100, education: 50, years: 5}

	without := Rank([]Input{input("a", s, nil)}, DefaultWeights(), DefaultConfig())
	with := Rank([]Input{input("a", s, ptr(100))}, DefaultWeights(), DefaultConfig())

	assert.InDelta(t, 0.8/0.9, without[0].OverallFit, 1e-4)
	assert.Nil(t, without[0].Breakdown.Questionnaire)
	assert.InDelta(t, 0.9, with[0].OverallFit, 1e-9)
	require.NotNil(t, with[0].Breakdown.Questionnaire)
	assert.Equal(t, 1.0, *with[0].Breakdown.Questionnaire)
}

func TestRank_Penalties(t *testing.T) {
	perfect := scores{skill: 100, experience: 100, education: 100, years: 5}
	flagged := scores{skill: 100, experience: 100, education: 100, missing: true, years: 1, gapMonths: 7}

	ranked := Rank([]Input{input("flagged", flagged, nil), input("perfect", perfect, nil)}, DefaultWeights(), DefaultConfig())

	assert.Equal(t, []kernel.CandidateID{"perfect", "flagged"}, order(ranked))
	assert.Empty(t, ranked[0].Flags)
	assert.Equal(t, []string{FlagMissingSkills, FlagEmploymentGap, FlagLowExperience}, ranked[1].Flags)
	assert.InDelta(t, 0.85, ranked[1].OverallFit, 1e-9)

	t.Run("six gap months is not flagged", func(t *testing.T) {
		r := input("x", scores{years: 5, gapMonths: 6}, nil).Screening
		assert.NotContains(t, Flags(&r, DefaultConfig()), FlagEmploymentGap)
	})

	t.Run("fit never drops below zero", func(t *testing.T) {
		ranked := Rank([]Input{input("zero", scores{missing: true, gapMonths: 12}, nil)}, DefaultWeights(), DefaultConfig())
		assert.Zero(t, ranked[0].OverallFit)
	})
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	same := scores{skill: 80, experience: 60, education: 100, missing: true, years: 3}
	inputs := []Input{input("first", same, nil), input("second", same, nil), input("third", same, nil)}

	ranked := Rank(inputs, DefaultWeights(), DefaultConfig())
	assert.Equal(t, []kernel.CandidateID{"first", "second", "third"}, order(ranked))
}

func TestRank_Idempotent(t *testing.T) {
	inputs := []Input{
		input("a", scores{skill: 40, experience: 80, education: 50, missing: true, years: 4}, ptr(70)),
		input("b", scores{skill: 100, experience: 20, education: 100, years: 1}, nil),
		input("c", scores{skill: 66.67, experience: 60, education: 50, missing: true, years: 3, gapMonths: 16}, ptr(90)),
	}

	first := Rank(inputs, DefaultWeights(), DefaultConfig())
	second := Rank(inputs, DefaultWeights(), DefaultConfig())
	assert.Equal(t, first, second)
}

func TestRank_Empty(t *testing.T) {
	ranked := Rank(nil, DefaultWeights(), DefaultConfig())
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		valid   bool
	}{
		{name: "defaults", weights: DefaultWeights(), valid: true},
		{name: "single factor", weights: Weights{Skills: 1}, valid: true},
		{name: "unnormalized", weights: Weights{Skills: 2, Experience: 2}, valid: true},
		{name: "all zero", weights: Weights{}},
		{name: "negative", weights: Weights{Skills: 1, Education: -0.1}},
		{name: "nan", weights: Weights{Skills: math.NaN()}},
		{name: "infinite", weights: Weights{Experience: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errx.IsCode(err, CodeInvalidWeights))
		})
	}
}

func TestFit_NoWeightPresent(t *testing.T) {
	assert.Zero(t, Fit(Breakdown{Skills: 1}, Weights{Questionnaire: 1}))
}
