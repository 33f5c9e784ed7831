package ranking

import (
	"math"
	"sort"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/screening"
)

// Flags raised against a candidate, each costing PenaltyPerFlag
const (
	FlagMissingSkills = "missing_required_skills"
	FlagEmploymentGap = "employment_gap"
	FlagLowExperience = "low_experience"
)

// Weights controls how much each factor contributes to the fit score
type Weights struct {
	Skills        float64 `json:"skillsWeight"`
	Experience    float64 `json:"experienceWeight"`
	Education     float64 `json:"educationWeight"`
	Questionnaire float64 `json:"questionnaireWeight"`
}

// DefaultWeights is 0.4 skills, 0.3 experience, 0.2 education, 0.1 questionnaire
func DefaultWeights() Weights {
	return Weights{Skills: 0.4, Experience: 0.3, Education: 0.2, Questionnaire: 0.1}
}

// Validate requires finite, non-negative weights with a positive sum
func (w Weights) Validate() error {
	sum := 0.0
	fields := []struct {
		name  string
		value float64
	}{
		{"skillsWeight", w.Skills},
		{"experienceWeight", w.Experience},
		{"educationWeight", w.Education},
		{"questionnaireWeight", w.Questionnaire},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return ErrInvalidWeights().WithDetail("field", f.name)
		}
		sum += f.value
	}
	if sum <= 0 {
		return ErrInvalidWeights().WithDetail("message", "weights must not all be zero")
	}
	return nil
}

// Config holds the penalty rules
type Config struct {
	PenaltyPerFlag   float64
	MaxGapMonths     int
	MinRelevantYears float64
}

func DefaultConfig() Config {
	return Config{
		PenaltyPerFlag:   0.05,
		MaxGapMonths:     6,
		MinRelevantYears: 2,
	}
}

// Input is one screened candidate, with the questionnaire score when one was submitted
type Input struct {
	Screening          screening.ScreeningResult
	QuestionnaireScore *float64
}

// Breakdown holds each factor as a fraction in [0,1]. Questionnaire is nil
// when the candidate has no submitted response.
type Breakdown struct {
	Skills        float64  `json:"skills"`
	Experience    float64  `json:"experience"`
	Education     float64  `json:"education"`
	Questionnaire *float64 `json:"questionnaire"`
}

// RankedCandidate is a candidate's position in a job's ranking
type RankedCandidate struct {
	CandidateID kernel.CandidateID `json:"candidate_id"`
	ScreeningID kernel.ScreeningID `json:"screening_id"`
	Rank        int                `json:"rank"`
	OverallFit  float64            `json:"overall_fit"`
	Breakdown   Breakdown          `json:"breakdown"`
	Flags       []string           `json:"flags"`
	Qualified   bool               `json:"qualified"`
}

// Rank orders candidates by fit, best first. Equal fits keep input order and
// ranks are 1-based positions. Weights are assumed valid.
func Rank(inputs []Input, w Weights, cfg Config) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(inputs))
	for _, in := range inputs {
		s := in.Screening
		b := Breakdown{
			Skills:     s.SkillMatch.Score / 100,
			Experience: s.ExperienceMatch.Score / 100,
			Education:  s.EducationMatch.Score / 100,
		}
		if in.QuestionnaireScore != nil {
			q := *in.QuestionnaireScore / 100
			b.Questionnaire = &q
		}

		flags := Flags(&s, cfg)
		fit := Fit(b, w) - cfg.PenaltyPerFlag*float64(len(flags))

		ranked = append(ranked, RankedCandidate{
			CandidateID: s.CandidateID,
			ScreeningID: s.ID,
			OverallFit:  round4(math.Max(0, fit)),
			Breakdown:   b,
			Flags:       flags,
			Qualified:   s.Qualified,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallFit > ranked[j].OverallFit
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Fit is the weighted mean of the factors present. Without a questionnaire
// score its weight drops out and the others are renormalized.
func Fit(b Breakdown, w Weights) float64 {
	sum := b.Skills*w.Skills + b.Experience*w.Experience + b.Education*w.Education
	total := w.Skills + w.Experience + w.Education
	if b.Questionnaire != nil {
		sum += *b.Questionnaire * w.Questionnaire
		total += w.Questionnaire
	}
	if total <= 0 {
		return 0
	}
	return sum / total
}

// Flags lists the warnings raised by a screening result
func Flags(s *screening.ScreeningResult, cfg Config) []string {
	flags := []string{}
	if s.MissingRequiredSkills() {
		flags = append(flags, FlagMissingSkills)
	}
	if s.GapAnalysis.TotalGapMonths > cfg.MaxGapMonths {
		flags = append(flags, FlagEmploymentGap)
	}
	if s.ExperienceMatch.RelevantYears < cfg.MinRelevantYears {
		flags = append(flags, FlagLowExperience)
	}
	return flags
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
