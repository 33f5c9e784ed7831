package screening

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeparse"
)

// Evaluate scores a parsed resume against a job. It never fails: missing data
// gives low scores. The caller fills in identity and timestamps.
func Evaluate(j *job.Job, r *resume.ParsedResume, cfg Config) ScreeningResult {
	now := cfg.CurrentTime()

	skills := MatchSkills(j.RequiredSkills, j.PreferredSkills, r)
	experience := MatchExperience(r.Data.Experience, cfg.RelevantRoles, now)
	education := MatchEducation(r.Data.Education, cfg.RelevantFields)
	keywords := MatchKeywords(j.Keywords(), r.RawText)
	gaps := DetectGaps(r.Data.Experience, now)

	result := ScreeningResult{
		ResumeID:        r.ID,
		SkillMatch:      skills,
		ExperienceMatch: experience,
		EducationMatch:  education,
		KeywordMatch:    keywords,
		OverallScore:    OverallScore(skills.Score, experience.Score, education.Score),
		GapAnalysis:     gaps,
		Qualified:       skills.Score >= cfg.QualifiedThreshold,
	}
	result.Notes = notes(&result, len(j.RequiredSkills))
	return result
}

// OverallScore is the rounded mean of the skill, experience and education scores
func OverallScore(skill, experience, education float64) float64 {
	return math.Round((skill + experience + education) / 3)
}

// MatchSkills compares required skills to the resume skills case-insensitively.
// A job without required skills scores 100.
func MatchSkills(required, preferred []string, r *resume.ParsedResume) SkillMatch {
	m := SkillMatch{
		FoundSkills:     []string{},
		MissingSkills:   []string{},
		PreferredSkills: []string{},
	}

	required = job.CleanSkills(required)
	for _, s := range required {
		if r.HasSkill(s) {
			m.FoundSkills = append(m.FoundSkills, s)
		} else {
			m.MissingSkills = append(m.MissingSkills, s)
		}
	}
	for _, s := range job.CleanSkills(preferred) {
		if r.HasSkill(s) {
			m.PreferredSkills = append(m.PreferredSkills, s)
		}
	}

	if len(required) == 0 {
		m.Score = 100
		return m
	}
	m.Score = round2(100 * float64(len(m.FoundSkills)) / float64(len(required)))
	return m
}

// MatchExperience sums the years of entries whose title contains a relevant
// role keyword. Entries without readable dates count DefaultRoleYears.
func MatchExperience(entries []resume.Experience, relevantRoles []string, now time.Time) ExperienceMatch {
	m := ExperienceMatch{
		RelevantCompanies: []string{},
		RelevantRoles:     []string{},
	}

	for _, e := range entries {
		if !containsAny(e.Title, relevantRoles) {
			continue
		}
		m.RelevantYears += entryYears(e, now)
		m.RelevantRoles = append(m.RelevantRoles, e.Title)
		if e.Company != "" {
			m.RelevantCompanies = append(m.RelevantCompanies, e.Company)
		}
	}

	m.RelevantYears = math.Round(m.RelevantYears*10) / 10
	m.Score = math.Min(100, round2(m.RelevantYears*PointsPerYear))
	return m
}

// entryYears counts both the start and end month as worked, the same reading
// DetectGaps uses, so Jan 2020 - Dec 2020 is a full year.
func entryYears(e resume.Experience, now time.Time) float64 {
	p, ok := toPeriod(e, now)
	if !ok {
		return DefaultRoleYears
	}
	return float64(workedMonths(p)) / 12
}

// MatchEducation gives full score when a degree or its field mentions a relevant field
func MatchEducation(entries []resume.Education, relevantFields []string) EducationMatch {
	m := EducationMatch{Score: OtherEducationScore, RelevantDegrees: []string{}}
	for _, e := range entries {
		if containsAny(e.Field, relevantFields) || containsAny(e.Degree, relevantFields) {
			m.RelevantDegrees = append(m.RelevantDegrees, strings.TrimSpace(e.Degree+" "+e.Field))
		}
	}
	if len(m.RelevantDegrees) > 0 {
		m.Score = RelevantEducationScore
	}
	return m
}

// MatchKeywords counts each keyword in the raw text. A job without keywords scores 100.
func MatchKeywords(keywords []string, rawText string) KeywordMatch {
	m := KeywordMatch{MatchedKeywords: map[string]int{}, TotalKeywords: len(keywords)}
	for _, kw := range keywords {
		if n := resumeparse.CountTerm(rawText, kw); n > 0 {
			m.MatchedKeywords[kw] = n
		}
	}
	if len(keywords) == 0 {
		m.Score = 100
		return m
	}
	m.Score = round2(100 * float64(len(m.MatchedKeywords)) / float64(len(keywords)))
	return m
}

func notes(r *ScreeningResult, required int) string {
	parts := []string{
		fmt.Sprintf("Matched %d/%d required skills", len(r.SkillMatch.FoundSkills), required),
		fmt.Sprintf("%.1f years in relevant roles", r.ExperienceMatch.RelevantYears),
	}
	if r.GapAnalysis.HasGaps {
		parts = append(parts, fmt.Sprintf("%d employment gap(s) totaling %d months",
			len(r.GapAnalysis.GapPeriods), r.GapAnalysis.TotalGapMonths))
	}
	if r.Qualified {
		parts = append(parts, "qualified")
	} else {
		parts = append(parts, "not qualified")
	}
	return strings.Join(parts, "; ")
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
