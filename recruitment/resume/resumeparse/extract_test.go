package resumeparse

import (
	"testing"

	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPersonalInfo(t *testing.T) {
	text := "John Smith\n" +
		"Senior Software Engineer\n" +
		"john.smith+jobs@example.co.uk | +1 (512) 555-0100\n" +
		"Austin, TX\n" +
		"linkedin.com/in/john-smith | https://github.com/jsmith | https://johnsmith.dev\n"

	seg := NewSegmenter(DefaultVocabulary()).Segment(text)
	info := extractPersonalInfo(seg, text)

	assert.Equal(t, "John", info.FirstName)
	assert.Equal(t, "Smith", info.LastName)
	assert.Equal(t, "john.smith+jobs@example.co.uk", info.Email)
	assert.Equal(t, "+1 (512) 555-0100", info.Phone)
	assert.Equal(t, "Austin, TX", info.Location)
	assert.Equal(t, "https://www.linkedin.com/in/john-smith", info.LinkedIn)
	assert.Equal(t, "https://www.github.com/jsmith", info.GitHub)
	assert.Equal(t, "https://johnsmith.dev", info.Portfolio)

	assert.Equal(t, "Senior Software Engineer", extractTitle(seg.Lines(SectionHeader)))
}

func TestExtractName_Fallback(t *testing.T) {
	tests := map[string][]string{
		"email first":  {"jane@x.com", "Jane Doe"},
		"phone first":  {"(555) 111-2222"},
		"single token": {"Madonna"},
		"empty":        nil,
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			first, last := extractName(header)
			assert.Equal(t, resume.UnknownFirstName, first)
			assert.Equal(t, resume.UnknownLastName, last)
		})
	}

	first, last := extractName([]string{"Mary Ann van der Berg"})
	assert.Equal(t, "Mary", first)
	assert.Equal(t, "Ann van der Berg", last)
}

func TestExtractTitle_Default(t *testing.T) {
	assert.Equal(t, "Professional", extractTitle([]string{"Jane Doe", "jane@x.com", "(555) 111-2222", ""}))
	assert.Equal(t, "Professional", extractTitle(nil))
}

func TestEstimateYears(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"largest mention", "I have 7+ years of experience and 3 yrs with Go", 7},
		{"ignores implausible", "60 years of tradition, 4 years hands on", 4},
		{"counts experience", "Experience\nexperience with X\nmore experience", 3},
		{"caps count", repeat("experience ", 20), 15},
		{"floor of one", "nothing relevant", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, estimateYears(tt.text))
		})
	}
}

func TestSplitList(t *testing.T) {
	lines := []string{
		"• Go • Python",
		"- Docker; Kubernetes | AWS",
		"Frontend: React, TypeScript, react",
		"",
		"CI/CD, Node.js",
	}

	assert.Equal(t,
		[]string{"Go", "Python", "Docker", "Kubernetes", "AWS", "React", "TypeScript", "CI/CD", "Node.js"},
		splitList(lines))
}

func TestExtractSkills_VocabularyFallback(t *testing.T) {
	text := "Jane Doe\nBuilt apps with react and Node.js on AWS. Good at golf."
	seg := NewSegmenter(DefaultVocabulary()).Segment(text)

	skills := extractSkills(seg, text, DefaultVocabulary())

	assert.ElementsMatch(t, []string{"React", "Node.js", "AWS"}, skills)
}

func TestExtractEducation(t *testing.T) {
	text := `Jane Doe
jane@x.com

Education
Bachelor of Science in Computer Science
Stanford University
Sep 2012 - Jun 2016

MIT
Master of Engineering, 2018

Dean's list`

	vocab := DefaultVocabulary()
	seg := NewSegmenter(vocab).Segment(text)
	edu := extractEducation(seg, vocab)

	require.Len(t, edu, 3)

	assert.Equal(t, resume.Education{
		Institution: "Stanford University",
		Degree:      "Bachelor of Science",
		Field:       "Computer Science",
		StartDate:   "Sep 2012",
		EndDate:     "Jun 2016",
	}, edu[0])

	assert.Equal(t, resume.Education{
		Institution: "MIT",
		Degree:      "Master",
		Field:       "Engineering",
		EndDate:     "2018",
	}, edu[1])

	// without keywords the first line is taken as the institution
	assert.Equal(t, "Dean's list", edu[2].Institution)
}

func TestExtractExperience(t *testing.T) {
	text := `Jane Doe
jane@x.com

Experience
Acme Corp - Senior Software Engineer
Jan 2020 - Present
- Built the billing platform
- Led a team of 4

Software Developer | Globex | Austin, TX
2017 - 2019
Maintained internal tools`

	vocab := DefaultVocabulary()
	seg := NewSegmenter(vocab).Segment(text)
	exp := extractExperience(seg, vocab)

	require.Len(t, exp, 2)

	assert.Equal(t, resume.Experience{
		Company:     "Acme Corp",
		Title:       "Senior Software Engineer",
		StartDate:   "Jan 2020",
		EndDate:     "Present",
		Current:     true,
		Description: "- Built the billing platform\n- Led a team of 4",
	}, exp[0])

	assert.Equal(t, resume.Experience{
		Company:     "Globex",
		Title:       "Software Developer",
		Location:    "Austin, TX",
		StartDate:   "2017",
		EndDate:     "2019",
		Description: "Maintained internal tools",
	}, exp[1])
}

func TestSplitEntries_WithoutBlankLines(t *testing.T) {
	lines := []string{
		"Acme Corp - Engineer",
		"2020 - 2022",
		"- Did things",
		"Globex - Developer",
		"2018 - 2020",
		"- Other things",
	}

	blocks := splitEntries(lines)

	require.Len(t, blocks, 2)
	assert.Equal(t, lines[:3], blocks[0])
	assert.Equal(t, lines[3:], blocks[1])
}

func TestExtractLanguagesAndCertifications(t *testing.T) {
	text := `Jane Doe

Languages
English (Native), Spanish - Fluent

Certifications
- AWS Certified Developer
- PMP`

	vocab := DefaultVocabulary()
	seg := NewSegmenter(vocab).Segment(text)

	assert.Equal(t, []string{"English", "Spanish"}, extractLanguages(seg, text, vocab))
	assert.Equal(t, []string{"AWS Certified Developer", "PMP"}, extractCertifications(seg, text, vocab))
}

func TestCountTerm(t *testing.T) {
	text := "Go, golang and GO services. Built C++ tools; go-to person. Google."

	assert.Equal(t, 3, CountTerm(text, "go"))
	assert.Equal(t, 1, CountTerm(text, "C++"))
	assert.Equal(t, 0, CountTerm(text, " "))
	assert.True(t, ContainsTerm(text, "golang"))
	assert.False(t, ContainsTerm(text, "oog"))
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
