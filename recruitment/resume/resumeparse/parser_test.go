package resumeparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_ShortResume(t *testing.T) {
	text := "Jane Doe\njane@x.com\n(555) 111-2222\n\nSkills\nReact, TypeScript\n\nEducation\nBSc Computer Science, ABC University 2015 - 2019"

	res := NewParser(nil).Parse(text)
	data := res.Data

	assert.Equal(t, "Jane", data.PersonalInfo.FirstName)
	assert.Equal(t, "Doe", data.PersonalInfo.LastName)
	assert.Equal(t, "jane@x.com", data.PersonalInfo.Email)
	assert.Equal(t, "(555) 111-2222", data.PersonalInfo.Phone)
	assert.ElementsMatch(t, []string{"React", "TypeScript"}, data.ProfessionalInfo.Skills)
	assert.Equal(t, "Professional", data.ProfessionalInfo.Title)

	require.Len(t, data.Education, 1)
	assert.Contains(t, data.Education[0].Degree, "BSc")
	assert.Contains(t, data.Education[0].Field, "Computer Science")
	assert.Equal(t, "ABC University", data.Education[0].Institution)
	assert.Equal(t, "2015", data.Education[0].StartDate)
	assert.Equal(t, "2019", data.Education[0].EndDate)

	assert.Empty(t, data.Experience)
	assert.Greater(t, res.Confidence.Overall, 0.0)
	assert.InDelta(t, 0.48, res.Confidence.Overall, 1e-9)
}

func TestParser_Parse_FullResume(t *testing.T) {
	text := `John Smith
Backend Engineer
john@example.com | (512) 555-0100
Austin, TX

Summary
Backend engineer with 8 years of experience shipping payment systems.

Experience
Acme Corp - Senior Backend Engineer
Jan 2020 - Present
- Owns the ledger service

Globex - Software Developer
Mar 2016 - Dec 2019
- Built reporting

Skills
Go, PostgreSQL, Redis, Docker, Kubernetes

Education
BSc Computer Science, State University 2012 - 2016

Languages
English, Spanish`

	res := NewParser(nil).Parse(text)
	data := res.Data

	assert.Equal(t, "Backend Engineer", data.ProfessionalInfo.Title)
	assert.Equal(t, "Backend engineer with 8 years of experience shipping payment systems.", data.ProfessionalInfo.Summary)
	assert.Equal(t, 8, data.ProfessionalInfo.YearsOfExperience)
	assert.Equal(t, "Acme Corp", data.ProfessionalInfo.CurrentEmployer)
	assert.Len(t, data.ProfessionalInfo.Skills, 5)
	assert.Len(t, data.Experience, 2)
	assert.Equal(t, []string{"English", "Spanish"}, data.Languages)
	assert.Empty(t, data.Certifications)

	assert.Equal(t, 1.0, res.Confidence.Contact)
	assert.Equal(t, 1.0, res.Confidence.Skills)
	assert.InDelta(t, 0.5, res.Confidence.Education, 1e-9)
	assert.InDelta(t, 2.0/3.0, res.Confidence.Experience, 1e-9)
}

func TestParser_Parse_NeverFails(t *testing.T) {
	for _, text := range []string{"", "   \n\n", "@@@@", "1234567890"} {
		res := NewParser(nil).Parse(text)

		assert.GreaterOrEqual(t, res.Confidence.Overall, 0.0)
		assert.LessOrEqual(t, res.Confidence.Overall, 1.0)
		assert.NotNil(t, res.Data.Education)
		assert.NotNil(t, res.Data.Experience)
	}
}

func TestParser_EmailAnywhere(t *testing.T) {
	text := "Some Person\nline\nline\nline\nline\nline\nreach me at some.person@mail.example.org thanks"

	res := NewParser(nil).Parse(text)

	assert.Equal(t, "some.person@mail.example.org", res.Data.PersonalInfo.Email)
}

func TestScore_Monotonic(t *testing.T) {
	var data resume.ParsedData
	prev := Score(data).Overall
	assert.Equal(t, 0.0, prev)

	steps := []func(){
		func() { data.PersonalInfo.FirstName, data.PersonalInfo.LastName = "Jane", "Doe" },
		func() { data.PersonalInfo.Email = "jane@x.com" },
		func() { data.PersonalInfo.Phone = "555 111 2222" },
		func() { data.Education = make([]resume.Education, 2) },
		func() { data.Experience = make([]resume.Experience, 3) },
		func() { data.ProfessionalInfo.Skills = []string{"a", "b", "c", "d", "e"} },
		func() { data.ProfessionalInfo.Skills = append(data.ProfessionalInfo.Skills, "f") },
	}
	for _, step := range steps {
		step()
		cur := Score(data).Overall
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.InDelta(t, 1.0, prev, 1e-9)
}

func TestScore_UnknownNameDoesNotCount(t *testing.T) {
	data := resume.ParsedData{PersonalInfo: resume.PersonalInfo{
		FirstName: resume.UnknownFirstName,
		LastName:  resume.UnknownLastName,
		Email:     "a@b.co",
	}}

	assert.InDelta(t, 0.25, Score(data).Contact, 1e-9)
}

func TestVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	require.Len(t, v.Sections, 6)
	assert.Contains(t, v.Skills, "React")
	assert.Equal(t, []string{"developer", "engineer"}, v.RelevantRoles)

	t.Run("override keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocab.yaml")
		require.NoError(t, os.WriteFile(path, []byte("skills: [Elixir, Phoenix]\n"), 0o600))

		loaded, err := LoadVocabulary(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Elixir", "Phoenix"}, loaded.Skills)
		assert.Equal(t, v.Sections, loaded.Sections)
		assert.Equal(t, v.DegreeKeywords, loaded.DegreeKeywords)
	})

	t.Run("unknown section", func(t *testing.T) {
		_, err := ParseVocabulary([]byte("sections:\n  - name: hobbies\n    keywords: [hobbies]\n"))
		assert.Error(t, err)
	})
}
