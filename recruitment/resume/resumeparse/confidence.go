package resumeparse

import "github.com/Abraxas-365/talentrelay/recruitment/resume"

const (
	contactWeight    = 0.3
	educationWeight  = 0.2
	experienceWeight = 0.3
	skillsWeight     = 0.2

	fullEducation  = 2
	fullExperience = 3
	fullSkills     = 5
)

// Score rates how complete the extracted data is. It never fails.
func Score(data resume.ParsedData) resume.ConfidenceScores {
	p := data.PersonalInfo

	filled := 0
	known := p.HasKnownName()
	for _, ok := range []bool{known && p.FirstName != "", known && p.LastName != "", p.Email != "", p.Phone != ""} {
		if ok {
			filled++
		}
	}

	s := resume.ConfidenceScores{
		Contact:    float64(filled) / 4,
		Education:  ratio(len(data.Education), fullEducation),
		Experience: ratio(len(data.Experience), fullExperience),
		Skills:     ratio(len(data.ProfessionalInfo.Skills), fullSkills),
	}
	s.Overall = clamp01(contactWeight*s.Contact +
		educationWeight*s.Education +
		experienceWeight*s.Experience +
		skillsWeight*s.Skills)
	return s
}

func ratio(n, full int) float64 {
	return min(1, float64(n)/float64(full))
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
