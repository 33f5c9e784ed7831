package duplicate

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Signal weights of the similarity blend
const (
	EmailWeight      = 0.30
	NameWeight       = 0.25
	PhoneWeight      = 0.20
	SkillsWeight     = 0.15
	RecentRoleWeight = 0.10

	DefaultThreshold = 0.70
)

// Profile is the part of a candidate's latest resume used for comparison
type Profile struct {
	CandidateID kernel.CandidateID
	ResumeID    kernel.ResumeID
	Email       kernel.Email
	Phone       kernel.Phone
	Name        string
	Skills      []string
	RecentTitle string
	RecentFirm  string
}

// ProfileFromResume builds a profile from a resume linked to a candidate.
// The "Unknown Candidate" fallback name is treated as no name.
func ProfileFromResume(r *resume.ParsedResume) Profile {
	p := Profile{
		ResumeID: r.ID,
		Email:    kernel.Email(r.Data.PersonalInfo.Email),
		Phone:    kernel.Phone(r.Data.PersonalInfo.Phone),
		Skills:   r.Skills(),
	}
	if r.HasCandidate() {
		p.CandidateID = *r.CandidateID
	}
	if r.Data.PersonalInfo.HasKnownName() {
		p.Name = r.Data.PersonalInfo.FullName()
	}
	if latest := r.LatestExperience(); latest != nil {
		p.RecentTitle = latest.Title
		p.RecentFirm = latest.Company
	}
	return p
}

// Similarity is the weighted blend of the individual signals, each in [0,1]
type Similarity struct {
	Email      float64 `json:"email"`
	Name       float64 `json:"name"`
	Phone      float64 `json:"phone"`
	Skills     float64 `json:"skills"`
	RecentRole float64 `json:"recent_role"`
	Total      float64 `json:"total"`
}

// Compare scores how likely two profiles describe the same person. Signals
// missing on either side contribute nothing.
func Compare(a, b Profile) Similarity {
	var s Similarity

	if ea, eb := a.Email.Normalized(), b.Email.Normalized(); ea != "" && ea == eb {
		s.Email = 1
	}
	if a.Name != "" && b.Name != "" {
		s.Name = LevenshteinSimilarity(Fold(a.Name), Fold(b.Name))
	}
	if pa, pb := a.Phone.Digits(), b.Phone.Digits(); pa != "" && pa == pb {
		s.Phone = 1
	}
	s.Skills = SkillOverlap(a.Skills, b.Skills)
	s.RecentRole = recentRole(a, b)

	s.Total = round4(EmailWeight*s.Email +
		NameWeight*s.Name +
		PhoneWeight*s.Phone +
		SkillsWeight*s.Skills +
		RecentRoleWeight*s.RecentRole)
	return s
}

// LevenshteinSimilarity is 1 - distance/max(len); two empty strings are identical
func LevenshteinSimilarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// SkillOverlap is the Jaccard index of two skill sets, compared case-insensitively
func SkillOverlap(a, b []string) float64 {
	setA, setB := skillSet(a), skillSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for s := range setA {
		if setB[s] {
			shared++
		}
	}
	return float64(shared) / float64(len(setA)+len(setB)-shared)
}

// Fold lower-cases, strips accents and collapses whitespace
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

func recentRole(a, b Profile) float64 {
	if a.RecentTitle == "" && a.RecentFirm == "" || b.RecentTitle == "" && b.RecentFirm == "" {
		return 0
	}
	title := LevenshteinSimilarity(Fold(a.RecentTitle), Fold(b.RecentTitle))
	firm := LevenshteinSimilarity(Fold(a.RecentFirm), Fold(b.RecentFirm))
	return (title + firm) / 2
}

func skillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			set[s] = true
		}
	}
	return set
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
