package resumeparse

import (
	"strings"

	"github.com/Abraxas-365/talentrelay/recruitment/resume"
)

// Parser is the deterministic heuristic resume parser
type Parser struct {
	vocab     *Vocabulary
	segmenter *Segmenter
}

// NewParser creates a parser; a nil vocabulary uses the embedded default
func NewParser(vocab *Vocabulary) *Parser {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Parser{
		vocab:     vocab,
		segmenter: NewSegmenter(vocab),
	}
}

// Result is the output of one parse
type Result struct {
	Data       resume.ParsedData
	Confidence resume.ConfidenceScores
}

// Parse runs segmentation, field extraction and confidence scoring over resume text.
// Malformed input yields empty fields and low confidence, never an error.
func (p *Parser) Parse(text string) Result {
	seg := p.segmenter.Segment(text)

	data := resume.ParsedData{
		PersonalInfo:     extractPersonalInfo(seg, text),
		ProfessionalInfo: extractProfessionalInfo(seg, text, p.vocab),
		Education:        extractEducation(seg, p.vocab),
		Experience:       extractExperience(seg, p.vocab),
		Certifications:   extractCertifications(seg, text, p.vocab),
		Languages:        extractLanguages(seg, text, p.vocab),
	}
	data.ProfessionalInfo.CurrentEmployer = currentEmployer(data.Experience)
	Normalize(&data)

	return Result{Data: data, Confidence: Score(data)}
}

// Segment exposes the section split of a text
func (p *Parser) Segment(text string) Segments {
	return p.segmenter.Segment(text)
}

// Vocabulary returns the vocabulary the parser runs on
func (p *Parser) Vocabulary() *Vocabulary {
	return p.vocab
}

func currentEmployer(exp []resume.Experience) string {
	for _, e := range exp {
		if e.Current && e.Company != "" {
			return e.Company
		}
	}
	return ""
}

// Normalize replaces nil lists with empty ones and de-duplicates skills, for data from any parser
func Normalize(data *resume.ParsedData) {
	data.ProfessionalInfo.Skills = dedupeFold(data.ProfessionalInfo.Skills)
	data.Certifications = dedupeFold(data.Certifications)
	data.Languages = dedupeFold(data.Languages)
	if data.Education == nil {
		data.Education = []resume.Education{}
	}
	if data.Experience == nil {
		data.Experience = []resume.Experience{}
	}
	data.PersonalInfo.Email = strings.TrimSpace(data.PersonalInfo.Email)
	data.PersonalInfo.Phone = strings.TrimSpace(data.PersonalInfo.Phone)
}
