package resumeparse

import (
	"strings"
)

type Section string

const (
	SectionHeader         Section = "header"
	SectionSummary        Section = "summary"
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionSkills         Section = "skills"
	SectionCertifications Section = "certifications"
	SectionLanguages      Section = "languages"
)

// headerLines is how many leading lines are taken as contact header
const headerLines = 5

// maxHeadingWords bounds how long a heading line can be
const maxHeadingWords = 4

func (s Section) isBody() bool {
	switch s {
	case SectionSummary, SectionEducation, SectionExperience, SectionSkills, SectionCertifications, SectionLanguages:
		return true
	}
	return false
}

// Segments holds the lines of each section in document order
type Segments struct {
	sections map[Section][]string
}

// Lines returns the lines assigned to a section, blank lines included
func (s Segments) Lines(section Section) []string {
	return s.sections[section]
}

// Text returns the section body as newline-joined text
func (s Segments) Text(section Section) string {
	return strings.TrimSpace(strings.Join(s.sections[section], "\n"))
}

// Has reports whether the section has any non-blank line
func (s Segments) Has(section Section) bool {
	return s.Text(section) != ""
}

// qualifierWords may stand next to a section keyword in a heading,
// as in "Key Skills" or "Relevant Work Experience".
var qualifierWords = map[string]bool{
	"and": true, "of": true, "my": true, "other": true, "additional": true,
	"key": true, "core": true, "relevant": true, "selected": true,
	"professional": true, "technical": true, "work": true, "career": true,
	"academic": true, "personal": true, "employment": true,
}

// Segmenter splits resume text into sections with a single forward pass
type Segmenter struct {
	sections     []SectionKeywords
	headingWords map[string]bool
}

func NewSegmenter(vocab *Vocabulary) *Segmenter {
	words := make(map[string]bool, len(qualifierWords))
	for w := range qualifierWords {
		words[w] = true
	}
	for _, s := range vocab.Sections {
		for _, kw := range s.Keywords {
			for _, w := range strings.Fields(strings.ToLower(kw)) {
				words[w] = true
			}
		}
	}
	return &Segmenter{sections: vocab.Sections, headingWords: words}
}

// Segment assigns the first lines to the header, then routes every line to the
// section opened by the last heading seen. Heading lines themselves are dropped.
// Body text before any heading lands in the summary.
func (sg *Segmenter) Segment(text string) Segments {
	lines := splitLines(text)
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}

	out := Segments{sections: make(map[Section][]string)}
	current := SectionHeader

	for i, line := range lines {
		if current == SectionHeader && i >= headerLines {
			current = SectionSummary
		}

		// the first line is always the name line
		if i > 0 {
			if section, ok := sg.heading(line); ok {
				current = section
				continue
			}
			if section, rest, ok := sg.inlineHeading(line); ok {
				current = section
				out.sections[current] = append(out.sections[current], rest)
				continue
			}
		}

		out.sections[current] = append(out.sections[current], line)
	}

	return out
}

// heading reports which section a line opens, if it is a heading.
// A keyword with extra words only counts when every extra word is itself
// heading vocabulary, so "Strong communication skills" stays body text.
func (sg *Segmenter) heading(line string) (Section, bool) {
	norm := normalizeHeading(line)
	if norm == "" || wordCount(norm) > maxHeadingWords || hasDigit(norm) || strings.Contains(line, "@") {
		return "", false
	}
	if strings.Contains(line, " - ") || strings.HasSuffix(strings.TrimSpace(line), ".") {
		return "", false
	}

	for _, s := range sg.sections {
		for _, kw := range s.Keywords {
			kw = strings.ToLower(kw)
			if norm == kw {
				return s.Name, true
			}
			if rest, ok := strings.CutPrefix(norm, kw+" "); ok && sg.onlyHeadingWords(rest) {
				return s.Name, true
			}
			if rest, ok := strings.CutSuffix(norm, " "+kw); ok && sg.onlyHeadingWords(rest) {
				return s.Name, true
			}
		}
	}
	return "", false
}

func (sg *Segmenter) onlyHeadingWords(s string) bool {
	for _, w := range strings.Fields(s) {
		if !sg.headingWords[w] {
			return false
		}
	}
	return true
}

// inlineHeading handles "Skills: Go, SQL" style lines
func (sg *Segmenter) inlineHeading(line string) (Section, string, bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	rest := strings.TrimSpace(line[idx+1:])
	if rest == "" {
		return "", "", false
	}
	section, ok := sg.heading(line[:idx])
	return section, rest, ok
}

// normalizeHeading lower-cases a line and strips decoration such as "== SKILLS: =="
func normalizeHeading(line string) string {
	s := strings.ToLower(strings.TrimSpace(line))
	s = strings.Trim(s, " :-=#*_|•")
	s = strings.ReplaceAll(s, "&", " ")
	s = strings.ReplaceAll(s, "/", " ")
	return strings.Join(strings.Fields(s), " ")
}
