package resumeparse

import (
	"regexp"
	"strings"

	"github.com/Abraxas-365/talentrelay/recruitment/resume"
)

// segmentSplitRe cuts a line into comma, pipe or spaced-dash separated parts
var segmentSplitRe = regexp.MustCompile(`\s*[,|]\s*|\s+[-–—]\s+|\s*[–—]\s*`)

func extractEducation(seg Segments, vocab *Vocabulary) []resume.Education {
	var out []resume.Education
	for _, para := range paragraphs(seg.Lines(SectionEducation)) {
		if e, ok := parseEducationEntry(para, vocab); ok {
			out = append(out, e)
		}
	}
	return out
}

func parseEducationEntry(lines []string, vocab *Vocabulary) (resume.Education, bool) {
	var e resume.Education

	if dr, ok := extractDates(strings.Join(lines, "\n")); ok {
		e.StartDate, e.EndDate, e.Current = dr.Start, dr.End, dr.Current
	}

	degreeLine := -1
	for i, line := range lines {
		for _, part := range lineSegments(line) {
			if e.Degree == "" {
				if start, end, ok := firstKeyword(part, vocab.DegreeKeywords); ok {
					e.Degree, e.Field = splitDegree(part, start, end)
					degreeLine = i
				}
			}
			if e.Institution == "" && hasAnyKeyword(part, vocab.InstitutionKeywords) {
				e.Institution = part
			}
		}
	}

	if e.Institution == "" {
		for i, line := range lines {
			if i == degreeLine {
				continue
			}
			if s := trimSeparators(stripDates(stripBullet(line))); s != "" {
				e.Institution = s
				break
			}
		}
	}

	if e.Institution == "" && e.Degree == "" {
		return resume.Education{}, false
	}
	return e, true
}

// lineSegments strips dates from a line and splits what is left into parts
func lineSegments(line string) []string {
	line = stripDates(stripBullet(line))
	var parts []string
	for _, p := range segmentSplitRe.Split(line, -1) {
		if p = trimSeparators(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// splitDegree separates "Bachelor of Science in Physics" style text into degree and field
func splitDegree(part string, kwStart, kwEnd int) (degree, field string) {
	lower := lowerASCII(part)
	if i := strings.Index(lower, " in "); i >= 0 {
		return trimSeparators(part[:i]), trimSeparators(part[i+len(" in "):])
	}
	if i := strings.Index(lower[kwEnd:], " of "); i >= 0 {
		i += kwEnd
		return trimSeparators(part[:i]), trimSeparators(part[i+len(" of "):])
	}
	if kwStart == 0 {
		return trimSeparators(part[:kwEnd]), trimSeparators(part[kwEnd:])
	}
	return trimSeparators(part), ""
}

func hasAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if indexWord(s, kw, true) >= 0 {
			return true
		}
	}
	return false
}
