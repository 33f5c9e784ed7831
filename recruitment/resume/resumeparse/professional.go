package resumeparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Abraxas-365/talentrelay/recruitment/resume"
)

const (
	defaultTitle       = "Professional"
	maxTitleLength     = 50
	titleLookahead     = 4
	minSummaryLength   = 100
	maxSummaryLength   = 1000
	maxYearsMentioned  = 50
	maxExperienceCount = 15
)

var (
	yearsRe      = regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*(?:years?|yrs?)\b`)
	experienceRe = regexp.MustCompile(`(?i)experience`)
	skillSplitRe = regexp.MustCompile(`[,;|•·▪●]|\s/\s|\t`)
	skillLabelRe = regexp.MustCompile(`^([A-Za-z][A-Za-z &/-]{0,30}):\s*`)
)

func extractProfessionalInfo(seg Segments, fullText string, vocab *Vocabulary) resume.ProfessionalInfo {
	return resume.ProfessionalInfo{
		Title:             extractTitle(seg.Lines(SectionHeader)),
		Summary:           extractSummary(seg, fullText),
		YearsOfExperience: estimateYears(fullText),
		Skills:            extractSkills(seg, fullText, vocab),
	}
}

// extractTitle picks the first short header line after the name that is not contact data
func extractTitle(header []string) string {
	seen := 0
	for _, line := range header[min(1, len(header)):] {
		if line == "" {
			continue
		}
		if seen == titleLookahead {
			break
		}
		seen++
		if len(line) >= maxTitleLength || isContactLine(line) || isLocationLine(line) {
			continue
		}
		return line
	}
	return defaultTitle
}

// extractSummary uses the summary section, else the first paragraph of plausible length
func extractSummary(seg Segments, fullText string) string {
	if lines := seg.Lines(SectionSummary); len(lines) > 0 {
		if s := joinParagraph(lines); s != "" {
			return s
		}
	}
	for _, p := range paragraphs(splitLines(fullText)) {
		s := strings.Join(p, " ")
		if len(s) > minSummaryLength && len(s) < maxSummaryLength {
			return s
		}
	}
	return ""
}

func joinParagraph(lines []string) string {
	var parts []string
	for _, l := range lines {
		if l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}

// extractSkills splits the skills section on commas and bullets, falling back to a vocabulary scan
func extractSkills(seg Segments, fullText string, vocab *Vocabulary) []string {
	skills := splitList(seg.Lines(SectionSkills))
	if len(skills) > 0 {
		return skills
	}
	return scanVocabulary(fullText, vocab.Skills)
}

// splitList turns comma or bullet separated lines into trimmed, de-duplicated items
func splitList(lines []string) []string {
	var items []string
	for _, line := range lines {
		line = stripBullet(line)
		if line == "" {
			continue
		}
		if m := skillLabelRe.FindStringSubmatchIndex(line); m != nil && wordCount(line[m[2]:m[3]]) <= 3 {
			line = line[m[1]:]
		}
		for _, tok := range skillSplitRe.Split(line, -1) {
			tok = strings.TrimSpace(stripBullet(tok))
			tok = strings.TrimRight(tok, ".")
			if tok != "" {
				items = append(items, tok)
			}
		}
	}
	return dedupeFold(items)
}

// estimateYears takes the largest "N years" mention, else counts how often "experience" appears
func estimateYears(fullText string) int {
	best := -1
	for _, m := range yearsRe.FindAllStringSubmatch(fullText, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n >= maxYearsMentioned {
			continue
		}
		if n > best {
			best = n
		}
	}
	if best >= 0 {
		return best
	}

	count := len(experienceRe.FindAllStringIndex(fullText, -1))
	return max(1, min(count, maxExperienceCount))
}
