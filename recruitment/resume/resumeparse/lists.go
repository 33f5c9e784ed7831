package resumeparse

import (
	"regexp"
	"strings"
)

const (
	minListItemLength = 2
	maxListItemLength = 100
)

var proficiencyRe = regexp.MustCompile(`\s*(?:\(|\s-\s|:|–|—).*$`)

// extractCertifications keeps one item per section line, else scans the text for known certifications
func extractCertifications(seg Segments, fullText string, vocab *Vocabulary) []string {
	var items []string
	for _, line := range seg.Lines(SectionCertifications) {
		line = stripBullet(line)
		if len(line) >= minListItemLength && len(line) <= maxListItemLength {
			items = append(items, line)
		}
	}
	if items = dedupeFold(items); len(items) > 0 {
		return items
	}
	return scanVocabulary(fullText, vocab.Certifications)
}

// extractLanguages splits the languages section and drops proficiency notes such as "(native)"
func extractLanguages(seg Segments, fullText string, vocab *Vocabulary) []string {
	var items []string
	for _, item := range splitList(seg.Lines(SectionLanguages)) {
		item = strings.TrimSpace(proficiencyRe.ReplaceAllString(item, ""))
		if len(item) >= minListItemLength && len(item) <= maxListItemLength {
			items = append(items, item)
		}
	}
	if items = dedupeFold(items); len(items) > 0 {
		return items
	}
	return scanVocabulary(fullText, vocab.Languages)
}
