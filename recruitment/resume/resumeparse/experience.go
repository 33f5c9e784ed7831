package resumeparse

import (
	"regexp"
	"strings"

	"github.com/Abraxas-365/talentrelay/recruitment/resume"
)

var (
	// titleSplitRe separates "Company - Title" and "Title | Company" header lines
	titleSplitRe = regexp.MustCompile(`\s+-\s+|\s*[–—|]\s*`)
	listSplitRe  = regexp.MustCompile(`\s*[,|]\s*`)
)

const maxEntryHeaderLength = 120

func extractExperience(seg Segments, vocab *Vocabulary) []resume.Experience {
	var out []resume.Experience
	for _, para := range paragraphs(seg.Lines(SectionExperience)) {
		for _, block := range splitEntries(para) {
			if e, ok := parseExperienceEntry(block, vocab); ok {
				out = append(out, e)
			}
		}
	}
	return out
}

// splitEntries cuts a paragraph holding several jobs without blank lines between them.
// A new entry starts at a dated line once the current entry already has dates; a short
// undated line right above it is taken as that entry's header.
func splitEntries(lines []string) [][]string {
	var blocks [][]string
	var cur []string
	curDated := false

	for _, line := range lines {
		dated := hasDate(line)
		if dated && curDated {
			var carry []string
			if n := len(cur); n > 1 && !hasDate(cur[n-1]) && !isBulletLine(cur[n-1]) && len(cur[n-1]) < maxEntryHeaderLength {
				carry = []string{cur[n-1]}
				cur = cur[:n-1]
			}
			blocks = append(blocks, cur)
			cur = carry
			curDated = false
		}
		cur = append(cur, line)
		curDated = curDated || dated
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

func parseExperienceEntry(lines []string, vocab *Vocabulary) (resume.Experience, bool) {
	var e resume.Experience
	used := make(map[int]bool)

	dateLine := -1
	for i, line := range lines {
		if dr, ok := extractDates(line); ok {
			e.StartDate, e.EndDate, e.Current = dr.Start, dr.End, dr.Current
			if dr.Start == "" {
				// a lone date covers a single period
				e.StartDate = dr.End
			}
			dateLine = i
			break
		}
	}

	// header: first line, dates removed
	used[0] = true
	parts := splitHeader(lines[0])
	switch {
	case len(parts) >= 2:
		e.Company, e.Title = parts[0], parts[1]
		if looksLikeRole(parts[0], vocab) && !looksLikeRole(parts[1], vocab) {
			e.Company, e.Title = parts[1], parts[0]
		}
		if len(parts) > 2 && e.Location == "" && !looksLikeRole(parts[2], vocab) {
			e.Location = parts[2]
		}
	case len(parts) == 1:
		e.Title = parts[0]
		for i := 1; i < len(lines); i++ {
			if isBulletLine(lines[i]) {
				break
			}
			rest := splitHeader(lines[i])
			if len(rest) == 0 {
				continue
			}
			used[i] = true
			e.Company = rest[0]
			if len(rest) > 1 {
				e.Location = rest[1]
			}
			break
		}
	}

	if e.Location == "" {
		e.Location = findLocation(strings.Join(lines, "\n"))
	}
	if e.Location == "" && dateLine > 0 && !used[dateLine] {
		e.Location = locationFromDateLine(lines[dateLine], e)
	}
	if dateLine >= 0 && isDateOnlyOrLocation(lines[dateLine], e.Location) {
		used[dateLine] = true
	}

	var desc []string
	for i, line := range lines {
		if used[i] {
			continue
		}
		if e.Location != "" && strings.TrimSpace(line) == e.Location {
			continue
		}
		desc = append(desc, line)
	}
	e.Description = strings.Join(desc, "\n")

	if e.Company == "" && e.Title == "" {
		return resume.Experience{}, false
	}
	return e, true
}

// splitHeader strips dates from a line and splits it on dash and pipe separators
func splitHeader(line string) []string {
	line = stripDates(stripBullet(line))
	var parts []string
	for _, p := range titleSplitRe.Split(line, -1) {
		p = trimSeparators(p)
		if p != "" && hasLetter(p) {
			parts = append(parts, p)
		}
	}
	return parts
}

// locationFromDateLine takes the first undated comma or pipe separated piece of a dated line
func locationFromDateLine(line string, e resume.Experience) string {
	for _, p := range listSplitRe.Split(stripDates(line), -1) {
		p = trimSeparators(p)
		if p == "" || !hasLetter(p) || p == e.Company || p == e.Title {
			continue
		}
		return p
	}
	return ""
}

func isDateOnlyOrLocation(line, location string) bool {
	if isDateOnly(line) {
		return true
	}
	rest := trimSeparators(stripDates(line))
	return location != "" && (rest == location || strings.Trim(rest, " ,|") == location)
}

func looksLikeRole(s string, vocab *Vocabulary) bool {
	return hasAnyKeyword(s, vocab.RoleKeywords)
}

func isBulletLine(line string) bool {
	return stripBullet(line) != strings.TrimSpace(line)
}
