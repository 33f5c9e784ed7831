package resumeparse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// splitLines normalizes line endings and trims every line
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// paragraphs groups non-empty lines separated by blank lines
func paragraphs(lines []string) [][]string {
	var out [][]string
	var cur []string
	for _, l := range lines {
		if l == "" {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// lowerASCII lower-cases ASCII letters only so byte offsets are preserved
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// indexWord finds needle in s at word boundaries. Returns -1 when absent.
func indexWord(s, needle string, fold bool) int {
	if needle == "" {
		return -1
	}
	hay := s
	if fold {
		hay = lowerASCII(s)
		needle = lowerASCII(needle)
	}

	from := 0
	for from <= len(hay)-len(needle) {
		i := strings.Index(hay[from:], needle)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(needle)

		before, _ := utf8.DecodeLastRuneInString(hay[:start])
		after, _ := utf8.DecodeRuneInString(hay[end:])
		// boundaries only matter next to word characters of the needle
		first, _ := utf8.DecodeRuneInString(needle)
		last, _ := utf8.DecodeLastRuneInString(needle)
		okBefore := start == 0 || !isWordRune(first) || !isWordRune(before)
		okAfter := end == len(hay) || !isWordRune(last) || !isWordRune(after)
		if okBefore && okAfter {
			return start
		}
		from = start + 1
	}
	return -1
}

// containsKeyword matches keywords of three characters or fewer case-sensitively
func containsKeyword(s, kw string) bool {
	return indexKeyword(s, kw) >= 0
}

func indexKeyword(s, kw string) int {
	return indexWord(s, kw, len(kw) > 3)
}

// firstKeyword returns the earliest keyword occurrence in s, preferring longer keywords on ties
func firstKeyword(s string, keywords []string) (start, end int, ok bool) {
	start = -1
	for _, kw := range keywords {
		i := indexKeyword(s, kw)
		if i < 0 {
			continue
		}
		if start < 0 || i < start || (i == start && i+len(kw) > end) {
			start, end = i, i+len(kw)
		}
	}
	return start, end, start >= 0
}

// scanVocabulary returns the vocabulary terms found in text, case-insensitively and at word boundaries
func scanVocabulary(text string, terms []string) []string {
	var found []string
	for _, t := range terms {
		if indexWord(text, t, true) >= 0 {
			found = append(found, t)
		}
	}
	return dedupeFold(found)
}

// dedupeFold drops empty and case-insensitive duplicate entries, keeping the first spelling
func dedupeFold(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		key := strings.ToLower(it)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

// stripBullet removes leading list markers
func stripBullet(s string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "-*•·▪●◦‣> "))
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// trimSeparators removes punctuation left over at the edges after cutting text out of a line
func trimSeparators(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), ",;|-–—:()"))
}

// ContainsTerm reports whether term occurs in text, case-insensitively and at word boundaries
func ContainsTerm(text, term string) bool {
	return indexWord(text, strings.TrimSpace(term), true) >= 0
}

// CountTerm counts the non-overlapping occurrences of term in text, case-insensitively and at word boundaries
func CountTerm(text, term string) int {
	term = strings.TrimSpace(term)
	if term == "" {
		return 0
	}
	n := 0
	for {
		i := indexWord(text, term, true)
		if i < 0 {
			return n
		}
		n++
		text = text[i+len(term):]
	}
}
