package resumeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

// dateToken matches "Mon YYYY", "MM/YYYY", "YYYY-MM" and bare years
const dateToken = `(?:\b` + monthPattern + `\.?,?\s+(?:19|20)\d{2}\b|\b\d{1,2}/(?:19|20)\d{2}\b|\b(?:19|20)\d{2}(?:[-/.](?:0?[1-9]|1[0-2])\b)?\b)`

const presentToken = `(?:present|current|now|today)`

var (
	dateRangeRe = regexp.MustCompile(`(?i)(` + dateToken + `)\s*(?:-|–|—|to|until)\s*(` + dateToken + `|\b` + presentToken + `\b)`)
	dateTokenRe = regexp.MustCompile(`(?i)` + dateToken)
	presentRe   = regexp.MustCompile(`(?i)^\s*` + presentToken + `\s*$`)

	yearOnlyRe  = regexp.MustCompile(`^((?:19|20)\d{2})$`)
	yearMonthRe = regexp.MustCompile(`^((?:19|20)\d{2})[-/.](\d{1,2})$`)
	monthYearRe = regexp.MustCompile(`^(\d{1,2})/((?:19|20)\d{2})$`)
	monthNameRe = regexp.MustCompile(`(?i)^(` + monthPattern + `)\.?,?\s+((?:19|20)\d{2})$`)
)

// DateRange is a start/end pair as written in the resume
type DateRange struct {
	Start   string
	End     string
	Current bool
}

// findDateRange returns the first date range in s plus its byte span
func findDateRange(s string) (DateRange, []int, bool) {
	m := dateRangeRe.FindStringSubmatchIndex(s)
	if m == nil {
		return DateRange{}, nil, false
	}
	start := strings.TrimSpace(s[m[2]:m[3]])
	end := strings.TrimSpace(s[m[4]:m[5]])
	return DateRange{
		Start:   start,
		End:     end,
		Current: IsPresent(end),
	}, m[:2], true
}

// extractDates reads the dates of a block: a range if there is one, else the lone date tokens
func extractDates(s string) (DateRange, bool) {
	if r, _, ok := findDateRange(s); ok {
		return r, true
	}
	tokens := dateTokenRe.FindAllString(s, 2)
	switch len(tokens) {
	case 0:
		return DateRange{}, false
	case 1:
		return DateRange{End: strings.TrimSpace(tokens[0])}, true
	default:
		return DateRange{Start: strings.TrimSpace(tokens[0]), End: strings.TrimSpace(tokens[1])}, true
	}
}

// stripDates removes date ranges and date tokens from s
func stripDates(s string) string {
	s = dateRangeRe.ReplaceAllString(s, " ")
	s = dateTokenRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

func hasDate(s string) bool {
	return dateTokenRe.MatchString(s)
}

// isDateOnly reports whether s carries nothing but dates and separators
func isDateOnly(s string) bool {
	if !hasDate(s) {
		return false
	}
	rest := dateRangeRe.ReplaceAllString(s, "")
	rest = dateTokenRe.ReplaceAllString(rest, "")
	return !hasLetter(rest) && !hasDigit(rest)
}

// IsPresent reports whether a date string means "ongoing"
func IsPresent(s string) bool {
	return presentRe.MatchString(s)
}

// ParseDate reads a resume date at month precision. Bare years resolve to January,
// present/current/now resolve to the month of now.
func ParseDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if IsPresent(s) {
		return monthOf(now.Year(), int(now.Month())), true
	}

	if m := yearOnlyRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		return monthOf(y, 1), true
	}
	if m := yearMonthRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if mo >= 1 && mo <= 12 {
			return monthOf(y, mo), true
		}
		return time.Time{}, false
	}
	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		mo, _ := strconv.Atoi(m[1])
		y, _ := strconv.Atoi(m[2])
		if mo >= 1 && mo <= 12 {
			return monthOf(y, mo), true
		}
		return time.Time{}, false
	}
	if m := monthNameRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[2])
		return monthOf(y, monthNumber(m[1])), true
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return monthOf(t.Year(), int(t.Month())), true
}

// MonthDiff is (b.year-a.year)*12 + (b.month-a.month)
func MonthDiff(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func monthOf(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func monthNumber(name string) int {
	switch strings.ToLower(name)[:3] {
	case "jan":
		return 1
	case "feb":
		return 2
	case "mar":
		return 3
	case "apr":
		return 4
	case "may":
		return 5
	case "jun":
		return 6
	case "jul":
		return 7
	case "aug":
		return 8
	case "sep":
		return 9
	case "oct":
		return 10
	case "nov":
		return 11
	default:
		return 12
	}
}
