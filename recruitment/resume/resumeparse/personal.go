package resumeparse

import (
	"regexp"
	"strings"

	"github.com/Abraxas-365/talentrelay/recruitment/resume"
)

var (
	emailRe     = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.\w{2,}`)
	phoneRe     = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	linkedInRe  = regexp.MustCompile(`(?i)linkedin\.com/in/([\w-]+)`)
	gitHubRe    = regexp.MustCompile(`(?i)github\.com/([\w-]+)`)
	urlRe       = regexp.MustCompile(`(?i)\bhttps?://[^\s,;|()<>]+`)
	locationRe  = regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?:[ \t][A-Z][a-zA-Z]+)*),[ \t]*([A-Z]{2})\b`)
	cityStateRe = regexp.MustCompile(`^[A-Z][a-zA-Z]+(?:[ \t][A-Z][a-zA-Z]+)*,[ \t]*[A-Z]{2}$`)
)

// extractPersonalInfo reads contact details from the header, falling back to the whole text
func extractPersonalInfo(seg Segments, fullText string) resume.PersonalInfo {
	header := seg.Text(SectionHeader)

	info := resume.PersonalInfo{
		Email:    emailRe.FindString(fullText),
		Phone:    firstMatch(phoneRe, header, fullText),
		Location: findLocation(header, fullText),
	}

	if m := linkedInRe.FindStringSubmatch(fullText); m != nil {
		info.LinkedIn = "https://www.linkedin.com/in/" + m[1]
	}
	if m := gitHubRe.FindStringSubmatch(fullText); m != nil {
		info.GitHub = "https://www.github.com/" + m[1]
	}
	for _, u := range urlRe.FindAllString(fullText, -1) {
		lower := strings.ToLower(u)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		info.Portfolio = strings.TrimRight(u, ".")
		break
	}

	info.FirstName, info.LastName = extractName(seg.Lines(SectionHeader))
	return info
}

// extractName splits the first header line into first name and the rest as last name
func extractName(header []string) (string, string) {
	if len(header) == 0 {
		return resume.UnknownFirstName, resume.UnknownLastName
	}
	line := header[0]
	if strings.Contains(line, "@") || phoneRe.MatchString(line) || urlRe.MatchString(line) {
		return resume.UnknownFirstName, resume.UnknownLastName
	}

	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return resume.UnknownFirstName, resume.UnknownLastName
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}

func findLocation(texts ...string) string {
	for _, t := range texts {
		if m := locationRe.FindString(t); m != "" {
			return m
		}
	}
	return ""
}

func firstMatch(re *regexp.Regexp, texts ...string) string {
	for _, t := range texts {
		if m := re.FindString(t); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// isContactLine is true for lines carrying an email, a link, or only a phone number
func isContactLine(line string) bool {
	if emailRe.MatchString(line) || urlRe.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") || strings.HasPrefix(lower, "www.") {
		return true
	}
	if loc := phoneRe.FindString(line); loc != "" {
		return !hasLetter(strings.Replace(line, loc, "", 1))
	}
	return false
}

func isLocationLine(line string) bool {
	return cityStateRe.MatchString(strings.TrimSpace(line))
}
