package kernel

import "strings"

type Email string

// Normalized lower-cases and trims the address for comparisons
func (e Email) Normalized() string { return strings.ToLower(strings.TrimSpace(string(e))) }

type Phone string

// Digits strips everything but digits
func (p Phone) Digits() string {
	var b strings.Builder
	for _, r := range string(p) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type FirstName string

type LastName string

type JobTitle string

type JobDescription string

type SkillName string
