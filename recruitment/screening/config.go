package screening

import (
	"time"

	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeparse"
)

const (
	DefaultQualifiedThreshold = 70.0
	DefaultRoleYears          = 1.0
	PointsPerYear             = 20.0
	RelevantEducationScore    = 100.0
	OtherEducationScore       = 50.0
)

// Config holds the screening heuristics. Pass it explicitly; there is no global instance.
type Config struct {
	// QualifiedThreshold is the skill score at or above which a candidate qualifies
	QualifiedThreshold float64

	// RelevantRoles are title keywords counted as relevant experience
	RelevantRoles []string

	// RelevantFields are study field keywords worth full education score
	RelevantFields []string

	// Now anchors "present" dates; defaults to time.Now
	Now func() time.Time
}

// DefaultConfig takes the relevant roles and fields from the vocabulary
func DefaultConfig(vocab *resumeparse.Vocabulary) Config {
	if vocab == nil {
		vocab = resumeparse.DefaultVocabulary()
	}
	return Config{
		QualifiedThreshold: DefaultQualifiedThreshold,
		RelevantRoles:      vocab.RelevantRoles,
		RelevantFields:     vocab.RelevantFields,
		Now:                time.Now,
	}
}

// CurrentTime is Now, or time.Now when unset
func (c Config) CurrentTime() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
