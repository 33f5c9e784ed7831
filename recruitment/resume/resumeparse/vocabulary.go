package resumeparse

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// SectionKeywords maps heading keywords to the section they open
type SectionKeywords struct {
	Name     Section  `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Vocabulary is the keyword data the heuristics run on
type Vocabulary struct {
	Sections            []SectionKeywords `yaml:"sections"`
	Skills              []string          `yaml:"skills"`
	Certifications      []string          `yaml:"certifications"`
	Languages           []string          `yaml:"languages"`
	DegreeKeywords      []string          `yaml:"degree_keywords"`
	InstitutionKeywords []string          `yaml:"institution_keywords"`
	RoleKeywords        []string          `yaml:"role_keywords"`
	RelevantRoles       []string          `yaml:"relevant_roles"`
	RelevantFields      []string          `yaml:"relevant_fields"`
}

// DefaultVocabulary returns a fresh copy of the embedded vocabulary
func DefaultVocabulary() *Vocabulary {
	v, err := ParseVocabulary(defaultVocabularyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary is invalid: %v", err))
	}
	return v
}

// ParseVocabulary decodes a YAML vocabulary document
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// LoadVocabulary reads a vocabulary file. Lists missing from the file keep their default values.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}

	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("decode vocabulary %s: %w", path, err)
	}

	v := DefaultVocabulary()
	v.merge(&override)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks that every heading keyword opens a known body section
func (v *Vocabulary) Validate() error {
	for _, s := range v.Sections {
		if !s.Name.isBody() {
			return fmt.Errorf("vocabulary: unknown section %q", s.Name)
		}
		if len(s.Keywords) == 0 {
			return fmt.Errorf("vocabulary: section %q has no keywords", s.Name)
		}
	}
	return nil
}

func (v *Vocabulary) merge(o *Vocabulary) {
	if len(o.Sections) > 0 {
		v.Sections = o.Sections
	}
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&v.Skills, o.Skills)
	pick(&v.Certifications, o.Certifications)
	pick(&v.Languages, o.Languages)
	pick(&v.DegreeKeywords, o.DegreeKeywords)
	pick(&v.InstitutionKeywords, o.InstitutionKeywords)
	pick(&v.RoleKeywords, o.RoleKeywords)
	pick(&v.RelevantRoles, o.RelevantRoles)
	pick(&v.RelevantFields, o.RelevantFields)
}
