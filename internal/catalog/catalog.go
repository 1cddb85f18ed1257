// Package catalog holds the static questionnaire of the maturity diagnostic:
// sections, questions, answer options and their point values. The catalog is
// decoded once from embedded YAML and never mutated afterwards; consumers
// receive it by reference.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Section identifiers, in navigation order.
const (
	SectionOrganization     = "organizationInfo"
	SectionGovernance       = "governance"
	SectionAwareness        = "awareness"
	SectionAccessControl    = "accessControl"
	SectionInfrastructure   = "infrastructure"
	SectionIncidentResponse = "incidentResponse"
	SectionResilience       = "resilience"
)

// Mode is the answer mode of a question.
type Mode string

const (
	// ModeSingle allows exactly one selected option at a time.
	ModeSingle Mode = "single"
	// ModeMulti allows any subset of options, including none.
	ModeMulti Mode = "multi"
)

// Option is one selectable answer. The label doubles as display text and
// stored value; points contribute to the section score when selected.
type Option struct {
	Label  string  `yaml:"label" json:"label"`
	Points float64 `yaml:"points" json:"points"`
}

// Question is a single catalog question. IDs are unique across the whole
// catalog, not just within a section.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Mode    Mode     `yaml:"mode" json:"mode"`
	Options []Option `yaml:"options" json:"options"`
}

// Section groups related questions. The organization-info pseudo-section
// carries no questions; its completion is driven by profile fields instead.
type Section struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Questions   []Question `yaml:"questions" json:"questions,omitempty"`
}

// Catalog is the immutable questionnaire definition.
type Catalog struct {
	sections []Section
	index    map[string]int
}

// Load decodes the embedded questionnaire and verifies its integrity.
func Load() (*Catalog, error) {
	var doc struct {
		Sections []Section `yaml:"sections"`
	}
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := New(doc.Sections)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog integrity: %w", err)
	}
	return c, nil
}

// New builds a catalog from explicit sections without integrity checks.
// Production code goes through Load; New exists for tests that need small
// purpose-built questionnaires.
func New(sections []Section) *Catalog {
	c := &Catalog{
		sections: sections,
		index:    make(map[string]int, len(sections)),
	}
	for i, s := range c.sections {
		c.index[s.ID] = i
	}
	return c
}

// Sections returns all sections in navigation order.
func (c *Catalog) Sections() []Section {
	return c.sections
}

// FunctionalSections returns the scored sections, i.e. every section that
// carries questions (the organization-info pseudo-section is excluded).
func (c *Catalog) FunctionalSections() []Section {
	out := make([]Section, 0, len(c.sections))
	for _, s := range c.sections {
		if len(s.Questions) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Section returns the section with the given id.
func (c *Catalog) Section(id string) (Section, bool) {
	i, ok := c.index[id]
	if !ok {
		return Section{}, false
	}
	return c.sections[i], true
}

// Index returns the navigation position of a section, or -1 if unknown.
func (c *Catalog) Index(id string) int {
	i, ok := c.index[id]
	if !ok {
		return -1
	}
	return i
}

// Questions returns the ordered question list of a section. Unknown sections
// and the organization-info pseudo-section yield an empty list.
func (c *Catalog) Questions(sectionID string) []Question {
	s, ok := c.Section(sectionID)
	if !ok {
		return nil
	}
	return s.Questions
}

// Question looks up a single question by section and question id.
func (c *Catalog) Question(sectionID, questionID string) (Question, bool) {
	for _, q := range c.Questions(sectionID) {
		if q.ID == questionID {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionMax returns the highest score a question can contribute: the best
// single option for single-mode questions, the sum of all options for
// multi-mode questions.
func QuestionMax(q Question) float64 {
	switch q.Mode {
	case ModeMulti:
		var sum float64
		for _, o := range q.Options {
			sum += o.Points
		}
		return sum
	default:
		var max float64
		for _, o := range q.Options {
			if o.Points > max {
				max = o.Points
			}
		}
		return max
	}
}

// SectionMax returns the maximum achievable score of a section.
func (c *Catalog) SectionMax(sectionID string) float64 {
	var sum float64
	for _, q := range c.Questions(sectionID) {
		sum += QuestionMax(q)
	}
	return sum
}

// TotalMax returns the maximum achievable score across all scored sections.
func (c *Catalog) TotalMax() float64 {
	var sum float64
	for _, s := range c.sections {
		sum += c.SectionMax(s.ID)
	}
	return sum
}
