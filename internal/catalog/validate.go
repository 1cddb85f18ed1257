package catalog

import (
	"fmt"
	"math"
)

// Reference maxima for each scored section. These are derived facts of the
// questionnaire's point assignments; Validate recomputes them from the data
// and treats any divergence as a configuration error.
var ExpectedSectionMax = map[string]float64{
	SectionGovernance:       16.25,
	SectionAwareness:        8.5,
	SectionAccessControl:    23.5,
	SectionInfrastructure:   56.75,
	SectionIncidentResponse: 25.25,
	SectionResilience:       7.5,
}

// ExpectedTotalMax is the sum of all section maxima.
const ExpectedTotalMax = 137.75

// maxEpsilon absorbs float decoding noise when comparing recomputed maxima
// against the reference constants.
const maxEpsilon = 1e-9

// Validate checks the structural and scoring integrity of the catalog.
// It is called during Load; the CLI also exposes it through the validate
// command so data edits can be checked before release.
func (c *Catalog) Validate() error {
	if len(c.sections) == 0 {
		return fmt.Errorf("catalog has no sections")
	}
	if c.sections[0].ID != SectionOrganization {
		return fmt.Errorf("first section must be %s, got %s", SectionOrganization, c.sections[0].ID)
	}

	seenSections := make(map[string]bool, len(c.sections))
	seenQuestions := make(map[string]string)
	for _, s := range c.sections {
		if s.ID == "" {
			return fmt.Errorf("section with empty id")
		}
		if seenSections[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		seenSections[s.ID] = true

		for _, q := range s.Questions {
			if q.ID == "" {
				return fmt.Errorf("section %s: question with empty id", s.ID)
			}
			if prev, dup := seenQuestions[q.ID]; dup {
				return fmt.Errorf("question id %q appears in both %s and %s", q.ID, prev, s.ID)
			}
			seenQuestions[q.ID] = s.ID

			if q.Mode != ModeSingle && q.Mode != ModeMulti {
				return fmt.Errorf("question %s: invalid mode %q", q.ID, q.Mode)
			}
			if len(q.Options) == 0 {
				return fmt.Errorf("question %s: no options", q.ID)
			}
			seenLabels := make(map[string]bool, len(q.Options))
			for _, o := range q.Options {
				if o.Label == "" {
					return fmt.Errorf("question %s: option with empty label", q.ID)
				}
				if seenLabels[o.Label] {
					return fmt.Errorf("question %s: duplicate option label %q", q.ID, o.Label)
				}
				seenLabels[o.Label] = true
				if o.Points < 0 {
					return fmt.Errorf("question %s: negative points for option %q", q.ID, o.Label)
				}
			}
		}
	}

	for id, want := range ExpectedSectionMax {
		if !seenSections[id] {
			return fmt.Errorf("missing section %s", id)
		}
		got := c.SectionMax(id)
		if math.Abs(got-want) > maxEpsilon {
			return fmt.Errorf("section %s: computed max %.4g differs from expected %.4g", id, got, want)
		}
	}
	if got := c.TotalMax(); math.Abs(got-ExpectedTotalMax) > maxEpsilon {
		return fmt.Errorf("computed total max %.4g differs from expected %.4g", got, ExpectedTotalMax)
	}
	return nil
}
