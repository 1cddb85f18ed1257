// Package scoring turns a response store into the maturity percentage.
// Scoring is pure: it never mutates the session and tolerates partial
// stores, unanswered questions simply contribute zero points.
package scoring

import (
	"math"

	"github.com/earoncy/cyberdiag/internal/catalog"
	"github.com/earoncy/cyberdiag/internal/session"
)

// SectionScore is the scored outcome of one functional section.
type SectionScore struct {
	SectionID string  `json:"section_id"`
	Title     string  `json:"title"`
	Points    float64 `json:"points"`
	Max       float64 `json:"max"`
	Percent   int     `json:"percent"`
}

// Result is the full scored outcome of a diagnostic.
type Result struct {
	Sections []SectionScore `json:"sections"`
	Points   float64        `json:"points"`
	Max      float64        `json:"max"`
	Percent  int            `json:"percent"`
}

// Score computes per-section and total maturity scores for the given
// responses. Selected labels that no longer exist in the catalog count for
// zero rather than failing.
func Score(cat *catalog.Catalog, responses session.ResponseStore) Result {
	result := Result{Max: cat.TotalMax()}

	for _, sec := range cat.FunctionalSections() {
		ss := SectionScore{
			SectionID: sec.ID,
			Title:     sec.Title,
			Max:       cat.SectionMax(sec.ID),
		}
		for _, q := range sec.Questions {
			a, ok := responses.Get(sec.ID, q.ID)
			if !ok {
				continue
			}
			ss.Points += questionPoints(q, a)
		}
		ss.Percent = percent(ss.Points, ss.Max)
		result.Sections = append(result.Sections, ss)
		result.Points += ss.Points
	}

	result.Percent = percent(result.Points, result.Max)
	return result
}

// questionPoints sums the point values of the selected options. For single
// questions at most one label is present; for multi questions every
// selected label contributes.
func questionPoints(q catalog.Question, a session.Answer) float64 {
	var sum float64
	for _, label := range a.Labels {
		for _, o := range q.Options {
			if o.Label == label {
				sum += o.Points
				break
			}
		}
	}
	return sum
}

func percent(points, max float64) int {
	if max <= 0 {
		return 0
	}
	p := int(math.Round(points / max * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
