package scoring

import (
	"testing"

	"github.com/earoncy/cyberdiag/internal/catalog"
	"github.com/earoncy/cyberdiag/internal/session"
)

func scenarioCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Section{
		{ID: catalog.SectionOrganization, Title: "Organisation"},
		{ID: "s1", Title: "Section 1", Questions: []catalog.Question{
			{ID: "q1", Prompt: "Choisir une option", Mode: catalog.ModeSingle, Options: []catalog.Option{
				{Label: "A", Points: 2}, {Label: "B", Points: 1}, {Label: "C", Points: 0},
			}},
			{ID: "q2", Prompt: "Choisir plusieurs options", Mode: catalog.ModeMulti, Options: []catalog.Option{
				{Label: "X", Points: 0.5}, {Label: "Y", Points: 0.5},
			}},
		}},
	})
}

func TestScoreEmptyResponses(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	result := Score(cat, session.ResponseStore{})
	if result.Percent != 0 {
		t.Errorf("Empty responses scored %d%%, want 0", result.Percent)
	}
	if result.Points != 0 {
		t.Errorf("Empty responses earned %v points, want 0", result.Points)
	}
	if len(result.Sections) != 6 {
		t.Errorf("Expected 6 section scores, got %d", len(result.Sections))
	}
}

func TestScoreMaxedResponses(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	sess := &session.Session{}
	sess.Bind(cat)
	for _, sec := range cat.FunctionalSections() {
		for _, q := range sec.Questions {
			if q.Mode == catalog.ModeMulti {
				for _, o := range q.Options {
					sess.Select(sec.ID, q.ID, o.Label)
				}
				continue
			}
			best := q.Options[0]
			for _, o := range q.Options {
				if o.Points > best.Points {
					best = o
				}
			}
			sess.Select(sec.ID, q.ID, best.Label)
		}
	}

	result := Score(cat, sess.Responses)
	if result.Percent != 100 {
		t.Errorf("Maxed responses scored %d%%, want 100", result.Percent)
	}
	for _, s := range result.Sections {
		if s.Percent != 100 {
			t.Errorf("Section %s scored %d%%, want 100", s.SectionID, s.Percent)
		}
	}
}

func TestScoreSingleScenario(t *testing.T) {
	cat := scenarioCatalog()
	sess := &session.Session{}
	sess.Bind(cat)

	// Selecting B then re-selecting A must leave exactly A, worth 2 points.
	sess.Select("s1", "q1", "B")
	sess.Select("s1", "q1", "A")

	result := Score(cat, sess.Responses)
	if result.Points != 2 {
		t.Errorf("Expected 2 points, got %v", result.Points)
	}
}

func TestScoreMultiScenario(t *testing.T) {
	cat := scenarioCatalog()
	sess := &session.Session{}
	sess.Bind(cat)

	// Selecting both then deselecting X must leave Y alone, worth 0.5.
	sess.Select("s1", "q2", "X")
	sess.Select("s1", "q2", "Y")
	sess.Select("s1", "q2", "X")

	result := Score(cat, sess.Responses)
	if result.Points != 0.5 {
		t.Errorf("Expected 0.5 points, got %v", result.Points)
	}
}

func TestScorePartialResponses(t *testing.T) {
	cat := scenarioCatalog()
	sess := &session.Session{}
	sess.Bind(cat)
	sess.Select("s1", "q1", "A")

	// q2 unanswered: contributes 0, no error. Max of s1 is 2 + 1 = 3.
	result := Score(cat, sess.Responses)
	if result.Points != 2 {
		t.Errorf("Expected 2 points, got %v", result.Points)
	}
	if result.Percent != 67 {
		t.Errorf("Expected round(2/3*100) = 67, got %d", result.Percent)
	}
}

func TestScoreIgnoresUnknownLabels(t *testing.T) {
	cat := scenarioCatalog()
	responses := session.ResponseStore{
		"s1": {
			"q1": session.SingleAnswer("Z"),
			"q2": session.MultiAnswer("X", "Z"),
		},
	}

	result := Score(cat, responses)
	if result.Points != 0.5 {
		t.Errorf("Unknown labels must contribute 0; got %v points", result.Points)
	}
}

func TestScoreIsPure(t *testing.T) {
	cat := scenarioCatalog()
	responses := session.ResponseStore{
		"s1": {"q1": session.SingleAnswer("A")},
	}

	first := Score(cat, responses)
	second := Score(cat, responses)
	if first.Percent != second.Percent || first.Points != second.Points {
		t.Error("Score must be deterministic for the same input")
	}
	if len(responses) != 1 || len(responses["s1"]) != 1 {
		t.Error("Score must not mutate the response store")
	}
}
