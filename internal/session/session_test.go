package session

import (
	"reflect"
	"testing"

	"github.com/earoncy/cyberdiag/internal/catalog"
)

// testCatalog builds a small questionnaire: the organization pseudo-section
// followed by six scored sections s1..s6. s1 carries the two scenario
// questions, the others one trivial question each.
func testCatalog() *catalog.Catalog {
	sections := []catalog.Section{
		{ID: catalog.SectionOrganization, Title: "Organisation"},
		{ID: "s1", Title: "Section 1", Questions: []catalog.Question{
			{ID: "q1", Prompt: "Choisir une option", Mode: catalog.ModeSingle, Options: []catalog.Option{
				{Label: "A", Points: 2}, {Label: "B", Points: 1}, {Label: "C", Points: 0},
			}},
			{ID: "q2", Prompt: "Choisir plusieurs options", Mode: catalog.ModeMulti, Options: []catalog.Option{
				{Label: "X", Points: 0.5}, {Label: "Y", Points: 0.5},
			}},
		}},
	}
	for _, id := range []string{"s2", "s3", "s4", "s5", "s6"} {
		sections = append(sections, catalog.Section{
			ID: id, Title: "Section " + id, Questions: []catalog.Question{
				{ID: id + "q", Prompt: "Question " + id, Mode: catalog.ModeSingle, Options: []catalog.Option{
					{Label: "Non", Points: 0}, {Label: "Oui", Points: 1},
				}},
			},
		})
	}
	return catalog.New(sections)
}

func TestNewStartsAtFirstSection(t *testing.T) {
	sess := New(testCatalog())

	if sess.Current != catalog.SectionOrganization {
		t.Errorf("Current = %s, want %s", sess.Current, catalog.SectionOrganization)
	}
	if sess.ID == "" {
		t.Error("Expected a session id")
	}
	if len(sess.Completed) != 0 || len(sess.Responses) != 0 {
		t.Error("Expected empty state")
	}
}

func TestSelectSingleReplaces(t *testing.T) {
	sess := New(testCatalog())

	sess.Select("s1", "q1", "B")
	sess.Select("s1", "q1", "A")

	a, ok := sess.Responses.Get("s1", "q1")
	if !ok {
		t.Fatal("Expected an answer for q1")
	}
	if !reflect.DeepEqual(a.Labels, []string{"A"}) {
		t.Errorf("Expected exactly [A] stored, got %v", a.Labels)
	}
}

func TestSelectMultiToggles(t *testing.T) {
	sess := New(testCatalog())

	sess.Select("s1", "q2", "X")
	sess.Select("s1", "q2", "Y")
	sess.Select("s1", "q2", "X")

	a, _ := sess.Responses.Get("s1", "q2")
	if !reflect.DeepEqual(a.Labels, []string{"Y"}) {
		t.Errorf("Expected exactly [Y] stored, got %v", a.Labels)
	}
	if !a.Multi {
		t.Error("Expected a multi answer")
	}
}

func TestSelectUnknownQuestionIgnored(t *testing.T) {
	sess := New(testCatalog())

	sess.Select("s1", "nope", "A")
	sess.Select("ghost", "q1", "A")

	if len(sess.Responses) != 0 {
		t.Errorf("Expected no responses recorded, got %v", sess.Responses)
	}
}

func TestIsSectionComplete(t *testing.T) {
	sess := New(testCatalog())

	if sess.IsSectionComplete("s1") {
		t.Error("Empty section should be incomplete")
	}

	sess.Select("s1", "q1", "B")
	if sess.IsSectionComplete("s1") {
		t.Error("Section with unanswered multi question should be incomplete")
	}

	sess.Select("s1", "q2", "X")
	if !sess.IsSectionComplete("s1") {
		t.Error("Section with every question answered should be complete")
	}

	// Deselecting the only multi label leaves an empty answer, which counts
	// as unanswered.
	sess.Select("s1", "q2", "X")
	if sess.IsSectionComplete("s1") {
		t.Error("Section with empty multi answer should be incomplete")
	}
}

func TestCompletionIsMonotonic(t *testing.T) {
	sess := New(testCatalog())
	sess.Select("s1", "q1", "C")
	sess.Select("s1", "q2", "Y")

	if !sess.IsSectionComplete("s1") {
		t.Fatal("Expected s1 complete")
	}

	// Answering more questions elsewhere never un-completes a section.
	sess.Select("s2", "s2q", "Oui")
	sess.Select("s3", "s3q", "Non")
	if !sess.IsSectionComplete("s1") {
		t.Error("Adding answers elsewhere un-completed s1")
	}
}

func TestOrganizationSectionCompletion(t *testing.T) {
	sess := New(testCatalog())

	if sess.IsSectionComplete(catalog.SectionOrganization) {
		t.Error("Empty profile should be incomplete")
	}

	sess.SetOrgField(OrgFieldName, "ONG Lumière")
	sess.SetOrgField(OrgFieldType, "Association")
	sess.SetOrgField(OrgFieldSize, "10-50")
	sess.SetOrgField(OrgFieldSector, "Éducation")

	missing := sess.MissingPrompts(catalog.SectionOrganization)
	if len(missing) != 1 || missing[0] != OrgFieldLabel(OrgFieldCountry) {
		t.Errorf("Expected exactly the country label missing, got %v", missing)
	}

	sess.SetOrgField(OrgFieldCountry, "Togo")
	if !sess.IsSectionComplete(catalog.SectionOrganization) {
		t.Error("Expected complete profile section")
	}
}

func TestVacuouslyCompleteSection(t *testing.T) {
	sess := New(testCatalog())

	if !sess.IsSectionComplete("doesNotExist") {
		t.Error("Section without catalog questions should be vacuously complete")
	}
	if prompts := sess.MissingPrompts("doesNotExist"); len(prompts) != 0 {
		t.Errorf("Expected no missing prompts, got %v", prompts)
	}
}

func TestCanNavigateToGate(t *testing.T) {
	sess := New(testCatalog())
	sess.Current = "s2"

	tests := []struct {
		target string
		want   bool
	}{
		{catalog.SectionOrganization, true}, // backward always allowed
		{"s1", true},
		{"s2", true},
		{"s3", true},  // one ahead
		{"s4", false}, // two ahead
		{"s6", false},
		{"ghost", false},
	}
	for _, tt := range tests {
		if got := sess.CanNavigateTo(tt.target); got != tt.want {
			t.Errorf("CanNavigateTo(%s) = %v, want %v", tt.target, got, tt.want)
		}
	}

	// A previously completed section is reachable regardless of distance.
	sess.Completed["s5"] = true
	if !sess.CanNavigateTo("s5") {
		t.Error("Completed section should be reachable")
	}
}

func TestNavigateToRefusedIsNoOp(t *testing.T) {
	sess := New(testCatalog())
	sess.Current = "s1"

	if sess.NavigateTo("s4") {
		t.Error("Expected gated navigation to be refused")
	}
	if sess.Current != "s1" {
		t.Errorf("Refused navigation moved the session to %s", sess.Current)
	}

	if !sess.NavigateTo("s2") {
		t.Error("Expected navigation one ahead to be allowed")
	}
	if sess.Current != "s2" {
		t.Errorf("Current = %s, want s2", sess.Current)
	}
}

func TestAdvance(t *testing.T) {
	sess := New(testCatalog())
	sess.Current = "s1"

	ok, missing := sess.Advance()
	if ok {
		t.Fatal("Expected Advance to refuse an incomplete section")
	}
	if len(missing) != 2 {
		t.Errorf("Expected 2 missing prompts, got %v", missing)
	}
	if sess.Current != "s1" || sess.Completed["s1"] {
		t.Error("Refused Advance must not change state")
	}

	sess.Select("s1", "q1", "A")
	sess.Select("s1", "q2", "X")
	ok, missing = sess.Advance()
	if !ok || missing != nil {
		t.Fatalf("Expected Advance to succeed, got ok=%v missing=%v", ok, missing)
	}
	if !sess.Completed["s1"] {
		t.Error("Expected s1 marked complete")
	}
	if sess.Current != "s2" {
		t.Errorf("Current = %s, want s2", sess.Current)
	}
}

func TestAdvanceOnLastSectionStays(t *testing.T) {
	sess := New(testCatalog())
	sess.Current = "s6"
	sess.Select("s6", "s6q", "Oui")

	ok, _ := sess.Advance()
	if !ok {
		t.Fatal("Expected Advance to succeed")
	}
	if sess.Current != "s6" {
		t.Errorf("Current = %s, want s6 (no section after the last)", sess.Current)
	}
	if !sess.Completed["s6"] {
		t.Error("Expected s6 marked complete")
	}
}

func TestRetreat(t *testing.T) {
	sess := New(testCatalog())
	sess.Current = "s2"

	sess.Retreat()
	if sess.Current != "s1" {
		t.Errorf("Current = %s, want s1", sess.Current)
	}

	sess.Current = catalog.SectionOrganization
	sess.Retreat()
	if sess.Current != catalog.SectionOrganization {
		t.Error("Retreat on the first section should be a no-op")
	}
}

func TestReportReady(t *testing.T) {
	sess := New(testCatalog())
	if sess.ReportReady() {
		t.Error("Fresh session should not be report-ready")
	}

	for _, id := range []string{"s1", "s2", "s3", "s4", "s5", "s6"} {
		sess.Completed[id] = true
	}
	if !sess.ReportReady() {
		t.Error("Expected report-ready with all functional sections completed")
	}
}

func TestReset(t *testing.T) {
	sess := New(testCatalog())
	oldID := sess.ID
	sess.Current = "s3"
	sess.Completed["s1"] = true
	sess.Select("s1", "q1", "A")
	sess.SetOrgField(OrgFieldName, "ONG Lumière")

	sess.Reset()

	if sess.Current != catalog.SectionOrganization {
		t.Errorf("Current = %s, want %s", sess.Current, catalog.SectionOrganization)
	}
	if len(sess.Completed) != 0 || len(sess.Responses) != 0 {
		t.Error("Expected cleared state after reset")
	}
	if sess.Org != (OrgInfo{}) {
		t.Errorf("Expected empty profile, got %+v", sess.Org)
	}
	if sess.ID == oldID {
		t.Error("Expected a fresh session id after reset")
	}
}

func TestOnChangeNotifications(t *testing.T) {
	sess := New(testCatalog())
	calls := 0
	sess.OnChange(func() { calls++ })

	sess.Select("s1", "q1", "A")        // 1
	sess.SetOrgField(OrgFieldName, "x") // 2
	sess.Retreat()                      // no-op on first section, no call
	sess.NavigateTo("ghost")            // unknown, no call
	sess.NavigateTo("s1")               // 3

	if calls != 3 {
		t.Errorf("Expected 3 change notifications, got %d", calls)
	}
}

func TestBindNormalizesRehydratedState(t *testing.T) {
	cat := testCatalog()
	sess := &Session{Current: "ghost"}
	sess.Bind(cat)

	if sess.Current != catalog.SectionOrganization {
		t.Errorf("Current = %s, want fallback to first section", sess.Current)
	}
	if sess.Completed == nil || sess.Responses == nil {
		t.Error("Expected maps allocated by Bind")
	}
}

func TestValidateMarksCompleteInPlace(t *testing.T) {
	sess := New(testCatalog())

	if sess.Validate("s1") {
		t.Error("Expected Validate to refuse an incomplete section")
	}
	sess.Select("s1", "q1", "A")
	if sess.Validate("s1") {
		t.Error("Expected Validate to refuse with q2 unanswered")
	}
	sess.Select("s1", "q2", "X")

	if !sess.Validate("s1") {
		t.Error("Expected Validate to accept a complete section")
	}
	if !sess.Completed["s1"] {
		t.Error("Expected s1 marked complete")
	}
	if sess.Current != catalog.SectionOrganization {
		t.Errorf("Validate moved the current section to %s", sess.Current)
	}
	if sess.Validate("ghost") {
		t.Error("Expected Validate to refuse an unknown section")
	}
}
