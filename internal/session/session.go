// Package session implements the diagnostic session: the response store,
// the organization profile and the section gate that governs navigation
// through the questionnaire.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/earoncy/cyberdiag/internal/catalog"
)

// Session is the mutable state of one diagnostic run. All mutations go
// through its methods; an optional change callback lets the persistence
// layer shadow every mutation.
type Session struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Current   string          `json:"current_section"`
	Completed map[string]bool `json:"completed"`
	Responses ResponseStore   `json:"responses"`
	Org       OrgInfo         `json:"organization"`

	cat      *catalog.Catalog
	onChange func()
}

// New creates an empty session positioned on the first section.
func New(cat *catalog.Catalog) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Bind(cat)
	return s
}

// Bind attaches the catalog and normalizes state after construction or
// rehydration: nil maps are allocated and an unknown or empty current
// section falls back to the first section.
func (s *Session) Bind(cat *catalog.Catalog) {
	s.cat = cat
	if s.Completed == nil {
		s.Completed = make(map[string]bool)
	}
	if s.Responses == nil {
		s.Responses = make(ResponseStore)
	}
	if cat.Index(s.Current) < 0 {
		s.Current = cat.Sections()[0].ID
	}
}

// OnChange registers a callback invoked after every state mutation.
// Only one observer is supported; passing nil detaches it.
func (s *Session) OnChange(fn func()) {
	s.onChange = fn
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
	if s.onChange != nil {
		s.onChange()
	}
}

// Select records the selection of an option label for a question. For
// single-mode questions the previous value is replaced; for multi-mode
// questions membership of the label is toggled. Selections on unknown
// questions are ignored.
func (s *Session) Select(sectionID, questionID, label string) {
	q, ok := s.cat.Question(sectionID, questionID)
	if !ok {
		return
	}
	switch q.Mode {
	case catalog.ModeMulti:
		prev, found := s.Responses.Get(sectionID, questionID)
		if !found {
			prev = Answer{Multi: true}
		}
		s.Responses.set(sectionID, questionID, prev.Toggle(label))
	default:
		s.Responses.set(sectionID, questionID, SingleAnswer(label))
	}
	s.touch()
}

// SetOrgField overwrites one organization profile field.
func (s *Session) SetOrgField(field, value string) bool {
	if !s.Org.Set(field, value) {
		return false
	}
	s.touch()
	return true
}

// IsSectionComplete reports whether a section satisfies its completion
// rule: all five profile fields filled for the organization pseudo-section,
// every question answered non-empty for functional sections. Sections
// without catalog questions are vacuously complete.
func (s *Session) IsSectionComplete(sectionID string) bool {
	if sectionID == catalog.SectionOrganization {
		return s.Org.Complete()
	}
	for _, q := range s.cat.Questions(sectionID) {
		a, ok := s.Responses.Get(sectionID, q.ID)
		if !ok || a.Empty() {
			return false
		}
	}
	return true
}

// MissingPrompts returns the prompts of the unanswered questions of a
// section, or the display names of the empty profile fields for the
// organization pseudo-section. Empty when the section is complete.
func (s *Session) MissingPrompts(sectionID string) []string {
	if sectionID == catalog.SectionOrganization {
		return s.Org.Missing()
	}
	var missing []string
	for _, q := range s.cat.Questions(sectionID) {
		a, ok := s.Responses.Get(sectionID, q.ID)
		if !ok || a.Empty() {
			missing = append(missing, q.Prompt)
		}
	}
	return missing
}

// CanNavigateTo reports whether the gate allows jumping to a section:
// anything up to one position past the current section, plus any section
// already completed earlier.
func (s *Session) CanNavigateTo(sectionID string) bool {
	target := s.cat.Index(sectionID)
	if target < 0 {
		return false
	}
	if s.Completed[sectionID] {
		return true
	}
	return target <= s.cat.Index(s.Current)+1
}

// NavigateTo moves to the target section when the gate allows it. A gated
// target is a silent no-op reported as false.
func (s *Session) NavigateTo(sectionID string) bool {
	if !s.CanNavigateTo(sectionID) {
		return false
	}
	if s.Current != sectionID {
		s.Current = sectionID
		s.touch()
	}
	return true
}

// Advance marks the current section complete and moves forward when its
// completion rule is satisfied. Otherwise it reports the missing prompts
// and leaves the state untouched.
func (s *Session) Advance() (bool, []string) {
	if !s.IsSectionComplete(s.Current) {
		return false, s.MissingPrompts(s.Current)
	}
	s.Completed[s.Current] = true
	if i := s.cat.Index(s.Current); i+1 < len(s.cat.Sections()) {
		s.Current = s.cat.Sections()[i+1].ID
	}
	s.touch()
	return true, nil
}

// Validate marks a section complete when its completion rule is
// satisfied, without moving the current section. The scripted answer
// command uses it since it never navigates.
func (s *Session) Validate(sectionID string) bool {
	if s.cat.Index(sectionID) < 0 || !s.IsSectionComplete(sectionID) {
		return false
	}
	if !s.Completed[sectionID] {
		s.Completed[sectionID] = true
		s.touch()
	}
	return true
}

// Retreat moves to the previous section. Backward navigation is never
// gated; on the first section it is a no-op.
func (s *Session) Retreat() {
	if i := s.cat.Index(s.Current); i > 0 {
		s.Current = s.cat.Sections()[i-1].ID
		s.touch()
	}
}

// ReportReady reports whether every functional section has been completed,
// the condition under which the report command runs without --partial.
func (s *Session) ReportReady() bool {
	for _, sec := range s.cat.FunctionalSections() {
		if !s.Completed[sec.ID] {
			return false
		}
	}
	return true
}

// Reset reinitializes the session to its empty default: first section
// current, nothing completed, no responses, empty profile. A fresh id is
// assigned since the previous run is discarded.
func (s *Session) Reset() {
	now := time.Now().UTC()
	s.ID = uuid.New().String()
	s.CreatedAt = now
	s.Current = s.cat.Sections()[0].ID
	s.Completed = make(map[string]bool)
	s.Responses = make(ResponseStore)
	s.Org = OrgInfo{}
	s.touch()
}
