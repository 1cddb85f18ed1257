package session

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Answer is the value stored for one answered question. It is a tagged
// union: single-mode questions hold exactly one label, multi-mode questions
// hold the set of selected labels (possibly empty). The JSON form matches
// the persisted document shape: a bare string for single answers, a list of
// strings for multi answers.
type Answer struct {
	Labels []string
	Multi  bool
}

// SingleAnswer builds the answer of a single-mode question. An empty label
// yields an empty answer.
func SingleAnswer(label string) Answer {
	if label == "" {
		return Answer{}
	}
	return Answer{Labels: []string{label}}
}

// MultiAnswer builds the answer of a multi-mode question.
func MultiAnswer(labels ...string) Answer {
	a := Answer{Multi: true}
	for _, l := range labels {
		a = a.Toggle(l)
	}
	return a
}

// Empty reports whether no option is selected.
func (a Answer) Empty() bool {
	return len(a.Labels) == 0
}

// Has reports whether the given option label is selected.
func (a Answer) Has(label string) bool {
	for _, l := range a.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Toggle flips membership of a label in a multi answer and returns the
// updated value. Duplicate entries never occur.
func (a Answer) Toggle(label string) Answer {
	out := Answer{Multi: true}
	found := false
	for _, l := range a.Labels {
		if l == label {
			found = true
			continue
		}
		out.Labels = append(out.Labels, l)
	}
	if !found {
		out.Labels = append(out.Labels, label)
	}
	return out
}

// MarshalJSON encodes single answers as a string and multi answers as a
// string list, mirroring the stored document format.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		if a.Labels == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(a.Labels)
	}
	if a.Empty() {
		return json.Marshal("")
	}
	return json.Marshal(a.Labels[0])
}

// UnmarshalJSON accepts either encoding produced by MarshalJSON.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = SingleAnswer(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("answer must be a string or a string list: %w", err)
	}
	*a = MultiAnswer(list...)
	return nil
}

// ResponseStore maps section id to question id to the recorded answer.
type ResponseStore map[string]map[string]Answer

// Get returns the answer recorded for a question, if any.
func (r ResponseStore) Get(sectionID, questionID string) (Answer, bool) {
	qs, ok := r[sectionID]
	if !ok {
		return Answer{}, false
	}
	a, ok := qs[questionID]
	return a, ok
}

func (r ResponseStore) set(sectionID, questionID string, a Answer) {
	qs, ok := r[sectionID]
	if !ok {
		qs = make(map[string]Answer)
		r[sectionID] = qs
	}
	qs[questionID] = a
}

// Org field keys, also used in the persisted document.
const (
	OrgFieldName    = "name"
	OrgFieldType    = "type"
	OrgFieldSize    = "size"
	OrgFieldSector  = "sector"
	OrgFieldCountry = "country"
)

// OrgFields lists the organization profile fields in display order.
var OrgFields = []string{OrgFieldName, OrgFieldType, OrgFieldSize, OrgFieldSector, OrgFieldCountry}

var orgFieldLabels = map[string]string{
	OrgFieldName:    "Nom de l'organisation",
	OrgFieldType:    "Type d'organisation",
	OrgFieldSize:    "Taille de l'organisation",
	OrgFieldSector:  "Secteur d'activité",
	OrgFieldCountry: "Pays",
}

// OrgFieldLabel returns the display name of an organization profile field.
func OrgFieldLabel(field string) string {
	if l, ok := orgFieldLabels[field]; ok {
		return l
	}
	return field
}

// OrgInfo is the organization profile collected by the pseudo-section.
// All five fields are required for the section to count as complete.
type OrgInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    string `json:"size"`
	Sector  string `json:"sector"`
	Country string `json:"country"`
}

// Field returns the value of a profile field by key.
func (o OrgInfo) Field(field string) string {
	switch field {
	case OrgFieldName:
		return o.Name
	case OrgFieldType:
		return o.Type
	case OrgFieldSize:
		return o.Size
	case OrgFieldSector:
		return o.Sector
	case OrgFieldCountry:
		return o.Country
	}
	return ""
}

// Set overwrites a profile field by key. Unknown keys are ignored and
// reported as false.
func (o *OrgInfo) Set(field, value string) bool {
	switch field {
	case OrgFieldName:
		o.Name = value
	case OrgFieldType:
		o.Type = value
	case OrgFieldSize:
		o.Size = value
	case OrgFieldSector:
		o.Sector = value
	case OrgFieldCountry:
		o.Country = value
	default:
		return false
	}
	return true
}

// Complete reports whether every profile field is non-empty.
func (o OrgInfo) Complete() bool {
	return len(o.Missing()) == 0
}

// Missing returns the display names of the profile fields still empty.
func (o OrgInfo) Missing() []string {
	var missing []string
	for _, f := range OrgFields {
		if strings.TrimSpace(o.Field(f)) == "" {
			missing = append(missing, OrgFieldLabel(f))
		}
	}
	return missing
}
