// Package types provides type definitions for structured data used throughout the resume-optimizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// ContentUnit represents one atomic, independently removable piece of resume
// content (a bullet point). Units are scored once per optimization run and may
// be removed by the fit engine; their text is never rewritten by this core.
type ContentUnit struct {
	Text        string   `json:"text"`
	OriginIndex int      `json:"origin_index"`
	Score       float64  `json:"score,omitempty"`
	Category    Category `json:"category,omitempty"`
	Scored      bool     `json:"scored,omitempty"`
}

// EntryKind discriminates the entry variants within a section.
type EntryKind string

// Entry kinds supported by the document model.
const (
	KindExperience EntryKind = "experience"
	KindProject    EntryKind = "project"
	KindEducation  EntryKind = "education"
)

// Entry is a grouping of content units sharing immutable hard fields.
// Implementations are one of the tagged variants below; the interface keeps
// the hard-field/unit split enforced by the compiler.
type Entry interface {
	// ID returns the stable entry identifier.
	ID() string
	// Kind returns the entry variant tag.
	Kind() EntryKind
	// Units returns the ordered content units owned by the entry.
	Units() []ContentUnit
	// SetUnits replaces the unit list. Callers must only ever shrink it.
	SetUnits(units []ContentUnit)
	// HardFields returns the opaque immutable field values in a fixed order.
	HardFields() []string
	// HeaderLines returns how many rendered lines the hard fields occupy.
	HeaderLines() int
	// Clone returns a deep copy of the entry.
	Clone() Entry
}

// EntryCore holds the fields common to every entry variant.
type EntryCore struct {
	EntryID     string        `json:"id"`
	ContentList []ContentUnit `json:"units"`
}

// ID returns the stable entry identifier.
func (c *EntryCore) ID() string { return c.EntryID }

// Units returns the ordered content units owned by the entry.
func (c *EntryCore) Units() []ContentUnit { return c.ContentList }

// SetUnits replaces the unit list.
func (c *EntryCore) SetUnits(units []ContentUnit) { c.ContentList = units }

func (c *EntryCore) cloneCore() EntryCore {
	units := make([]ContentUnit, len(c.ContentList))
	copy(units, c.ContentList)
	return EntryCore{EntryID: c.EntryID, ContentList: units}
}

// ExperienceEntry represents one job. Company, title, location and date range
// are hard fields: the core never alters, reorders, or drops them.
type ExperienceEntry struct {
	EntryCore
	Company   string `json:"company"`
	Title     string `json:"title"`
	Location  string `json:"location,omitempty"`
	DateRange string `json:"date_range"`
}

// Kind returns KindExperience.
func (e *ExperienceEntry) Kind() EntryKind { return KindExperience }

// HardFields returns company, title, location and date range.
func (e *ExperienceEntry) HardFields() []string {
	return []string{e.Company, e.Title, e.Location, e.DateRange}
}

// HeaderLines returns the rendered header footprint: company/location line
// plus title/date line.
func (e *ExperienceEntry) HeaderLines() int { return 2 }

// Clone returns a deep copy of the entry.
func (e *ExperienceEntry) Clone() Entry {
	clone := *e
	clone.EntryCore = e.cloneCore()
	return &clone
}

// ProjectEntry represents one project or initiative.
type ProjectEntry struct {
	EntryCore
	Name      string `json:"name"`
	DateRange string `json:"date_range,omitempty"`
}

// Kind returns KindProject.
func (e *ProjectEntry) Kind() EntryKind { return KindProject }

// HardFields returns the project name and date range.
func (e *ProjectEntry) HardFields() []string {
	return []string{e.Name, e.DateRange}
}

// HeaderLines returns the rendered header footprint: the name line.
func (e *ProjectEntry) HeaderLines() int { return 1 }

// Clone returns a deep copy of the entry.
func (e *ProjectEntry) Clone() Entry {
	clone := *e
	clone.EntryCore = e.cloneCore()
	return &clone
}

// EducationEntry represents one degree.
type EducationEntry struct {
	EntryCore
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	DateRange    string `json:"date_range,omitempty"`
}

// Kind returns KindEducation.
func (e *EducationEntry) Kind() EntryKind { return KindEducation }

// HardFields returns institution, degree, field of study and date range.
func (e *EducationEntry) HardFields() []string {
	return []string{e.Institution, e.Degree, e.FieldOfStudy, e.DateRange}
}

// HeaderLines returns the rendered header footprint: institution line plus
// degree line.
func (e *EducationEntry) HeaderLines() int { return 2 }

// Clone returns a deep copy of the entry.
func (e *EducationEntry) Clone() Entry {
	clone := *e
	clone.EntryCore = e.cloneCore()
	return &clone
}

// Section is a named group of entries. Section display order is inherited
// from the input document and never reordered by the core.
type Section struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() Section {
	entries := make([]Entry, len(s.Entries))
	for i, entry := range s.Entries {
		entries[i] = entry.Clone()
	}
	return Section{Name: s.Name, Entries: entries}
}

// sectionJSON mirrors Section with raw entries for two-phase decoding.
type sectionJSON struct {
	Name    string            `json:"name"`
	Entries []json.RawMessage `json:"entries"`
}

// entryTag is the minimal shape needed to pick an entry variant.
type entryTag struct {
	Kind EntryKind `json:"kind"`
}

// UnmarshalJSON decodes a section, dispatching each entry on its "kind" tag.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw sectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Name = raw.Name
	s.Entries = make([]Entry, 0, len(raw.Entries))
	for i, entryData := range raw.Entries {
		var tag entryTag
		if err := json.Unmarshal(entryData, &tag); err != nil {
			return fmt.Errorf("section %q entry %d: %w", raw.Name, i, err)
		}

		var entry Entry
		switch tag.Kind {
		case KindExperience:
			entry = &ExperienceEntry{}
		case KindProject:
			entry = &ProjectEntry{}
		case KindEducation:
			entry = &EducationEntry{}
		default:
			return fmt.Errorf("section %q entry %d: unknown entry kind %q", raw.Name, i, tag.Kind)
		}

		if err := json.Unmarshal(entryData, entry); err != nil {
			return fmt.Errorf("section %q entry %d: %w", raw.Name, i, err)
		}
		s.Entries = append(s.Entries, entry)
	}

	return nil
}

// MarshalJSON encodes a section with each entry tagged by its kind.
func (s Section) MarshalJSON() ([]byte, error) {
	entries := make([]json.RawMessage, 0, len(s.Entries))
	for _, entry := range s.Entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}

		// Splice the kind tag into the entry object.
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, err
		}
		kind, err := json.Marshal(entry.Kind())
		if err != nil {
			return nil, err
		}
		obj["kind"] = kind

		tagged, err := json.Marshal(obj)
		if err != nil {
			return nil, err
		}
		entries = append(entries, tagged)
	}

	return json.Marshal(struct {
		Name    string            `json:"name"`
		Entries []json.RawMessage `json:"entries"`
	}{Name: s.Name, Entries: entries})
}

// Document is the whole resume: header hard fields plus ordered sections.
// A document is owned exclusively by one optimization run.
type Document struct {
	Name     string    `json:"name"`
	Contact  string    `json:"contact"`
	Summary  string    `json:"summary,omitempty"`
	Sections []Section `json:"sections"`
}

// Clone returns a deep copy of the document. The fit engine mutates only
// clones, so a cancelled run never exposes a torn document.
func (d *Document) Clone() *Document {
	sections := make([]Section, len(d.Sections))
	for i := range d.Sections {
		sections[i] = d.Sections[i].Clone()
	}
	return &Document{
		Name:     d.Name,
		Contact:  d.Contact,
		Summary:  d.Summary,
		Sections: sections,
	}
}

// Entry finds an entry by ID across all sections. Returns nil if not found.
func (d *Document) Entry(id string) Entry {
	for i := range d.Sections {
		for _, entry := range d.Sections[i].Entries {
			if entry.ID() == id {
				return entry
			}
		}
	}
	return nil
}

// UnitCount returns the total number of content units in the document.
func (d *Document) UnitCount() int {
	count := 0
	for i := range d.Sections {
		for _, entry := range d.Sections[i].Entries {
			count += len(entry.Units())
		}
	}
	return count
}

// FullText concatenates all unit texts, used for whole-document scoring.
func (d *Document) FullText() string {
	text := ""
	for i := range d.Sections {
		for _, entry := range d.Sections[i].Entries {
			for _, unit := range entry.Units() {
				if text != "" {
					text += " "
				}
				text += unit.Text
			}
		}
	}
	return text
}
