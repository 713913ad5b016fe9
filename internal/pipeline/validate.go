package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/schemas"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// ValidateDocument checks the structural contract the upstream parser must
// honor: header hard fields present, every entry identified with populated
// hard fields, and unit origin indexes unique across the document.
func ValidateDocument(doc *types.Document) error {
	if doc == nil {
		return &InvalidDocumentError{Message: "document is nil"}
	}
	if strings.TrimSpace(doc.Name) == "" {
		return &InvalidDocumentError{Message: "missing header field: name"}
	}
	if strings.TrimSpace(doc.Contact) == "" {
		return &InvalidDocumentError{Message: "missing header field: contact"}
	}

	seenEntries := make(map[string]bool)
	seenOrigins := make(map[int]string)

	for si := range doc.Sections {
		section := &doc.Sections[si]
		if strings.TrimSpace(section.Name) == "" {
			return &InvalidDocumentError{Message: fmt.Sprintf("section %d has no name", si)}
		}

		for _, entry := range section.Entries {
			if entry == nil {
				return &InvalidDocumentError{Message: fmt.Sprintf("section %q contains a nil entry", section.Name)}
			}
			if strings.TrimSpace(entry.ID()) == "" {
				return &InvalidDocumentError{Message: fmt.Sprintf("section %q contains an entry without an ID", section.Name)}
			}
			if seenEntries[entry.ID()] {
				return &InvalidDocumentError{Message: fmt.Sprintf("duplicate entry ID %q", entry.ID())}
			}
			seenEntries[entry.ID()] = true

			if err := validateHardFields(entry); err != nil {
				return err
			}

			for _, unit := range entry.Units() {
				if strings.TrimSpace(unit.Text) == "" {
					return &InvalidDocumentError{Message: fmt.Sprintf("entry %q contains an empty content unit", entry.ID())}
				}
				if owner, dup := seenOrigins[unit.OriginIndex]; dup {
					return &InvalidDocumentError{Message: fmt.Sprintf(
						"origin index %d appears in both entry %q and entry %q", unit.OriginIndex, owner, entry.ID())}
				}
				seenOrigins[unit.OriginIndex] = entry.ID()
			}
		}
	}

	return nil
}

// validateHardFields checks the kind-specific required hard fields.
func validateHardFields(entry types.Entry) error {
	switch e := entry.(type) {
	case *types.ExperienceEntry:
		if e.Company == "" || e.Title == "" || e.DateRange == "" {
			return &InvalidDocumentError{Message: fmt.Sprintf("experience entry %q missing company, title, or date range", e.ID())}
		}
	case *types.ProjectEntry:
		if e.Name == "" {
			return &InvalidDocumentError{Message: fmt.Sprintf("project entry %q missing name", e.ID())}
		}
	case *types.EducationEntry:
		if e.Institution == "" || e.Degree == "" {
			return &InvalidDocumentError{Message: fmt.Sprintf("education entry %q missing institution or degree", e.ID())}
		}
	default:
		return &InvalidDocumentError{Message: fmt.Sprintf("entry %q has unknown kind %q", entry.ID(), entry.Kind())}
	}
	return nil
}

// ParseDocument validates raw JSON against the document schema and decodes
// it into the typed model, then applies structural validation.
func ParseDocument(data []byte) (*types.Document, error) {
	if err := schemas.ValidateDocument(data); err != nil {
		return nil, &InvalidDocumentError{Message: "document failed schema validation", Cause: err}
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, &InvalidDocumentError{Message: "document failed to decode", Cause: err}
	}

	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
