package layout

import (
	"github.com/jonathan/resume-optimizer/internal/types"
)

// DocumentMeasurement is the aggregate measurement of a whole document at one
// compression level.
type DocumentMeasurement struct {
	TotalHeight float64
	LineCount   int
	// Degraded is set if any block was measured with the average-width
	// heuristic rather than the font table.
	Degraded bool
}

// Fits reports whether the measured document fits the page capacity.
func (m DocumentMeasurement) Fits(capacity types.PageCapacity) bool {
	return m.TotalHeight <= capacity.ContentHeight()
}

// MeasureDocument sums the heights of the header, summary and every section,
// entry and content unit at the given style. The walk mirrors what the
// renderer produces: header block, then per section a name line plus entries,
// each entry its header lines plus wrapped unit lines.
func MeasureDocument(doc *types.Document, style types.StyleProfile, capacity types.PageCapacity) DocumentMeasurement {
	var m DocumentMeasurement
	width := capacity.ContentWidth()
	lineHeight := style.LineHeight()

	// Name, title and contact lines.
	m.LineCount += headerLines
	m.TotalHeight += float64(headerLines) * lineHeight

	if doc.Summary != "" {
		summary := Measure(doc.Summary, style, width)
		m.LineCount += summary.LineCount
		m.TotalHeight += summary.Height
		m.Degraded = m.Degraded || summary.Degraded
	}

	for i := range doc.Sections {
		section := &doc.Sections[i]
		m.TotalHeight += style.SectionSpacing

		// Section name line.
		m.LineCount++
		m.TotalHeight += lineHeight

		for _, entry := range section.Entries {
			m.LineCount += entry.HeaderLines()
			m.TotalHeight += float64(entry.HeaderLines()) * lineHeight

			for _, unit := range entry.Units() {
				unitM := Measure(unit.Text, style, width)
				m.LineCount += unitM.LineCount
				m.TotalHeight += unitM.Height
				m.Degraded = m.Degraded || unitM.Degraded
			}

			m.TotalHeight += style.EntrySpacing
		}
	}

	return m
}
