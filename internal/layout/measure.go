// Package layout provides deterministic text measurement for the one-page
// fitting engine. The height model here must stay consistent with the font
// metrics the downstream renderer uses, or the single-page guarantee is void.
package layout

import (
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// WidthTableVersion identifies the character-width table. Measurement is a
// pure function of its inputs plus this table; bump the version whenever the
// ratios change.
const WidthTableVersion = 1

const (
	// defaultCharWidth is the average width ratio used for characters (or
	// whole fonts) missing from the table.
	defaultCharWidth = 0.5
	// spaceWidth is the width ratio of a space in the known fonts.
	spaceWidth = 0.278
	// headerLines is the rendered footprint of the document header: name,
	// title and contact lines.
	headerLines = 3
)

// fontWidthTables maps font name to per-character width ratios (width in
// points per point of font size). Fixed and versioned; no runtime font
// probing.
var fontWidthTables = map[string]map[rune]float64{
	"Helvetica": {
		' ': 0.278, 'i': 0.278, 'j': 0.278, 'l': 0.278, 't': 0.278,
		'f': 0.333, 'r': 0.333, 'I': 0.278,
		'm': 0.833, 'w': 0.722, 'M': 0.833, 'W': 0.944,
		'.': 0.278, ',': 0.278, ':': 0.278, ';': 0.278,
		'-': 0.333, '(': 0.333, ')': 0.333,
	},
}

// Measurement is the result of measuring one block of text.
type Measurement struct {
	LineCount int
	Height    float64
	// Degraded is set when the font was missing from the width table and the
	// average-width heuristic was used instead.
	Degraded bool
}

// Measure wraps text at maxWidth (inches) under the given style and returns
// the wrapped line count and occupied height. Same inputs always produce the
// same output. A single word wider than maxWidth is hyphenated or
// force-broken, never looped on.
func Measure(text string, style types.StyleProfile, maxWidth float64) Measurement {
	widths, known := fontWidthTables[style.FontName]
	degraded := !known

	text = strings.TrimSpace(text)
	if text == "" || maxWidth <= 0 {
		return Measurement{LineCount: 0, Height: 0, Degraded: degraded}
	}

	lines := wrapText(text, style.FontSize, maxWidth, widths)
	return Measurement{
		LineCount: len(lines),
		Height:    float64(len(lines)) * style.LineHeight(),
		Degraded:  degraded,
	}
}

// textWidth returns the width of text in inches at the given font size.
func textWidth(text string, fontSize float64, widths map[rune]float64) float64 {
	total := 0.0
	for _, r := range text {
		ratio := defaultCharWidth
		if widths != nil {
			if w, ok := widths[r]; ok {
				ratio = w
			}
		}
		total += ratio
	}
	return total * fontSize / 72.0
}

// wrapText breaks text into lines no wider than maxWidth inches.
func wrapText(text string, fontSize, maxWidth float64, widths map[rune]float64) []string {
	words := strings.Fields(text)
	lines := make([]string, 0, 4)
	current := ""
	currentWidth := 0.0
	spaceW := spaceWidth * fontSize / 72.0

	for _, word := range words {
		wordWidth := textWidth(word, fontSize, widths)

		// A word wider than the whole line gets hyphenated into fitting
		// chunks before normal flow resumes with the remainder.
		if wordWidth > maxWidth {
			if current != "" {
				lines = append(lines, current)
				current = ""
				currentWidth = 0
			}
			chunks := breakWord(word, fontSize, maxWidth, widths)
			lines = append(lines, chunks[:len(chunks)-1]...)
			tail := chunks[len(chunks)-1]
			current = tail
			currentWidth = textWidth(tail, fontSize, widths)
			continue
		}

		if current == "" {
			current = word
			currentWidth = wordWidth
			continue
		}

		if currentWidth+spaceW+wordWidth <= maxWidth {
			current += " " + word
			currentWidth += spaceW + wordWidth
		} else {
			lines = append(lines, current)
			current = word
			currentWidth = wordWidth
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// breakWord splits an oversized word into hyphenated chunks that each fit in
// maxWidth. Every chunk keeps at least one rune, so this always terminates.
func breakWord(word string, fontSize, maxWidth float64, widths map[rune]float64) []string {
	runes := []rune(word)
	chunks := make([]string, 0, 2)

	for len(runes) > 0 {
		// Widest prefix (plus hyphen) that still fits.
		cut := len(runes)
		for cut > 1 && textWidth(string(runes[:cut])+"-", fontSize, widths) > maxWidth {
			cut--
		}
		if cut >= len(runes) {
			chunks = append(chunks, string(runes))
			break
		}
		chunks = append(chunks, string(runes[:cut])+"-")
		runes = runes[cut:]
	}

	return chunks
}
