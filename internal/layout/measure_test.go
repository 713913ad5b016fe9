package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/types"
)

var testStyle = types.StyleProfile{
	Name:                 "test",
	FontName:             "Helvetica",
	FontSize:             10,
	LineHeightMultiplier: 1.2,
	SectionSpacing:       0.1,
	EntrySpacing:         0.05,
}

func TestMeasureEmptyText(t *testing.T) {
	m := Measure("", testStyle, 7.5)
	assert.Equal(t, 0, m.LineCount)
	assert.Equal(t, 0.0, m.Height)

	m = Measure("   \t  ", testStyle, 7.5)
	assert.Equal(t, 0, m.LineCount)
}

func TestMeasureSingleLine(t *testing.T) {
	m := Measure("short text", testStyle, 7.5)
	assert.Equal(t, 1, m.LineCount)
	assert.InDelta(t, testStyle.LineHeight(), m.Height, 1e-9)
	assert.False(t, m.Degraded)
}

func TestMeasureWrapsAtNarrowWidth(t *testing.T) {
	text := strings.Repeat("word ", 20)

	wide := Measure(text, testStyle, 7.5)
	narrow := Measure(text, testStyle, 1.0)

	assert.Greater(t, narrow.LineCount, wide.LineCount)
	assert.InDelta(t, float64(narrow.LineCount)*testStyle.LineHeight(), narrow.Height, 1e-9)
}

func TestMeasureDeterministic(t *testing.T) {
	text := "Implemented a distributed cache layer reducing p99 latency by 40%"
	first := Measure(text, testStyle, 3.0)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Measure(text, testStyle, 3.0))
	}
}

func TestMeasureUnknownFontDegrades(t *testing.T) {
	style := testStyle
	style.FontName = "ComicSans"

	m := Measure("hello world", style, 7.5)
	assert.True(t, m.Degraded)
	assert.Equal(t, 1, m.LineCount)
}

func TestBreakWordHyphenates(t *testing.T) {
	// A single word far wider than the line must split into hyphenated
	// chunks rather than loop or overflow.
	word := strings.Repeat("x", 200)
	chunks := breakWord(word, testStyle.FontSize, 1.0, fontWidthTables["Helvetica"])

	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(chunk, "-"), "chunk %d should end with a hyphen", i)
		assert.LessOrEqual(t, textWidth(chunk, testStyle.FontSize, fontWidthTables["Helvetica"]), 1.0)
	}

	// Reassembling the chunks minus hyphens gives back the word.
	joined := ""
	for _, chunk := range chunks {
		joined += strings.TrimSuffix(chunk, "-")
	}
	assert.Equal(t, word, joined)
}

func TestBreakWordTerminatesOnTinyWidth(t *testing.T) {
	// Width too small for even one rune plus hyphen: every chunk still keeps
	// at least one rune so the split always terminates.
	chunks := breakWord("abcdef", testStyle.FontSize, 0.001, fontWidthTables["Helvetica"])
	require.NotEmpty(t, chunks)

	total := 0
	for _, chunk := range chunks {
		total += len(strings.TrimSuffix(chunk, "-"))
	}
	assert.Equal(t, len("abcdef"), total)
}

func TestMeasureOversizedWordInFlow(t *testing.T) {
	text := "before " + strings.Repeat("y", 100) + " after"
	m := Measure(text, testStyle, 1.0)
	assert.Greater(t, m.LineCount, 2)
}

func measureTestDocument(unitTexts ...string) *types.Document {
	units := make([]types.ContentUnit, len(unitTexts))
	for i, text := range unitTexts {
		units[i] = types.ContentUnit{Text: text, OriginIndex: i}
	}
	return &types.Document{
		Name:    "Jane Doe",
		Contact: "jane@example.com",
		Sections: []types.Section{
			{
				Name: "Experience",
				Entries: []types.Entry{
					&types.ExperienceEntry{
						EntryCore: types.EntryCore{EntryID: "exp-1", ContentList: units},
						Company:   "Acme", Title: "Engineer", DateRange: "2020",
					},
				},
			},
		},
	}
}

func TestMeasureDocumentAccountsForStructure(t *testing.T) {
	doc := measureTestDocument("one line bullet")
	capacity := types.DefaultPageCapacity()

	m := MeasureDocument(doc, testStyle, capacity)

	// 3 header lines + 1 section name + 2 entry header lines + 1 unit line.
	assert.Equal(t, 7, m.LineCount)
	expected := 7*testStyle.LineHeight() + testStyle.SectionSpacing + testStyle.EntrySpacing
	assert.InDelta(t, expected, m.TotalHeight, 1e-9)
	assert.True(t, m.Fits(capacity))
}

func TestMeasureDocumentGrowsWithContent(t *testing.T) {
	small := MeasureDocument(measureTestDocument("a bullet"), testStyle, types.DefaultPageCapacity())
	large := MeasureDocument(
		measureTestDocument("a bullet", "another bullet", "yet another bullet"),
		testStyle, types.DefaultPageCapacity())

	assert.Greater(t, large.TotalHeight, small.TotalHeight)
	assert.Greater(t, large.LineCount, small.LineCount)
}

func TestMeasureDocumentSummaryCounted(t *testing.T) {
	doc := measureTestDocument("bullet")
	without := MeasureDocument(doc, testStyle, types.DefaultPageCapacity())

	doc.Summary = "A summary line."
	with := MeasureDocument(doc, testStyle, types.DefaultPageCapacity())

	assert.Greater(t, with.TotalHeight, without.TotalHeight)
}
