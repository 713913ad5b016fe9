// Package types provides type definitions for structured data used throughout the resume-optimizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// StyleProfile is one named point in a compression ladder. Spacing values are
// in inches, font size in points.
type StyleProfile struct {
	Name                 string  `json:"name"`
	FontName             string  `json:"font_name"`
	FontSize             float64 `json:"font_size"`
	LineHeightMultiplier float64 `json:"line_height_multiplier"`
	SectionSpacing       float64 `json:"section_spacing"`
	EntrySpacing         float64 `json:"entry_spacing"`
}

// LineHeight returns the height of a single rendered line in inches.
func (p StyleProfile) LineHeight() float64 {
	return p.FontSize / 72.0 * p.LineHeightMultiplier
}

// CompressionLadder is an ordered sequence of style profiles, each strictly
// more compact than the previous. Loaded once at startup and never mutated,
// so it is safe for concurrent reads.
type CompressionLadder struct {
	Levels []StyleProfile `json:"levels"`
}

// Level returns the profile at the given compression level.
func (l *CompressionLadder) Level(i int) StyleProfile { return l.Levels[i] }

// Len returns the number of compression levels.
func (l *CompressionLadder) Len() int { return len(l.Levels) }

// DefaultLadder returns the five-level ladder: spacing first, then line
// height, then font size. Compression always destroys less than removal, so
// the ladder is walked before any unit is trimmed.
func DefaultLadder() *CompressionLadder {
	return &CompressionLadder{Levels: []StyleProfile{
		{Name: "none", FontName: "Helvetica", FontSize: 10.5, LineHeightMultiplier: 1.25, SectionSpacing: 0.15, EntrySpacing: 0.08},
		{Name: "light", FontName: "Helvetica", FontSize: 10.5, LineHeightMultiplier: 1.15, SectionSpacing: 0.12, EntrySpacing: 0.06},
		{Name: "moderate", FontName: "Helvetica", FontSize: 10, LineHeightMultiplier: 1.1, SectionSpacing: 0.10, EntrySpacing: 0.05},
		{Name: "tight", FontName: "Helvetica", FontSize: 9.5, LineHeightMultiplier: 1.1, SectionSpacing: 0.08, EntrySpacing: 0.04},
		{Name: "aggressive", FontName: "Helvetica", FontSize: 9, LineHeightMultiplier: 1.05, SectionSpacing: 0.06, EntrySpacing: 0.03},
	}}
}

// PageCapacity describes the physical page the renderer will produce.
// Dimensions are in inches.
type PageCapacity struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Margins float64 `json:"margins"`
}

// ContentHeight returns the vertical space available for content.
func (p PageCapacity) ContentHeight() float64 {
	return p.Height - 2*p.Margins
}

// ContentWidth returns the horizontal space available for content.
func (p PageCapacity) ContentWidth() float64 {
	return p.Width - 2*p.Margins
}

// DefaultPageCapacity returns US letter with half-inch margins.
func DefaultPageCapacity() PageCapacity {
	return PageCapacity{Width: 8.5, Height: 11.0, Margins: 0.5}
}
