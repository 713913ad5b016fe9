// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/classify"
	"github.com/jonathan/resume-optimizer/internal/scoring"
	"github.com/jonathan/resume-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreSet outputs the top-scored units and the scoring mode used.
func (p *Printer) PrintScoreSet(set *scoring.ScoreSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Mode:  %s\n", set.Mode))
	if set.LowConfidence {
		sb.WriteString("Confidence: LOW (empty job context)\n")
	}
	sb.WriteString("\n")

	shown := len(set.Units)
	if shown > maxItemsToShow {
		shown = maxItemsToShow
	}
	for _, scored := range set.Units[:shown] {
		sb.WriteString(fmt.Sprintf("%2d. [%.2f] %s\n", scored.Rank, scored.Score, scored.Unit.Text))
	}
	if len(set.Units) > shown {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(set.Units)-shown))
	}

	p.printBox("RELEVANCE SCORES", sb.String())
}

// PrintCategoryStats outputs the category distribution of the content.
func (p *Printer) PrintCategoryStats(stats classify.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total units: %d\n\n", stats.Total))
	for _, category := range types.CategoryPriority() {
		sb.WriteString(fmt.Sprintf("%-15s %3d (%.1f%%)\n",
			category, stats.Counts[category], stats.Percentages[category]))
	}
	p.printBox("CATEGORY BREAKDOWN", sb.String())
}

// PrintFitResult outputs a human-readable summary of the fit outcome.
func (p *Printer) PrintFitResult(result *types.FitResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("State:       %s\n", result.State))
	sb.WriteString(fmt.Sprintf("Fits 1 page: %v\n", result.FitsOnSinglePage))
	sb.WriteString(fmt.Sprintf("Style level: %d\n", result.StyleProfileUsed))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", result.Iterations))
	sb.WriteString(fmt.Sprintf("Removed:     %d units\n", len(result.RemovedUnits)))
	if !result.FitsOnSinglePage {
		sb.WriteString(fmt.Sprintf("Est. pages:  %d\n", result.EstimatedPages))
	}
	if result.NonConvergent {
		sb.WriteString("WARNING: iteration cap reached before convergence\n")
	}
	if result.Degraded {
		sb.WriteString("WARNING: measurement used average-width fallback\n")
	}
	for _, warning := range result.Warnings {
		sb.WriteString(fmt.Sprintf("WARNING: %s\n", warning))
	}

	p.printBox("FIT RESULT", sb.String())
}

// PrintComparison outputs the before/after relevance comparison.
func (p *Printer) PrintComparison(c types.Comparison) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Original:  %.1f\n", c.OriginalScore))
	sb.WriteString(fmt.Sprintf("Optimized: %.1f\n", c.OptimizedScore))
	sb.WriteString(fmt.Sprintf("Change:    %+.1f (%+.1f%%)\n", c.Improvement, c.ImprovementPct))
	sb.WriteString(c.Message + "\n")
	p.printBox("BEFORE / AFTER", sb.String())
}
