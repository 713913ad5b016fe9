// Package fit implements the one-page fitting engine: a deterministic state
// machine that walks a compression ladder and then trims the globally
// lowest-scored content units, one at a time, until the document fits a
// single page or nothing more can be done.
package fit

import (
	"context"
	"math"

	"github.com/jonathan/resume-optimizer/internal/layout"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// DefaultMaxIterations is the safety valve on the trim loop. It is not an
// expected termination path.
const DefaultMaxIterations = 50

// Engine fits documents to one page. It holds only read-only configuration
// shared across runs; each Fit call owns its document exclusively.
type Engine struct {
	ladder   *types.CompressionLadder
	capacity types.PageCapacity
	maxIters int
}

// NewEngine creates a fit engine over an immutable ladder and page capacity.
func NewEngine(ladder *types.CompressionLadder, capacity types.PageCapacity, maxIterations int) *Engine {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Engine{ladder: ladder, capacity: capacity, maxIters: maxIterations}
}

// Fit compresses and trims the document until it occupies a single page.
// Compression is always exhausted before any content is removed; once the
// ladder bottoms out, trimming removes the single lowest-scored unit per
// iteration and never relaxes compression. The input document is not
// mutated. Fit never fails for valid input: overflow, non-convergence and
// cancellation all come back as fields on the result.
func (e *Engine) Fit(ctx context.Context, doc *types.Document) *types.FitResult {
	working := doc.Clone()
	result := &types.FitResult{
		FinalDocument: working,
		RemovedUnits:  []types.RemovedUnit{},
		State:         types.StateMeasuring,
	}

	level := 0
	for {
		// Cancellation aborts at an iteration boundary; the working clone is
		// internally consistent, so no torn state escapes.
		select {
		case <-ctx.Done():
			finishOverflowed(result, e.measure(working, level), e.capacity, level)
			return result
		default:
		}

		if result.Iterations >= e.maxIters {
			result.NonConvergent = true
			finishOverflowed(result, e.measure(working, level), e.capacity, level)
			return result
		}
		result.Iterations++

		m := e.measure(working, level)
		result.Degraded = result.Degraded || m.Degraded

		if m.Fits(e.capacity) {
			result.State = types.StateFitted
			result.FitsOnSinglePage = true
			result.StyleProfileUsed = level
			result.EstimatedPages = 1
			collectEmptyEntryWarnings(result, working)
			return result
		}

		// Prefer compression: it destroys no content.
		if level+1 < e.ladder.Len() {
			result.State = types.StateCompressing
			level++
			continue
		}

		// Ladder exhausted: trim the globally lowest-scored unit.
		result.State = types.StateTrimming
		entryID, unitIdx, ok := lowestScoredUnit(working)
		if !ok {
			// Only hard fields and entry headers remain; overflow from
			// untrimmable content is reported, not forced.
			finishOverflowed(result, m, e.capacity, level)
			return result
		}

		entry := working.Entry(entryID)
		units := entry.Units()
		removed := units[unitIdx]
		remaining := make([]types.ContentUnit, 0, len(units)-1)
		remaining = append(remaining, units[:unitIdx]...)
		remaining = append(remaining, units[unitIdx+1:]...)
		entry.SetUnits(remaining)

		result.RemovedUnits = append(result.RemovedUnits, types.RemovedUnit{
			EntryID:   entryID,
			Unit:      removed,
			Iteration: result.Iterations,
		})
	}
}

// measure measures the working document at the given ladder level.
func (e *Engine) measure(doc *types.Document, level int) layout.DocumentMeasurement {
	return layout.MeasureDocument(doc, e.ladder.Level(level), e.capacity)
}

// lowestScoredUnit finds the content unit with the globally lowest score
// across the whole document. Score ties are broken by the higher (later)
// origin index: the unit least preferred in the final presentation order is
// removed first. Returns ok=false when no trimmable unit remains.
func lowestScoredUnit(doc *types.Document) (entryID string, unitIdx int, ok bool) {
	lowest := math.Inf(1)
	lowestOrigin := -1

	for si := range doc.Sections {
		for _, entry := range doc.Sections[si].Entries {
			for i, unit := range entry.Units() {
				if unit.Score < lowest ||
					(unit.Score == lowest && unit.OriginIndex > lowestOrigin) {
					lowest = unit.Score
					lowestOrigin = unit.OriginIndex
					entryID = entry.ID()
					unitIdx = i
					ok = true
				}
			}
		}
	}
	return entryID, unitIdx, ok
}

// finishOverflowed fills the terminal overflow fields: best document so far,
// maximum compression reached, and the estimated page count.
func finishOverflowed(result *types.FitResult, m layout.DocumentMeasurement, capacity types.PageCapacity, level int) {
	result.State = types.StateOverflowed
	result.FitsOnSinglePage = false
	result.StyleProfileUsed = level
	result.Degraded = result.Degraded || m.Degraded
	result.EstimatedPages = int(math.Ceil(m.TotalHeight / capacity.ContentHeight()))
	if result.EstimatedPages < 1 {
		result.EstimatedPages = 1
	}
	collectEmptyEntryWarnings(result, result.FinalDocument)
}

// collectEmptyEntryWarnings emits a warning for every entry trimmed down to
// zero units. The entry's hard fields stay visible; the entry is never
// deleted.
func collectEmptyEntryWarnings(result *types.FitResult, doc *types.Document) {
	for si := range doc.Sections {
		for _, entry := range doc.Sections[si].Entries {
			if len(entry.Units()) == 0 {
				result.Warnings = append(result.Warnings,
					"entry "+entry.ID()+" has no content units left after trimming")
			}
		}
	}
}
