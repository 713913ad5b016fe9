package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-optimizer/internal/classify"
	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/fit"
	"github.com/jonathan/resume-optimizer/internal/scoring"
	"github.com/jonathan/resume-optimizer/internal/selection"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds the inputs for one optimization run.
type Options struct {
	// Document is the parsed, validated input document. The run owns it
	// exclusively; callers must not mutate it concurrently.
	Document *types.Document
	// JobContext is the target job description text.
	JobContext string
	// MaxUnitsPerEntry caps selection per entry; zero means the original
	// unit count (selection then only reorders and balances).
	MaxUnitsPerEntry int
	// OnProgress, if set, receives step-by-step progress events.
	OnProgress ProgressCallback
}

// Result is the outcome of one optimization run.
type Result struct {
	RunID         string           `json:"run_id"`
	Fit           *types.FitResult `json:"fit"`
	ScoringMode   scoring.Mode     `json:"scoring_mode"`
	LowConfidence bool             `json:"low_confidence,omitempty"`
	DocumentScore float64          `json:"document_score"`
	Comparison    types.Comparison `json:"comparison"`
	CategoryStats classify.Stats   `json:"category_stats"`
}

// Pipeline wires the scorer, selector and fit engine for repeated runs.
// Construct once at process start; every method is safe for concurrent use,
// with each run operating on its own document.
type Pipeline struct {
	scorer   *scoring.Scorer
	selector *selection.Selector
	engine   *fit.Engine
	cfg      *config.Config
}

// New creates a pipeline from validated configuration and a scorer.
func New(cfg *config.Config, scorer *scoring.Scorer) *Pipeline {
	return &Pipeline{
		scorer:   scorer,
		selector: selection.NewSelector(cfg.DistributionTable()),
		engine:   fit.NewEngine(cfg.CompressionLadder(), cfg.Page, cfg.MaxIterations),
		cfg:      cfg,
	}
}

// Run executes one optimization: validate, score, classify, select, fit.
// Selection is a pre-filter: its output is the input to trimming and is
// never re-expanded.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := ValidateDocument(opts.Document); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	progress := func(step, message string) {
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{Step: step, Message: message, RunID: runID})
		}
	}

	doc := opts.Document.Clone()
	allUnits := collectUnits(doc)
	progress("validate", fmt.Sprintf("document valid: %d units in %d sections", len(allUnits), len(doc.Sections)))

	// Unit scoring and whole-document scoring are independent; run them
	// concurrently. Both return in stable order regardless of scheduling.
	var scoreSet *scoring.ScoreSet
	var docScore float64

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scoreSet, err = p.scorer.ScoreUnits(gCtx, allUnits, opts.JobContext)
		return err
	})
	g.Go(func() error {
		var err error
		docScore, err = p.scorer.DocumentScore(gCtx, doc.FullText(), opts.JobContext)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}
	progress("score", fmt.Sprintf("scored %d units (mode=%s)", len(scoreSet.Units), scoreSet.Mode))

	// Score lookup by origin index; classification annotates the same pass.
	scoreByOrigin := make(map[int]float64, len(scoreSet.Units))
	for _, scored := range scoreSet.Units {
		scoreByOrigin[scored.Unit.OriginIndex] = scored.Score
	}

	classified := make([]types.ContentUnit, len(allUnits))
	copy(classified, allUnits)
	classify.ClassifyUnits(classified)
	stats := classify.CategoryStats(classified)
	progress("classify", fmt.Sprintf("classified %d units", len(classified)))

	categoryByOrigin := make(map[int]types.Category, len(classified))
	for _, unit := range classified {
		categoryByOrigin[unit.OriginIndex] = unit.Category
	}

	// Per-entry quota selection. The cap never exceeds the entry's original
	// unit count, so selection can only shrink or reorder.
	p.selectPerEntry(doc, scoreByOrigin, categoryByOrigin, opts.MaxUnitsPerEntry)
	progress("select", fmt.Sprintf("selected %d units", doc.UnitCount()))

	fitResult := p.engine.Fit(ctx, doc)
	progress("fit", fmt.Sprintf("fit complete: state=%s level=%d removed=%d",
		fitResult.State, fitResult.StyleProfileUsed, len(fitResult.RemovedUnits)))

	comparison := buildComparison(opts.Document, fitResult.FinalDocument, scoreByOrigin)

	return &Result{
		RunID:         runID,
		Fit:           fitResult,
		ScoringMode:   scoreSet.Mode,
		LowConfidence: scoreSet.LowConfidence,
		DocumentScore: docScore,
		Comparison:    comparison,
		CategoryStats: stats,
	}, nil
}

// selectPerEntry rewrites each entry's unit list through the quota selector,
// carrying scores and categories onto the kept units.
func (p *Pipeline) selectPerEntry(doc *types.Document, scores map[int]float64, categories map[int]types.Category, maxUnits int) {
	for si := range doc.Sections {
		for _, entry := range doc.Sections[si].Entries {
			units := entry.Units()
			if len(units) == 0 {
				continue
			}

			scored := make([]selection.ScoredUnit, 0, len(units))
			for _, unit := range units {
				scored = append(scored, selection.ScoredUnit{
					Unit:     unit,
					Category: categories[unit.OriginIndex],
					Score:    scores[unit.OriginIndex],
				})
			}

			cap := len(units)
			if maxUnits > 0 && maxUnits < cap {
				cap = maxUnits
			}
			selected := p.selector.Select(scored, cap)
			for i := range selected {
				selected[i].Scored = true
			}
			entry.SetUnits(selected)
		}
	}
}

// collectUnits flattens every unit in document order.
func collectUnits(doc *types.Document) []types.ContentUnit {
	units := make([]types.ContentUnit, 0, doc.UnitCount())
	for si := range doc.Sections {
		for _, entry := range doc.Sections[si].Entries {
			units = append(units, entry.Units()...)
		}
	}
	return units
}

// buildComparison reports the improvement of the optimized presentation
// order over the original, using the average score of the top three units
// each way (what a recruiter reads first).
func buildComparison(original, optimized *types.Document, scores map[int]float64) types.Comparison {
	originalAvg := topUnitsAverage(original, scores)
	optimizedAvg := topUnitsAverage(optimized, scores)

	originalScore := originalAvg * 100
	optimizedScore := optimizedAvg * 100
	improvement := optimizedScore - originalScore
	improvementPct := 0.0
	if originalScore > 0 {
		improvementPct = improvement / originalScore * 100
	}

	message := "Resume already well-optimized"
	switch {
	case improvement > 10:
		message = fmt.Sprintf("Your resume is now %.0f%% more relevant", improvementPct)
	case improvement > 5:
		message = fmt.Sprintf("Your resume improved by %.0f%%", improvementPct)
	case improvement > 0:
		message = fmt.Sprintf("Slight improvement: +%.0f%%", improvementPct)
	}

	return types.Comparison{
		OriginalScore:  round1(originalScore),
		OptimizedScore: round1(optimizedScore),
		Improvement:    round1(improvement),
		ImprovementPct: round1(improvementPct),
		Message:        message,
	}
}

// topUnitsAverage averages the scores of the first three units in the
// document's presentation order.
func topUnitsAverage(doc *types.Document, scores map[int]float64) float64 {
	const topN = 3
	total := 0.0
	count := 0

	for si := range doc.Sections {
		for _, entry := range doc.Sections[si].Entries {
			for _, unit := range entry.Units() {
				if count >= topN {
					return total / float64(count)
				}
				total += scores[unit.OriginIndex]
				count++
			}
		}
	}

	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// decodeDocument decodes raw JSON into the typed document model.
func decodeDocument(data []byte) (*types.Document, error) {
	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
