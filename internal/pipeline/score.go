package pipeline

import (
	"context"

	"github.com/jonathan/resume-optimizer/internal/scoring"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// ScoreReport is the scoring-only output: ranked units, the whole-document
// score, and improvement suggestions. No layout or trimming is involved.
type ScoreReport struct {
	Scores        *scoring.ScoreSet `json:"scores"`
	DocumentScore float64           `json:"document_score"`
	Suggestions   Suggestions       `json:"suggestions"`
}

// Score runs validation and relevance scoring without fitting.
func (p *Pipeline) Score(ctx context.Context, doc *types.Document, jobContext string) (*ScoreReport, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	set, err := p.scorer.ScoreUnits(ctx, collectUnits(doc), jobContext)
	if err != nil {
		return nil, err
	}

	docScore, err := p.scorer.DocumentScore(ctx, doc.FullText(), jobContext)
	if err != nil {
		return nil, err
	}

	return &ScoreReport{
		Scores:        set,
		DocumentScore: docScore,
		Suggestions:   BuildSuggestions(set),
	}, nil
}
