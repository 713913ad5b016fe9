package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/scoring"
	"github.com/jonathan/resume-optimizer/internal/types"
)

func lexicalPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	return New(cfg, scoring.NewScorer(scoring.NewLexicalEmbedder()))
}

func TestRunEndToEnd(t *testing.T) {
	p := lexicalPipeline(t)
	doc := validDocument()

	var steps []string
	result, err := p.Run(context.Background(), Options{
		Document:   doc,
		JobContext: "Looking for an engineer with CI/CD and cost optimization experience",
		OnProgress: func(event ProgressEvent) {
			steps = append(steps, event.Step)
			assert.NotEmpty(t, event.RunID)
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, scoring.ModeLexical, result.ScoringMode)
	assert.False(t, result.LowConfidence)
	require.NotNil(t, result.Fit)

	// A three-bullet resume fits a US letter page without any trimming.
	assert.Equal(t, types.StateFitted, result.Fit.State)
	assert.True(t, result.Fit.FitsOnSinglePage)
	assert.Equal(t, 0, result.Fit.StyleProfileUsed)
	assert.Empty(t, result.Fit.RemovedUnits)

	assert.Equal(t, 3, result.CategoryStats.Total)
	assert.Equal(t, []string{"validate", "score", "classify", "select", "fit"}, steps)

	// Every surviving unit carries a score from this run.
	for _, section := range result.Fit.FinalDocument.Sections {
		for _, entry := range section.Entries {
			for _, unit := range entry.Units() {
				assert.True(t, unit.Scored)
			}
		}
	}

	// The input document is untouched.
	assert.Equal(t, 3, doc.UnitCount())
}

func TestRunRejectsInvalidDocument(t *testing.T) {
	p := lexicalPipeline(t)
	doc := validDocument()
	doc.Name = ""

	_, err := p.Run(context.Background(), Options{Document: doc, JobContext: "job"})
	require.Error(t, err)

	var invalid *InvalidDocumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestRunEmptyJobContextLowConfidence(t *testing.T) {
	p := lexicalPipeline(t)

	result, err := p.Run(context.Background(), Options{
		Document:   validDocument(),
		JobContext: "  ",
	})
	require.NoError(t, err)

	assert.True(t, result.LowConfidence)
	assert.Equal(t, 0.5, result.DocumentScore)
}

func TestRunMaxUnitsPerEntryShrinksEntries(t *testing.T) {
	p := lexicalPipeline(t)
	doc := validDocument()

	result, err := p.Run(context.Background(), Options{
		Document:         doc,
		JobContext:       "engineering job",
		MaxUnitsPerEntry: 1,
	})
	require.NoError(t, err)

	for _, section := range result.Fit.FinalDocument.Sections {
		for _, entry := range section.Entries {
			assert.LessOrEqual(t, len(entry.Units()), 1)
		}
	}
}

func TestRunComparisonReportsScores(t *testing.T) {
	p := lexicalPipeline(t)

	result, err := p.Run(context.Background(), Options{
		Document:   validDocument(),
		JobContext: "Looking for an engineer who maintained CI pipelines",
	})
	require.NoError(t, err)

	c := result.Comparison
	assert.GreaterOrEqual(t, c.OptimizedScore, 0.0)
	assert.LessOrEqual(t, c.OptimizedScore, 100.0)
	assert.InDelta(t, c.OptimizedScore-c.OriginalScore, c.Improvement, 0.11)
	assert.NotEmpty(t, c.Message)
}

func TestTopUnitsAverage(t *testing.T) {
	doc := validDocument()
	scores := map[int]float64{0: 0.9, 1: 0.6, 2: 0.3}

	// First three units in presentation order: origins 0, 1, 2.
	avg := topUnitsAverage(doc, scores)
	assert.InDelta(t, (0.9+0.6+0.3)/3, avg, 1e-9)
}

func TestTopUnitsAverageEmptyDocument(t *testing.T) {
	doc := &types.Document{Name: "Jane", Contact: "j@e.com"}
	assert.Equal(t, 0.0, topUnitsAverage(doc, nil))
}
