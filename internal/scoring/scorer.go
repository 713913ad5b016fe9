package scoring

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// defaultScore is assigned to every unit when the job context is empty and no
// meaningful comparison is possible.
const defaultScore = 0.5

// ScoredUnit pairs a content unit with its relevance score and rank.
type ScoredUnit struct {
	Unit  types.ContentUnit `json:"unit"`
	Score float64           `json:"score"`
	Rank  int               `json:"rank"`
}

// ScoreSet is the result of scoring a batch of units against one context.
type ScoreSet struct {
	Units []ScoredUnit `json:"units"`
	Mode  Mode         `json:"mode"`
	// LowConfidence is set when the context was empty and every unit got the
	// default score.
	LowConfidence bool `json:"low_confidence,omitempty"`
}

// Scorer scores content units against a job context. Construct one at
// process start and pass it by reference into each request's pipeline; it is
// safe for concurrent use as long as its embedder is.
type Scorer struct {
	embedder Embedder
}

// NewScorer creates a scorer over the given embedding backend.
func NewScorer(embedder Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Mode reports which embedding backend the scorer uses.
func (s *Scorer) Mode() Mode { return s.embedder.Mode() }

// ScoreUnits scores every unit against the context and returns them sorted
// by descending score. Ties are broken by ascending origin index; this
// ordering is load-bearing for reproducibility.
//
// Empty units yields an empty set. An empty context yields the default score
// for every unit with LowConfidence set.
func (s *Scorer) ScoreUnits(ctx context.Context, units []types.ContentUnit, jobContext string) (*ScoreSet, error) {
	set := &ScoreSet{Mode: s.embedder.Mode(), Units: []ScoredUnit{}}
	if len(units) == 0 {
		return set, nil
	}

	if strings.TrimSpace(jobContext) == "" {
		set.LowConfidence = true
		for _, unit := range units {
			set.Units = append(set.Units, ScoredUnit{Unit: unit, Score: defaultScore})
		}
		sortAndRank(set.Units)
		return set, nil
	}

	texts := make([]string, 0, len(units)+1)
	texts = append(texts, jobContext)
	for _, unit := range units {
		texts = append(texts, unit.Text)
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, &Error{Message: "failed to embed texts", Cause: err}
	}

	contextVec := vectors[0]
	for i, unit := range units {
		set.Units = append(set.Units, ScoredUnit{
			Unit:  unit,
			Score: clampScore(cosineSimilarity(vectors[i+1], contextVec)),
		})
	}
	sortAndRank(set.Units)
	return set, nil
}

// DocumentScore computes the similarity of the concatenated document text to
// the context. Used only for reporting, never for fitting decisions.
func (s *Scorer) DocumentScore(ctx context.Context, fullText, jobContext string) (float64, error) {
	if strings.TrimSpace(fullText) == "" || strings.TrimSpace(jobContext) == "" {
		return defaultScore, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{fullText, jobContext})
	if err != nil {
		return 0, &Error{Message: "failed to embed texts", Cause: err}
	}
	return clampScore(cosineSimilarity(vectors[0], vectors[1])), nil
}

// sortAndRank orders units by descending score, ties by ascending origin
// index (first-seen wins the higher rank), then assigns ranks 1..n.
func sortAndRank(units []ScoredUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].Score != units[j].Score {
			return units[i].Score > units[j].Score
		}
		return units[i].Unit.OriginIndex < units[j].Unit.OriginIndex
	})
	for i := range units {
		units[i].Rank = i + 1
	}
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Zero-length or mismatched vectors score 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// clampScore forces a similarity into [0,1]; NaN clamps to 0.
func clampScore(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
