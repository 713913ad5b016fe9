package pipeline

import (
	"fmt"

	"github.com/jonathan/resume-optimizer/internal/scoring"
)

// Score thresholds separating keep/improve/remove buckets.
const (
	keepThreshold    = 0.7
	improveThreshold = 0.5
)

// Suggestions buckets scored units by how well they serve the target job.
type Suggestions struct {
	Keep    []string `json:"keep"`
	Improve []string `json:"improve"`
	Remove  []string `json:"remove"`
	Notes   []string `json:"notes"`
}

// BuildSuggestions turns a score set into actionable advice: high scorers to
// keep, mid scorers to strengthen, low scorers to cut.
func BuildSuggestions(set *scoring.ScoreSet) Suggestions {
	s := Suggestions{
		Keep:    []string{},
		Improve: []string{},
		Remove:  []string{},
		Notes:   []string{},
	}

	for _, scored := range set.Units {
		switch {
		case scored.Score > keepThreshold:
			s.Keep = append(s.Keep, scored.Unit.Text)
		case scored.Score > improveThreshold:
			s.Improve = append(s.Improve, scored.Unit.Text)
		default:
			s.Remove = append(s.Remove, scored.Unit.Text)
		}
	}

	if len(s.Remove) > 0 {
		s.Notes = append(s.Notes, fmt.Sprintf("Consider removing %d low-relevance bullets", len(s.Remove)))
	}
	if len(s.Improve) > 0 {
		s.Notes = append(s.Notes, fmt.Sprintf("Try to strengthen %d medium-relevance bullets", len(s.Improve)))
	}
	if len(s.Keep) < 5 {
		s.Notes = append(s.Notes, "Add more relevant experience to strengthen your resume")
	}
	if set.LowConfidence {
		s.Notes = append(s.Notes, "Job context was empty; scores are defaults and low confidence")
	}

	return s
}
