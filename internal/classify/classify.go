// Package classify assigns each content unit to one of a closed set of
// semantic categories using keyword and pattern signals. Classification is
// purely lexical and independent of layout and scoring.
package classify

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

const (
	// keywordWeight is the signal weight of a keyword trigger.
	keywordWeight = 1
	// patternWeight is the signal weight of a regex pattern match. Patterns
	// are stronger signals than keywords.
	patternWeight = 2
)

// indicators holds the trigger sets for one category.
type indicators struct {
	keywords []string
	patterns []*regexp.Regexp
}

// categoryIndicators maps each category to its trigger sets. Matching runs
// against lowercased unit text.
var categoryIndicators = map[types.Category]indicators{
	types.CategoryAchievement: {
		keywords: []string{
			"increased", "decreased", "improved", "reduced", "generated",
			"saved", "achieved", "exceeded", "delivered", "launched",
			"grew", "boosted", "optimized", "accelerated", "won",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\d+%`),
			regexp.MustCompile(`\$\d+[kmb]?`),
			regexp.MustCompile(`\d+x`),
			regexp.MustCompile(`\d+\s*(million|thousand|billion)`),
		},
	},
	types.CategoryLeadership: {
		keywords: []string{
			"led", "managed", "supervised", "mentored", "coached",
			"directed", "coordinated", "guided", "trained", "hired",
			"onboarded", "team", "cross-functional", "stakeholder",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`team of \d+`),
			regexp.MustCompile(`led \d+ (engineers|developers|analysts|designers)`),
		},
	},
	types.CategoryTechnical: {
		keywords: []string{
			"developed", "built", "implemented", "designed", "architected",
			"engineered", "coded", "programmed", "deployed", "integrated",
			"configured", "automated", "migrated", "refactored",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(python|java|go|react|sql|aws|docker|kubernetes)\b`),
			regexp.MustCompile(`using (python|go|react|aws|docker)`),
		},
	},
	types.CategoryProject: {
		keywords: []string{
			"project", "initiative", "campaign", "program", "product",
			"system", "platform", "application", "tool", "feature",
		},
	},
	types.CategoryResponsibility: {
		keywords: []string{
			"responsible for", "duties include", "maintained", "monitored",
			"supported", "assisted", "handled", "processed", "conducted",
			"performed", "ensured", "managed day-to-day",
		},
	},
	types.CategoryEducation: {
		keywords: []string{
			"certified", "certification", "coursework", "studied",
			"graduated", "degree", "thesis", "gpa",
		},
	},
}

// Classify assigns a category to one unit of text. The category is the
// argmax of summed trigger weights; all-zero defaults to Responsibility, and
// non-zero ties fall to the earlier category in the fixed priority order.
func Classify(text string) types.Category {
	lower := strings.ToLower(text)

	best := types.CategoryResponsibility
	bestScore := 0
	for _, category := range types.CategoryPriority() {
		ind := categoryIndicators[category]

		score := 0
		for _, keyword := range ind.keywords {
			if strings.Contains(lower, keyword) {
				score += keywordWeight
			}
		}
		for _, pattern := range ind.patterns {
			if pattern.MatchString(lower) {
				score += patternWeight
			}
		}

		// Strictly greater keeps the priority order as the tie-break.
		if score > bestScore {
			bestScore = score
			best = category
		}
	}

	return best
}

// ClassifyUnits annotates every unit with its category, in place.
func ClassifyUnits(units []types.ContentUnit) {
	for i := range units {
		units[i].Category = Classify(units[i].Text)
	}
}

// Stats summarizes the category distribution of a set of units.
type Stats struct {
	Total       int                        `json:"total"`
	Counts      map[types.Category]int     `json:"counts"`
	Percentages map[types.Category]float64 `json:"percentages"`
}

// CategoryStats computes per-category counts and percentages.
func CategoryStats(units []types.ContentUnit) Stats {
	stats := Stats{
		Total:       len(units),
		Counts:      make(map[types.Category]int),
		Percentages: make(map[types.Category]float64),
	}

	for _, unit := range units {
		stats.Counts[unit.Category]++
	}
	for _, category := range types.CategoryPriority() {
		if stats.Total > 0 {
			stats.Percentages[category] = float64(stats.Counts[category]) / float64(stats.Total) * 100
		}
	}
	return stats
}
