// Package selection chooses a priority-ordered subset of classified, scored
// content units under a size cap, balancing the category mix toward a target
// distribution without ever inventing content.
package selection

import (
	"sort"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// ScoredUnit is a classified, scored unit offered to the selector.
type ScoredUnit struct {
	Unit     types.ContentUnit
	Category types.Category
	Score    float64
}

// Selector selects balanced unit subsets. The distribution is fixed at
// construction and never mutated.
type Selector struct {
	distribution map[types.Category]float64
}

// NewSelector creates a selector with the given target distribution. A nil
// distribution uses the default table.
func NewSelector(distribution map[types.Category]float64) *Selector {
	if distribution == nil {
		distribution = types.DefaultDistribution()
	}
	return &Selector{distribution: distribution}
}

// Select returns at most cap units, approximating the target category mix:
//
//  1. Per-category targets are floor(cap * share).
//  2. Each category in priority order takes up to its target, highest score
//     first.
//  3. Remaining slots are filled in priority order from any unselected
//     units, highest score first.
//  4. Output is ordered by descending score (the final presentation order),
//     ties by ascending origin index.
func (s *Selector) Select(classified []ScoredUnit, cap int) []types.ContentUnit {
	if cap <= 0 || len(classified) == 0 {
		return []types.ContentUnit{}
	}
	if cap > len(classified) {
		cap = len(classified)
	}

	// Group by category, each group sorted by descending score.
	byCategory := make(map[types.Category][]ScoredUnit)
	for _, unit := range classified {
		byCategory[unit.Category] = append(byCategory[unit.Category], unit)
	}
	for category := range byCategory {
		sortByScore(byCategory[category])
	}

	selected := make([]ScoredUnit, 0, cap)
	taken := make(map[int]bool) // keyed by origin index

	// Pass 1: fill each category up to its target count.
	for _, category := range types.CategoryPriority() {
		target := int(float64(cap) * s.distribution[category])
		available := byCategory[category]
		for i := 0; i < len(available) && i < target && len(selected) < cap; i++ {
			selected = append(selected, available[i])
			taken[available[i].Unit.OriginIndex] = true
		}
	}

	// Pass 2: top up remaining slots in priority order.
	for _, category := range types.CategoryPriority() {
		if len(selected) >= cap {
			break
		}
		for _, unit := range byCategory[category] {
			if len(selected) >= cap {
				break
			}
			if !taken[unit.Unit.OriginIndex] {
				selected = append(selected, unit)
				taken[unit.Unit.OriginIndex] = true
			}
		}
	}

	// Presentation order: by score, not by category.
	sortByScore(selected)

	units := make([]types.ContentUnit, 0, len(selected))
	for _, scored := range selected {
		unit := scored.Unit
		unit.Score = scored.Score
		unit.Category = scored.Category
		units = append(units, unit)
	}
	return units
}

// sortByScore orders units by descending score, ties by ascending origin
// index. The tie-break keeps selection deterministic.
func sortByScore(units []ScoredUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].Score != units[j].Score {
			return units[i].Score > units[j].Score
		}
		return units[i].Unit.OriginIndex < units[j].Unit.OriginIndex
	})
}
