// Package types provides type definitions for structured data used throughout the resume-optimizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category is the closed set of semantic content categories.
type Category string

// Content categories, from strongest to weakest selection priority.
const (
	CategoryAchievement    Category = "achievement"
	CategoryLeadership     Category = "leadership"
	CategoryTechnical      Category = "technical"
	CategoryProject        Category = "project"
	CategoryResponsibility Category = "responsibility"
	CategoryEducation      Category = "education"
)

// CategoryPriority returns the fixed priority order used to break
// classification ties and to fill selection quotas.
func CategoryPriority() []Category {
	return []Category{
		CategoryAchievement,
		CategoryLeadership,
		CategoryTechnical,
		CategoryProject,
		CategoryResponsibility,
		CategoryEducation,
	}
}

// DefaultDistribution returns the target share of selected content per
// category. Education usually lives in its own section, so it gets no quota.
func DefaultDistribution() map[Category]float64 {
	return map[Category]float64{
		CategoryAchievement:    0.40,
		CategoryLeadership:     0.20,
		CategoryTechnical:      0.25,
		CategoryProject:        0.10,
		CategoryResponsibility: 0.05,
		CategoryEducation:      0.00,
	}
}

// Valid reports whether the category is a member of the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryAchievement, CategoryLeadership, CategoryTechnical,
		CategoryProject, CategoryResponsibility, CategoryEducation:
		return true
	}
	return false
}
