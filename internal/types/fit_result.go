// Package types provides type definitions for structured data used throughout the resume-optimizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// FitState is the terminal (or in-flight) state of a fit run.
type FitState string

// Fit engine states.
const (
	StateInitial     FitState = "initial"
	StateMeasuring   FitState = "measuring"
	StateCompressing FitState = "compressing"
	StateTrimming    FitState = "trimming"
	StateFitted      FitState = "fitted"
	StateOverflowed  FitState = "overflowed"
)

// RemovedUnit records one trimmed content unit, for telemetry and undo.
type RemovedUnit struct {
	EntryID   string      `json:"entry_id"`
	Unit      ContentUnit `json:"unit"`
	Iteration int         `json:"iteration"`
}

// FitResult is the outcome of a fit run. A document always comes back,
// degraded as necessary; recoverable conditions surface as fields here
// rather than as errors.
type FitResult struct {
	FinalDocument    *Document     `json:"final_document"`
	StyleProfileUsed int           `json:"style_profile_used"`
	FitsOnSinglePage bool          `json:"fits_on_single_page"`
	RemovedUnits     []RemovedUnit `json:"removed_units"`
	EstimatedPages   int           `json:"estimated_pages"`
	Iterations       int           `json:"iterations"`
	NonConvergent    bool          `json:"non_convergent,omitempty"`
	Degraded         bool          `json:"degraded,omitempty"`
	Warnings         []string      `json:"warnings,omitempty"`
	State            FitState      `json:"state"`
}

// Comparison reports how much the optimized document improved over the
// original against the same job context. Reporting only; never used for
// fitting decisions.
type Comparison struct {
	OriginalScore  float64 `json:"original_score"`
	OptimizedScore float64 `json:"optimized_score"`
	Improvement    float64 `json:"improvement"`
	ImprovementPct float64 `json:"improvement_percentage"`
	Message        string  `json:"message"`
}
