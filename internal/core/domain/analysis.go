package domain

import (
	"encoding/json"
	"time"
)

// AnalysisStatus represents the lifecycle state of a product analysis.
type AnalysisStatus string

const (
	StatusPending    AnalysisStatus = "pending"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// DefaultModuleCode is the scoring module used when a request does not name one.
const DefaultModuleCode = "M001"

// validTransitions defines the allowed state machine transitions.
// processing -> pending is the release of a claim after a failed scoring attempt.
var validTransitions = map[AnalysisStatus][]AnalysisStatus{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusPending, StatusFailed},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s AnalysisStatus) CanTransitionTo(next AnalysisStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Finished reports whether the status is terminal.
func (s AnalysisStatus) Finished() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Analysis is one product-scoring request and its eventual result.
type Analysis struct {
	ID          string
	UserID      string
	ProductName string
	Category    string // optional
	ModuleCode  string
	Status      AnalysisStatus
	Score       *int            // set only when completed
	Result      json.RawMessage // provider payload, set only when completed
	CreatedAt   time.Time
	StartedAt   *time.Time // set while a scoring attempt holds the claim
	CompletedAt *time.Time
}

// ClaimStale reports whether a processing claim started before staleBefore
// and may be taken over by a new attempt.
func (a *Analysis) ClaimStale(staleBefore time.Time) bool {
	return a.Status == StatusProcessing && a.StartedAt != nil && a.StartedAt.Before(staleBefore)
}

// HoldsClaim reports whether the analysis is processing under the claim made at startedAt.
func (a *Analysis) HoldsClaim(startedAt time.Time) bool {
	return a.Status == StatusProcessing && a.StartedAt != nil && a.StartedAt.Equal(startedAt)
}

// AnalysisCounts aggregates a user's analyses by lifecycle bucket.
type AnalysisCounts struct {
	Total     int64
	Pending   int64 // pending + processing
	Completed int64
}

// ScoreReport is the validated reply of the scoring provider.
type ScoreReport struct {
	Score            int
	Recommendation   string
	Reasoning        string
	Tags             []string
	MarketTrend      string
	CompetitionLevel string
	ProfitPotential  string
	// Raw is the provider reply exactly as received; it is what gets persisted.
	Raw json.RawMessage
}
