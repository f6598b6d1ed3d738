package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

// AnalysisRepository defines persistence operations for analyses.
// All list operations return the most recent first.
type AnalysisRepository interface {
	Create(ctx context.Context, a *domain.Analysis) error
	// FindByID returns domain.ErrAnalysisNotFound when no analysis has the id.
	FindByID(ctx context.Context, id string) (*domain.Analysis, error)
	// ListByOwner orders by creation time.
	ListByOwner(ctx context.Context, userID string) ([]*domain.Analysis, error)
	// ListPendingByOwner returns unfinished (pending or processing) analyses ordered by creation time.
	ListPendingByOwner(ctx context.Context, userID string) ([]*domain.Analysis, error)
	// ListCompletedByOwner orders by completion time and returns at most limit rows.
	ListCompletedByOwner(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error)
	CountByOwner(ctx context.Context, userID string) (domain.AnalysisCounts, error)

	// Claim atomically moves the analysis to processing when it is pending, or
	// when it is processing with a claim started before staleBefore. It reports
	// false when the row is not owned by userID or is not claimable.
	Claim(ctx context.Context, id, userID string, startedAt, staleBefore time.Time) (bool, error)
	// Release returns a processing analysis to pending when it still holds the
	// claim made at startedAt. A claim taken over by another attempt is left alone.
	Release(ctx context.Context, id string, startedAt time.Time) error
	// UpdateScore completes the analysis claimed at startedAt. Returns
	// domain.ErrInvalidState when that claim is no longer held.
	UpdateScore(ctx context.Context, id string, startedAt time.Time, score int, result json.RawMessage, completedAt time.Time) error
}
