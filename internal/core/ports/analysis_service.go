package ports

import (
	"context"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

// CreateAnalysisInput is the DTO passed from the transport layer to AnalysisService.
type CreateAnalysisInput struct {
	UserID      string
	ProductName string
	Category    string // optional
	ModuleCode  string // empty = domain.DefaultModuleCode
}

// AnalysisService drives analyses through their scoring lifecycle.
type AnalysisService interface {
	CreateAnalysis(ctx context.Context, in CreateAnalysisInput) (*domain.Analysis, error)
	// StartAnalysis makes exactly one scoring attempt and blocks until it finishes.
	StartAnalysis(ctx context.Context, analysisID, userID string) (*domain.ScoreReport, error)
	ListPending(ctx context.Context, userID string) ([]*domain.Analysis, error)
	ListCompleted(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error)
}
