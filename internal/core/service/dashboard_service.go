package service

import (
	"context"
	"fmt"

	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

type dashboardService struct {
	analyses ports.AnalysisRepository
}

func NewDashboardService(analyses ports.AnalysisRepository) ports.DashboardService {
	return &dashboardService{analyses: analyses}
}

// Stats combines the caller's analysis counts with the fixed header figures.
func (s *dashboardService) Stats(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	counts, err := s.analyses.CountByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &domain.DashboardStats{
		TotalModules:   domain.TotalModules,
		ActiveModules:  domain.ActiveModuleCount(),
		ActiveUsers:    domain.ActiveUsers,
		AIRatio:        domain.AIRatio,
		SystemStatus:   domain.SystemStatus,
		Uptime:         domain.Uptime,
		TotalAnalyses:  counts.Total,
		PendingCount:   counts.Pending,
		CompletedCount: counts.Completed,
	}, nil
}
