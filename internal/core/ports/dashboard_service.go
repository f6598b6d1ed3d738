package ports

import (
	"context"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

type DashboardService interface {
	Stats(ctx context.Context, userID string) (*domain.DashboardStats, error)
}
