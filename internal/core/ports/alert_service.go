package ports

import (
	"context"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

// BroadcastInput carries a manually published alert.
type BroadcastInput struct {
	Type    string
	Title   string
	Message string
}

type AlertService interface {
	ListRecent(ctx context.Context, limit int) ([]*domain.Alert, error)
	MarkRead(ctx context.Context, id string) error
	Broadcast(ctx context.Context, in BroadcastInput) (*domain.Alert, error)
}
