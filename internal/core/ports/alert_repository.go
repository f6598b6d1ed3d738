package ports

import (
	"context"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

// AlertRepository is the append-only alert feed shared by all users.
type AlertRepository interface {
	Append(ctx context.Context, a *domain.Alert) error
	// ListRecent returns at most limit alerts, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.Alert, error)
	// MarkRead sets the read flag. Marking an already read alert is a no-op.
	// Returns domain.ErrAlertNotFound when no alert has the id.
	MarkRead(ctx context.Context, id string) error
}
