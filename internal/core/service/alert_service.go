package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

// DefaultAlertLimit is how many alerts the feed shows.
const DefaultAlertLimit = 10

type alertService struct {
	repo  ports.AlertRepository
	clock Clock
	log   zerolog.Logger
}

func NewAlertService(repo ports.AlertRepository, clock Clock, log zerolog.Logger) ports.AlertService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &alertService{repo: repo, clock: clock, log: log}
}

func (s *alertService) ListRecent(ctx context.Context, limit int) ([]*domain.Alert, error) {
	return s.repo.ListRecent(ctx, clampLimit(limit, DefaultAlertLimit))
}

func (s *alertService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// Broadcast publishes a manually written alert to every user.
func (s *alertService) Broadcast(ctx context.Context, in ports.BroadcastInput) (*domain.Alert, error) {
	t := domain.AlertType(in.Type)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown alert type %q", domain.ErrValidation, in.Type)
	}
	title := strings.TrimSpace(in.Title)
	message := strings.TrimSpace(in.Message)
	if title == "" || message == "" {
		return nil, fmt.Errorf("%w: title and message are required", domain.ErrValidation)
	}

	a := &domain.Alert{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Type:      t,
		Title:     title,
		Message:   message,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Append(ctx, a); err != nil {
		return nil, fmt.Errorf("broadcast alert: %w", err)
	}

	s.log.Info().Str("alert_id", a.ID).Str("type", string(t)).Msg("alert broadcast")
	return a, nil
}
