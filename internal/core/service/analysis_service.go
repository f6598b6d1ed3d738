package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

const (
	successAlertTitle = "AI Analizi Tamamlandı"
	failureAlertTitle = "AI Analizi Başarısız"
	failureAlertText  = "Analiz işlemi sırasında bir hata oluştu. Lütfen tekrar deneyin."

	DefaultCompletedLimit = 10
	MaxListLimit          = 50
)

type analysisService struct {
	analyses ports.AnalysisRepository
	alerts   ports.AlertRepository
	scorer   ports.ScoringClient
	clock    Clock
	timeout  time.Duration
	log      zerolog.Logger
}

// NewAnalysisService returns the orchestrator for the analysis lifecycle.
// timeout bounds every scoring call; a processing claim older than twice the
// timeout is considered abandoned.
func NewAnalysisService(
	analyses ports.AnalysisRepository,
	alerts ports.AlertRepository,
	scorer ports.ScoringClient,
	clock Clock,
	timeout time.Duration,
	log zerolog.Logger,
) ports.AnalysisService {
	if clock == nil {
		clock = SystemClock{}
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &analysisService{
		analyses: analyses,
		alerts:   alerts,
		scorer:   scorer,
		clock:    clock,
		timeout:  timeout,
		log:      log,
	}
}

func (s *analysisService) CreateAnalysis(ctx context.Context, in ports.CreateAnalysisInput) (*domain.Analysis, error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return nil, fmt.Errorf("%w: productName is required", domain.ErrValidation)
	}
	code := in.ModuleCode
	if code == "" {
		code = domain.DefaultModuleCode
	}
	if m, ok := domain.LookupModule(code); !ok || m.Status != domain.ModuleActive {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownModule, code)
	}

	a := &domain.Analysis{
		ID:          uuid.Must(uuid.NewV7()).String(),
		UserID:      in.UserID,
		ProductName: name,
		Category:    strings.TrimSpace(in.Category),
		ModuleCode:  code,
		Status:      domain.StatusPending,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.analyses.Create(ctx, a); err != nil {
		s.log.Error().Err(err).Str("user_id", in.UserID).Msg("failed to create analysis")
		return nil, fmt.Errorf("create analysis: %w", err)
	}

	s.log.Info().Str("analysis_id", a.ID).Str("user_id", a.UserID).Str("module", code).Msg("analysis created")
	return a, nil
}

// StartAnalysis claims the analysis, makes one scoring attempt and records the
// outcome. On failure the claim is released so the analysis stays pending.
func (s *analysisService) StartAnalysis(ctx context.Context, analysisID, userID string) (*domain.ScoreReport, error) {
	a, err := s.analyses.FindByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, domain.ErrAnalysisNotFound
	}
	if a.Status != domain.StatusProcessing && !a.Status.CanTransitionTo(domain.StatusProcessing) {
		return nil, domain.ErrInvalidState
	}

	now := s.clock.Now()
	staleBefore := now.Add(-2 * s.timeout)
	if a.Status == domain.StatusProcessing && !a.ClaimStale(staleBefore) {
		return nil, domain.ErrAnalysisInProgress
	}

	claimed, err := s.analyses.Claim(ctx, a.ID, userID, now, staleBefore)
	if err != nil {
		return nil, fmt.Errorf("start analysis: claim: %w", err)
	}
	if !claimed {
		return nil, domain.ErrAnalysisInProgress
	}

	report, err := s.score(ctx, a)
	if err != nil {
		return nil, s.fail(ctx, a, now, err)
	}

	completedAt := s.clock.Now()
	if err := s.analyses.UpdateScore(ctx, a.ID, now, report.Score, report.Raw, completedAt); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			// another attempt took over the claim; it owns the outcome
			return nil, err
		}
		return nil, s.fail(ctx, a, now, fmt.Errorf("start analysis: store score: %w", err))
	}

	alert := s.newAlert(domain.AlertSuccess, successAlertTitle,
		fmt.Sprintf("\"%s\" için %s modülü analizi başarıyla tamamlandı. Skor: %%%d", a.ProductName, a.ModuleCode, report.Score))
	if err := s.alerts.Append(context.WithoutCancel(ctx), alert); err != nil {
		s.log.Error().Err(err).Str("analysis_id", a.ID).Msg("failed to append success alert")
	}

	s.log.Info().
		Str("analysis_id", a.ID).
		Int("score", report.Score).
		Str("recommendation", report.Recommendation).
		Msg("analysis completed")

	return report, nil
}

func (s *analysisService) score(ctx context.Context, a *domain.Analysis) (*domain.ScoreReport, error) {
	scoreCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.scorer.Score(scoreCtx, ports.ScoringRequest{
		ProductName: a.ProductName,
		Category:    a.Category,
		ModuleCode:  a.ModuleCode,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrProviderFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)
		}
		return nil, err
	}
	return ParseScoreReply(raw)
}

// fail releases the claim made at startedAt and records a warning alert. It
// runs detached from request cancellation so a client disconnect does not
// strand the claim.
func (s *analysisService) fail(ctx context.Context, a *domain.Analysis, startedAt time.Time, cause error) error {
	ctx = context.WithoutCancel(ctx)

	if err := s.analyses.Release(ctx, a.ID, startedAt); err != nil {
		s.log.Error().Err(err).Str("analysis_id", a.ID).Msg("failed to release analysis claim")
	}
	if err := s.alerts.Append(ctx, s.newAlert(domain.AlertWarning, failureAlertTitle, failureAlertText)); err != nil {
		s.log.Error().Err(err).Str("analysis_id", a.ID).Msg("failed to append warning alert")
	}

	s.log.Warn().Err(cause).Str("analysis_id", a.ID).Msg("analysis scoring failed")
	return cause
}

func (s *analysisService) newAlert(t domain.AlertType, title, message string) *domain.Alert {
	return &domain.Alert{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Type:      t,
		Title:     title,
		Message:   message,
		CreatedAt: s.clock.Now(),
	}
}

func (s *analysisService) ListPending(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	return s.analyses.ListPendingByOwner(ctx, userID)
}

func (s *analysisService) ListCompleted(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error) {
	return s.analyses.ListCompletedByOwner(ctx, userID, clampLimit(limit, DefaultCompletedLimit))
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
