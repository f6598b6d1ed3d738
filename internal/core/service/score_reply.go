package service

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

var replyValidator = validator.New()

// scoreReply is the JSON object the scoring prompt asks the provider for.
type scoreReply struct {
	Score            *float64 `json:"score" validate:"required"`
	Recommendation   string   `json:"recommendation" validate:"required,oneof=Yüksek Orta Düşük"`
	Reasoning        string   `json:"reasoning" validate:"required"`
	Tags             []string `json:"tags"`
	MarketTrend      string   `json:"marketTrend" validate:"omitempty,oneof=Pozitif Nötr Negatif"`
	CompetitionLevel string   `json:"competitionLevel" validate:"omitempty,oneof=Düşük Orta Yüksek"`
	ProfitPotential  string   `json:"profitPotential" validate:"omitempty,oneof=Yüksek Orta Düşük"`
}

// ParseScoreReply decodes and validates a provider reply. Any violation is
// reported as domain.ErrProviderFailure.
func ParseScoreReply(raw json.RawMessage) (*domain.ScoreReport, error) {
	var r scoreReply
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: decode reply: %v", domain.ErrProviderFailure, err)
	}
	if err := replyValidator.Struct(r); err != nil {
		return nil, fmt.Errorf("%w: invalid reply: %v", domain.ErrProviderFailure, err)
	}

	score := *r.Score
	if score != math.Trunc(score) || score < 1 || score > 100 {
		return nil, fmt.Errorf("%w: score %v outside 1..100", domain.ErrProviderFailure, score)
	}

	return &domain.ScoreReport{
		Score:            int(score),
		Recommendation:   r.Recommendation,
		Reasoning:        r.Reasoning,
		Tags:             r.Tags,
		MarketTrend:      r.MarketTrend,
		CompetitionLevel: r.CompetitionLevel,
		ProfitPotential:  r.ProfitPotential,
		Raw:              raw,
	}, nil
}
