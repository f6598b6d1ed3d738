package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

type assistantService struct {
	chat  ports.ChatClient
	clock Clock
	log   zerolog.Logger
}

func NewAssistantService(chat ports.ChatClient, clock Clock, log zerolog.Logger) ports.AssistantService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &assistantService{chat: chat, clock: clock, log: log}
}

func (s *assistantService) Chat(ctx context.Context, message string) (*ports.ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	text, err := s.chat.Chat(ctx, message)
	if err != nil {
		s.log.Warn().Err(err).Msg("assistant chat failed")
		if !errors.Is(err, domain.ErrProviderFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)
		}
		return nil, err
	}

	return &ports.ChatReply{Response: text, Timestamp: s.clock.Now()}, nil
}
