package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

type stubChat struct {
	reply string
	err   error
	got   string
}

func (c *stubChat) Chat(_ context.Context, message string) (string, error) {
	c.got = message
	return c.reply, c.err
}

func TestAssistantService_Chat(t *testing.T) {
	chat := &stubChat{reply: "Merhaba!"}
	svc := NewAssistantService(chat, fixedClock{testNow}, zerolog.Nop())

	reply, err := svc.Chat(context.Background(), "Selam")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Response != "Merhaba!" || !reply.Timestamp.Equal(testNow) {
		t.Errorf("unexpected reply: %+v", reply)
	}
	if chat.got != "Selam" {
		t.Errorf("message not forwarded: %q", chat.got)
	}
}

func TestAssistantService_Chat_EmptyMessage(t *testing.T) {
	chat := &stubChat{}
	svc := NewAssistantService(chat, fixedClock{testNow}, zerolog.Nop())

	if _, err := svc.Chat(context.Background(), "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if chat.got != "" {
		t.Error("provider must not be called")
	}
}

func TestAssistantService_Chat_ProviderFailure(t *testing.T) {
	svc := NewAssistantService(&stubChat{err: errors.New("429 rate limited")}, fixedClock{testNow}, zerolog.Nop())

	if _, err := svc.Chat(context.Background(), "Selam"); !errors.Is(err, domain.ErrProviderFailure) {
		t.Fatalf("expected ErrProviderFailure, got %v", err)
	}
}
