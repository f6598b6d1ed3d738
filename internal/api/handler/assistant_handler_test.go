package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

type stubAssistantService struct {
	chatFn func(ctx context.Context, message string) (*ports.ChatReply, error)
}

func (s *stubAssistantService) Chat(ctx context.Context, message string) (*ports.ChatReply, error) {
	return s.chatFn(ctx, message)
}

func TestAssistantHandler_Chat(t *testing.T) {
	at := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	stub := &stubAssistantService{
		chatFn: func(ctx context.Context, message string) (*ports.ChatReply, error) {
			if message != "Hangi ürünler trend?" {
				t.Fatalf("unexpected message %q", message)
			}
			return &ports.ChatReply{Response: "Akıllı saatler.", Timestamp: at}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/ai/chat", `{"message":"Hangi ürünler trend?"}`)
	withUser(c, "u1")

	if err := NewAssistantHandler(stub).Chat(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["response"] != "Akıllı saatler." || resp["timestamp"] != "2026-05-02T09:30:00Z" {
		t.Fatalf("unexpected body %v", resp)
	}
}

func TestAssistantHandler_Chat_MissingMessage(t *testing.T) {
	stub := &stubAssistantService{
		chatFn: func(ctx context.Context, message string) (*ports.ChatReply, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	for _, body := range []string{`{}`, `{"message":"   "}`, `not-json`} {
		c, rec := newTestContext(http.MethodPost, "/api/ai/chat", body)

		_ = NewAssistantHandler(stub).Chat(c)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
		if resp := decodeBody(t, rec); resp["message"] != msgMessageRequired {
			t.Fatalf("unexpected message %v", resp["message"])
		}
	}
}

func TestAssistantHandler_Chat_ProviderFailure(t *testing.T) {
	stub := &stubAssistantService{
		chatFn: func(ctx context.Context, message string) (*ports.ChatReply, error) {
			return nil, fmt.Errorf("%w: %w", domain.ErrProviderFailure, errors.New("429"))
		},
	}
	c, _ := newTestContext(http.MethodPost, "/api/ai/chat", `{"message":"merhaba"}`)

	code, msg := httpErrorCode(t, NewAssistantHandler(stub).Chat(c))

	if code != http.StatusInternalServerError || msg != "AI asistan yanıt veremedi" {
		t.Fatalf("unexpected error %d %q", code, msg)
	}
}
