package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

func TestAlertService_MarkRead_Twice(t *testing.T) {
	repo := &stubAlertRepo{}
	svc := NewAlertService(repo, fixedClock{testNow}, zerolog.Nop())

	a, err := svc.Broadcast(context.Background(), ports.BroadcastInput{Type: "info", Title: "Bakım", Message: "Gece bakım yapılacak"})
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.MarkRead(context.Background(), a.ID); err != nil {
			t.Fatalf("mark read #%d failed: %v", i+1, err)
		}
	}
	if !repo.alerts[0].IsRead {
		t.Fatal("expected alert to be read")
	}
}

func TestAlertService_MarkRead_Unknown(t *testing.T) {
	svc := NewAlertService(&stubAlertRepo{}, fixedClock{testNow}, zerolog.Nop())

	if err := svc.MarkRead(context.Background(), "missing"); !errors.Is(err, domain.ErrAlertNotFound) {
		t.Fatalf("expected ErrAlertNotFound, got %v", err)
	}
}

func TestAlertService_ListRecent_Limit(t *testing.T) {
	repo := &stubAlertRepo{}
	svc := NewAlertService(repo, fixedClock{testNow}, zerolog.Nop())
	for i := 0; i < 12; i++ {
		if _, err := svc.Broadcast(context.Background(), ports.BroadcastInput{Type: "info", Title: fmt.Sprintf("t%d", i), Message: "m"}); err != nil {
			t.Fatalf("broadcast failed: %v", err)
		}
	}

	got, err := svc.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != DefaultAlertLimit {
		t.Fatalf("expected %d alerts, got %d", DefaultAlertLimit, len(got))
	}
	if got[0].Title != "t11" {
		t.Errorf("expected newest first, got %s", got[0].Title)
	}
}

func TestAlertService_Broadcast_Validation(t *testing.T) {
	svc := NewAlertService(&stubAlertRepo{}, fixedClock{testNow}, zerolog.Nop())

	if _, err := svc.Broadcast(context.Background(), ports.BroadcastInput{Type: "urgent", Title: "t", Message: "m"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for type, got %v", err)
	}
	if _, err := svc.Broadcast(context.Background(), ports.BroadcastInput{Type: "info", Title: " ", Message: "m"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for title, got %v", err)
	}
}
