package service

import (
	"context"
	"testing"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

func TestDashboardService_Stats(t *testing.T) {
	repo := newStubAnalysisRepo()
	seedPending(t, repo, "a1", "u1", "one", "")
	seedPending(t, repo, "a2", "u1", "two", "")
	seedPending(t, repo, "a3", "u1", "three", "")
	seedPending(t, repo, "a4", "u2", "other", "")
	repo.byID["a2"].Status = domain.StatusProcessing
	repo.byID["a3"].Status = domain.StatusCompleted

	stats, err := NewDashboardService(repo).Stats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalAnalyses != 3 || stats.PendingCount != 2 || stats.CompletedCount != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.TotalModules != domain.TotalModules || stats.ActiveModules != 1 || stats.SystemStatus != domain.SystemStatus {
		t.Errorf("unexpected static fields: %+v", stats)
	}
}
