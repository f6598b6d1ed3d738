package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

type stubDashboardService struct {
	statsFn func(ctx context.Context, userID string) (*domain.DashboardStats, error)
}

func (s *stubDashboardService) Stats(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	return s.statsFn(ctx, userID)
}

func TestDashboardHandler_Stats(t *testing.T) {
	stub := &stubDashboardService{
		statsFn: func(ctx context.Context, userID string) (*domain.DashboardStats, error) {
			return &domain.DashboardStats{
				TotalModules:   domain.TotalModules,
				ActiveModules:  1,
				ActiveUsers:    domain.ActiveUsers,
				AIRatio:        domain.AIRatio,
				SystemStatus:   domain.SystemStatus,
				Uptime:         domain.Uptime,
				TotalAnalyses:  3,
				PendingCount:   2,
				CompletedCount: 1,
			}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/api/dashboard/stats", "")
	withUser(c, "u1")

	if err := NewDashboardHandler(stub).Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["totalModules"] != float64(135) || resp["pendingCount"] != float64(2) || resp["systemStatus"] != "Çevrimiçi" {
		t.Fatalf("unexpected body %v", resp)
	}
}

func TestDashboardHandler_Stats_Error(t *testing.T) {
	stub := &stubDashboardService{
		statsFn: func(ctx context.Context, userID string) (*domain.DashboardStats, error) {
			return nil, errors.New("db down")
		},
	}
	c, _ := newTestContext(http.MethodGet, "/api/dashboard/stats", "")
	withUser(c, "u1")

	code, msg := httpErrorCode(t, NewDashboardHandler(stub).Stats(c))

	if code != http.StatusInternalServerError || msg != "Dashboard stats alınamadı" {
		t.Fatalf("unexpected error %d %q", code, msg)
	}
}

func TestDashboardHandler_Modules(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/api/modules", "")

	if err := NewDashboardHandler(&stubDashboardService{}).Modules(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var list []moduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(list) != 3 || list[0].Code != "M001" || list[0].Status != "active" || list[1].Status != "coming-soon" {
		t.Fatalf("unexpected catalog %+v", list)
	}
}
