package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats returns the dashboard header figures for the caller.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardStatsResponse
// @Failure      401
// @Failure      500  {object}  ErrorResponse
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	s, err := h.service.Stats(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err, "Dashboard stats alınamadı")
	}
	return c.JSON(http.StatusOK, dashboardStatsResponse{
		TotalModules:   s.TotalModules,
		ActiveModules:  s.ActiveModules,
		ActiveUsers:    s.ActiveUsers,
		AIRatio:        s.AIRatio,
		SystemStatus:   s.SystemStatus,
		Uptime:         s.Uptime,
		TotalAnalyses:  s.TotalAnalyses,
		PendingCount:   s.PendingCount,
		CompletedCount: s.CompletedCount,
	})
}

// Modules lists the scoring module catalog.
//
// @Summary      Module catalog
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  moduleResponse
// @Router       /modules [get]
func (h *DashboardHandler) Modules(c echo.Context) error {
	modules := domain.Modules()
	out := make([]moduleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, moduleResponse{
			Code:        m.Code,
			Title:       m.Title,
			Description: m.Description,
			Status:      string(m.Status),
		})
	}
	return c.JSON(http.StatusOK, out)
}
