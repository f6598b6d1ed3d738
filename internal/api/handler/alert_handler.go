package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trendwyse/dashboard/internal/api/metrics"
	"github.com/trendwyse/dashboard/internal/core/ports"
	"github.com/trendwyse/dashboard/internal/core/service"
)

// AlertHandler serves the shared alert feed.
type AlertHandler struct {
	service ports.AlertService
}

func NewAlertHandler(service ports.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

// List returns the most recent alerts.
//
// @Summary      List alerts
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of results (default 10, max 50)"
// @Success      200    {array}   alertResponse
// @Failure      401
// @Failure      500    {object}  ErrorResponse
// @Router       /alerts [get]
func (h *AlertHandler) List(c echo.Context) error {
	const msg = "AI uyarıları alınamadı"
	limit, ok := queryLimit(c, service.DefaultAlertLimit)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: msg, Error: "limit must be a positive integer"})
	}
	list, err := h.service.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return fail(c, err, msg)
	}
	return c.JSON(http.StatusOK, toAlertList(list))
}

// MarkRead flags an alert as read. Repeating the call is harmless.
//
// @Summary      Mark alert read
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Alert ID"
// @Success      200  {object}  successResponse
// @Failure      401
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /alerts/{id}/read [post]
func (h *AlertHandler) MarkRead(c echo.Context) error {
	if err := h.service.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err, "Uyarı işaretlenemedi")
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Broadcast publishes a staff alert to every user.
//
// @Summary      Publish alert
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      broadcastAlertRequest  true  "Alert to publish"
// @Success      201   {object}  alertResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401
// @Failure      403
// @Failure      500   {object}  ErrorResponse
// @Router       /alerts [post]
func (h *AlertHandler) Broadcast(c echo.Context) error {
	const msg = "Uyarı yayınlanamadı"
	var req broadcastAlertRequest
	if ok, err := bindAndValidate(c, &req, msg); !ok {
		return err
	}
	a, err := h.service.Broadcast(c.Request().Context(), ports.BroadcastInput{
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
	})
	if err != nil {
		return fail(c, err, msg)
	}
	metrics.AlertsBroadcastTotal.WithLabelValues(string(a.Type)).Inc()
	return c.JSON(http.StatusCreated, toAlertResponse(a))
}
