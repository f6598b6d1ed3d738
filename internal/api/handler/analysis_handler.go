package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trendwyse/dashboard/internal/api/metrics"
	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
	"github.com/trendwyse/dashboard/internal/core/service"
)

const (
	msgCreateFailed    = "Analiz oluşturulamadı"
	msgStartFailed     = "AI analizi başarısız oldu"
	msgPendingFailed   = "Bekleyen analizler alınamadı"
	msgCompletedFailed = "Tamamlanmış analizler alınamadı"
)

// AnalysisHandler handles HTTP requests for product analyses.
type AnalysisHandler struct {
	service ports.AnalysisService
}

func NewAnalysisHandler(service ports.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Create registers a pending analysis for the caller.
//
// @Summary      Create an analysis
// @Tags         analyses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAnalysisRequest  true  "Product to analyse"
// @Success      201   {object}  analysisResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401
// @Failure      500   {object}  ErrorResponse
// @Router       /analyses [post]
func (h *AnalysisHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req createAnalysisRequest
	if ok, err := bindAndValidate(c, &req, msgCreateFailed); !ok {
		return err
	}

	a, err := h.service.CreateAnalysis(c.Request().Context(), ports.CreateAnalysisInput{
		UserID:      userID,
		ProductName: req.ProductName,
		Category:    req.Category,
		ModuleCode:  req.ModuleCode,
	})
	if err != nil {
		return fail(c, err, msgCreateFailed)
	}
	metrics.AnalysesCreatedTotal.WithLabelValues(a.ModuleCode).Inc()

	return c.JSON(http.StatusCreated, toAnalysisResponse(a))
}

// Start runs the scoring provider for a pending analysis and waits for the result.
//
// @Summary      Start an analysis
// @Description  Makes one scoring attempt. On failure the analysis stays pending and a warning alert is recorded.
// @Tags         analyses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Analysis ID"
// @Success      200  {object}  startAnalysisResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /analyses/{id}/start [post]
func (h *AnalysisHandler) Start(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	began := time.Now()
	report, err := h.service.StartAnalysis(c.Request().Context(), c.Param("id"), userID)
	outcome := startOutcome(err)
	metrics.AnalysisStartsTotal.WithLabelValues(outcome).Inc()
	metrics.AnalysisStartDuration.WithLabelValues(outcome).Observe(time.Since(began).Seconds())
	if err != nil {
		return fail(c, err, msgStartFailed)
	}
	metrics.AnalysisScore.Observe(float64(report.Score))

	return c.JSON(http.StatusOK, startAnalysisResponse{
		Success:  true,
		Score:    report.Score,
		Analysis: report.Raw,
	})
}

func startOutcome(err error) string {
	switch {
	case err == nil:
		return "completed"
	case errors.Is(err, domain.ErrProviderFailure):
		return "provider_failure"
	case errors.Is(err, domain.ErrAnalysisNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrAnalysisInProgress):
		return "in_progress"
	}
	return "error"
}

// ListPending returns the caller's unfinished analyses.
//
// @Summary      List pending analyses
// @Tags         analyses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   analysisResponse
// @Failure      401
// @Failure      500  {object}  ErrorResponse
// @Router       /analyses/pending [get]
func (h *AnalysisHandler) ListPending(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	list, err := h.service.ListPending(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err, msgPendingFailed)
	}
	return c.JSON(http.StatusOK, toAnalysisList(list))
}

// ListCompleted returns the caller's most recently completed analyses.
//
// @Summary      List completed analyses
// @Tags         analyses
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of results (default 10, max 50)"
// @Success      200    {array}   analysisResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      401
// @Failure      500    {object}  ErrorResponse
// @Router       /analyses/completed [get]
func (h *AnalysisHandler) ListCompleted(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	limit, ok := queryLimit(c, service.DefaultCompletedLimit)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgCompletedFailed, Error: "limit must be a positive integer"})
	}
	list, err := h.service.ListCompleted(c.Request().Context(), userID, limit)
	if err != nil {
		return fail(c, err, msgCompletedFailed)
	}
	return c.JSON(http.StatusOK, toAnalysisList(list))
}

// queryLimit reads the optional ?limit parameter. Upper bounds are enforced
// by the service.
func queryLimit(c echo.Context, def int) (int, bool) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
