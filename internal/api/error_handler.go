package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trendwyse/dashboard/internal/api/handler"
	"github.com/trendwyse/dashboard/internal/core/domain"
)

const genericMessage = "Sunucu hatası"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Answers 401 with an empty body.
//   - Maps stray domain errors to their HTTP status codes.
//   - Logs the cause of every 5xx without leaking it to the client.
//   - Renders the {"message": "..."} envelope the dashboard reads.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Int("status", code).
				Msg("request failed")
		}

		if code == http.StatusUnauthorized {
			_ = c.NoContent(code)
			return
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handler.ErrorResponse{Message: msg})
	}
}

func resolveError(err error) (int, string) {
	// Echo's own errors (router 404/405, middleware, handler fallbacks).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrAnalysisNotFound):
		return http.StatusNotFound, "Analiz bulunamadı"
	case errors.Is(err, domain.ErrAlertNotFound):
		return http.StatusNotFound, "Uyarı bulunamadı"
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest, "Analiz zaten tamamlanmış"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Bu işlem için yetkiniz yok"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, ""
	}

	return http.StatusInternalServerError, genericMessage
}
